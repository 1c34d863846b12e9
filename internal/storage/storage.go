// Package storage builds the kv.Store selected by configuration.
package storage

import (
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/spendview/internal/config"
	"github.com/MrJamesThe3rd/spendview/internal/database"
	"github.com/MrJamesThe3rd/spendview/internal/kv"
	"github.com/MrJamesThe3rd/spendview/internal/kv/memory"
	"github.com/MrJamesThe3rd/spendview/internal/kv/sealed"
	"github.com/MrJamesThe3rd/spendview/internal/kv/sqlstore"
)

// Open returns the configured store and a function that releases it.
func Open(cfg *config.Config) (kv.Store, func() error, error) {
	var (
		store   kv.Store
		closeFn = func() error { return nil }
	)

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store = memory.New()
	case config.StorageSQLite, config.StoragePostgres:
		driver, dsn := database.DriverSQLite, cfg.Storage.SQLitePath
		if cfg.Storage.Driver == config.StoragePostgres {
			driver, dsn = database.DriverPostgres, cfg.ConnectionString()
		}

		db, err := database.New(driver, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("opening %s storage: %w", cfg.Storage.Driver, err)
		}

		store = sqlstore.New(db)
		closeFn = db.Close
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	if cfg.Storage.Passphrase != "" {
		s, err := sealed.New(store, cfg.Storage.Passphrase, sealed.WithWorkFactor(cfg.Storage.WorkFactor))
		if err != nil {
			closeFn()
			return nil, nil, err
		}

		store = s
	}

	slog.Info("storage ready", "driver", cfg.Storage.Driver, "sealed", cfg.Storage.Passphrase != "", "work_factor", cfg.Storage.WorkFactor)

	return store, closeFn, nil
}
