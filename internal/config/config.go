package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Storage drivers.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Spendview"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	Storage struct {
		Driver     string `envconfig:"STORAGE_DRIVER" default:"sqlite"`
		SQLitePath string `envconfig:"SQLITE_PATH" default:"data/spendview.db"`
		// Passphrase seals every stored value with age when set.
		Passphrase string `envconfig:"STORAGE_PASSPHRASE"`
		// WorkFactor is the scrypt log2(N) used when sealing; 0 keeps age's default.
		WorkFactor int `envconfig:"STORAGE_WORK_FACTOR" default:"15"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"spendview"`
	}

	Charts struct {
		PieWidth  float64 `envconfig:"PIE_WIDTH" default:"400"`
		PieHeight float64 `envconfig:"PIE_HEIGHT" default:"320"`
		BarWidth  float64 `envconfig:"BAR_WIDTH" default:"400"`
		BarHeight float64 `envconfig:"BAR_HEIGHT" default:"200"`
	}

	Export struct {
		Dir string `envconfig:"EXPORT_DIR" default:"exports"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Storage.Driver {
	case StorageSQLite, StoragePostgres, StorageMemory:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.Storage.Driver)
	}

	if cfg.Storage.WorkFactor < 0 || cfg.Storage.WorkFactor > 30 {
		return nil, fmt.Errorf("STORAGE_WORK_FACTOR %d out of range 0-30", cfg.Storage.WorkFactor)
	}

	return &cfg, nil
}
