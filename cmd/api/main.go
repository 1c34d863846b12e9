package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/spendview/internal/chart"
	"github.com/MrJamesThe3rd/spendview/internal/config"
	"github.com/MrJamesThe3rd/spendview/internal/dashboard"
	"github.com/MrJamesThe3rd/spendview/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/spendview/internal/expense/store"
	"github.com/MrJamesThe3rd/spendview/internal/export"
	apiHttp "github.com/MrJamesThe3rd/spendview/internal/http"
	dashboardHandler "github.com/MrJamesThe3rd/spendview/internal/http/dashboard"
	expenseHandler "github.com/MrJamesThe3rd/spendview/internal/http/expense"
	exportHandler "github.com/MrJamesThe3rd/spendview/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/spendview/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/spendview/internal/http/matching"
	settingsHandler "github.com/MrJamesThe3rd/spendview/internal/http/settings"
	"github.com/MrJamesThe3rd/spendview/internal/importer"
	"github.com/MrJamesThe3rd/spendview/internal/matching"
	"github.com/MrJamesThe3rd/spendview/internal/settings"
	"github.com/MrJamesThe3rd/spendview/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, closeStore, err := storage.Open(cfg)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		expenseService  = expense.NewService(expenseStore.New(store))
		settingsService = settings.NewService(store)
		matchingService = matching.NewService(expenseService)
		importService   = importer.NewService()
		exportService   = export.NewService(expenseService)
	)

	dash := dashboard.New(expenseService, settingsService, dashboard.WithCanvases(dashboard.Canvases{
		Pie: chart.Canvas{Width: cfg.Charts.PieWidth, Height: cfg.Charts.PieHeight},
		Bar: chart.Canvas{Width: cfg.Charts.BarWidth, Height: cfg.Charts.BarHeight},
	}))

	if err := dash.Load(ctx); err != nil {
		slog.Warn("failed to load dashboard, starting empty", "error", err)
	}

	var (
		dashboardH = dashboardHandler.NewHandler(dash)
		expenseH   = expenseHandler.NewHandler(dash)
		settingsH  = settingsHandler.NewHandler(dash)
		matchingH  = matchingHandler.NewHandler(matchingService)
		exportH    = exportHandler.NewHandler(exportService)
		importH    = importHandler.NewHandler(importService, dash)
	)

	router := apiHttp.New(
		apiHttp.Options{CORSOrigins: cfg.Server.CORSOrigins, Timeout: cfg.Server.Timeout},
		dashboardH, expenseH, settingsH, matchingH, exportH, importH,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr, "storage", cfg.Storage.Driver)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
