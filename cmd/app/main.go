package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/LetterSpin_Go/internal/admin"
	"github.com/osse101/LetterSpin_Go/internal/bootstrap"
	"github.com/osse101/LetterSpin_Go/internal/config"
	"github.com/osse101/LetterSpin_Go/internal/engine"
	"github.com/osse101/LetterSpin_Go/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	warnings, err := config.ValidateEnvWithWarnings(cfg)
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		slog.Warn(bootstrap.LogMsgConfigWarning, "warning", w)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	stores, err := bootstrap.InitializeStores(ctx, cfg)
	if err != nil {
		bootstrap.GracefulShutdown(context.Background(), bootstrap.ShutdownComponents{Events: events})
		return err
	}

	engineService := engine.NewService(stores.Store, stores.Catalog, events.Publisher, engine.Options{
		DailyLoginSpins:        cfg.DailyLoginSpins,
		FirstDepositBonusSpins: cfg.FirstDepositBonusSpins,
	})
	adminService := admin.NewService(stores.Store, stores.Catalog)

	srv := server.NewServer(cfg.Port, server.Dependencies{
		Engine:         engineService,
		Admin:          adminService,
		Health:         stores.Store,
		Service:        cfg.ServiceName,
		Version:        cfg.Version,
		TrustedProxies: cfg.TrustedProxies,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server: srv,
		Events: events,
		Stores: stores,
	})
	return nil
}
