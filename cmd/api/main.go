package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/splittab/splittab-backend/internal/api"
	"github.com/splittab/splittab-backend/internal/infrastructure/config"
	"github.com/splittab/splittab-backend/internal/infrastructure/logging"
	"github.com/splittab/splittab-backend/internal/infrastructure/storage"
)

func main() {
	configFile := flag.String("config", "", "Configuration file path")
	flag.Parse()

	cfg := config.LoadOrEnvWithPath(*configFile)

	logger := logging.NewLogger(cfg.Observability.Logging)
	slog.SetDefault(logger)

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	server := api.NewServer(api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MetricsEnabled: cfg.Observability.Metrics.Enabled,
	}, store, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("Received signal, shutting down", slog.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}
