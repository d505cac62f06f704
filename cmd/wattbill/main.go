package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/wattbill/internal/cli"
	"github.com/mmynk/wattbill/internal/config"
	"github.com/mmynk/wattbill/internal/controller"
	"github.com/mmynk/wattbill/internal/metrics"
	"github.com/mmynk/wattbill/internal/middleware"
	"github.com/mmynk/wattbill/internal/service"
	"github.com/mmynk/wattbill/internal/storage/sqlite"
	"github.com/mmynk/wattbill/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("wattbill failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.LogLevel); err != nil {
		return err
	}
	logger := slog.Default().With("session_id", uuid.NewString())
	slog.SetDefault(logger)

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	instrumented := middleware.InstrumentStore(store, m, logger)
	defer instrumented.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	shell := cli.NewShell(
		controller.New(service.NewBillService(instrumented)),
		os.Stdin, os.Stdout, cfg.CurrencySymbol,
	)
	// Metrics are written when the shell ends with quit or EOF; an interrupt kills the process.
	runErr := shell.Run(context.Background())

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile, registry); err != nil {
			slog.Error("Failed to write metrics", "path", cfg.MetricsFile, "error", err)
		} else {
			slog.Info("Metrics written", "path", cfg.MetricsFile)
		}
	}

	return runErr
}
