package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/storm-data-charts/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/storm-data-charts/internal/adapter/kafka"
	"github.com/couchcryptid/storm-data-charts/internal/config"
	"github.com/couchcryptid/storm-data-charts/internal/observability"
	"github.com/couchcryptid/storm-data-charts/internal/pipeline"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	layout := cfg.Chart.Layout()
	logger.Info("chart defaults",
		"units", cfg.Chart.Units,
		"width", layout.Width,
		"height", layout.Height,
		"tick_count", layout.TickCount,
		"subdivisions", layout.Subdivisions,
		"cache_size", cfg.Chart.CacheSize,
	)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger, metrics)
	transformer := pipeline.NewTransformer(cfg.Chart.Units, layout, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, httpadapter.ChartDefaults{
		Units:     cfg.Chart.Units,
		Layout:    layout,
		CacheSize: cfg.Chart.CacheSize,
	}, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
