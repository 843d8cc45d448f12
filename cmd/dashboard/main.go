package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/nclex-dashboard/internal/adapter/excel"
	httpadapter "github.com/couchcryptid/nclex-dashboard/internal/adapter/http"
	"github.com/couchcryptid/nclex-dashboard/internal/adapter/shapefile"
	"github.com/couchcryptid/nclex-dashboard/internal/config"
	"github.com/couchcryptid/nclex-dashboard/internal/observability"
	"github.com/couchcryptid/nclex-dashboard/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	boundaries := shapefile.NewReader(cfg.ShapefilePath, logger)
	records := excel.NewReader(cfg.WorkbookPath, cfg.SheetPrefix, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Both datasets are read once here; every request renders from this dashboard.
	dashboard, err := pipeline.Load(ctx, boundaries, records, pipeline.Options{
		StateFP:   cfg.StateFP,
		StateName: cfg.StateName,
		Years:     cfg.Years(),
	}, logger, metrics, clockwork.NewRealClock())
	if err != nil {
		logger.Error("failed to load dashboard data",
			"shapefile", cfg.ShapefilePath, "workbook", cfg.WorkbookPath, "error", err)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, dashboard, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
