package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hkbk-garden/plant-catalog/pkg/adapters/recordstore"
	_ "github.com/hkbk-garden/plant-catalog/pkg/adapters/recordstore/file"
	_ "github.com/hkbk-garden/plant-catalog/pkg/adapters/recordstore/postgres"
	_ "github.com/hkbk-garden/plant-catalog/pkg/adapters/recordstore/rest"
	"github.com/hkbk-garden/plant-catalog/pkg/catalog"
	"github.com/hkbk-garden/plant-catalog/pkg/config"
	"github.com/hkbk-garden/plant-catalog/pkg/handlers"
	"github.com/hkbk-garden/plant-catalog/pkg/logging"
	"github.com/hkbk-garden/plant-catalog/pkg/metrics"
	"github.com/hkbk-garden/plant-catalog/pkg/middleware"
	"github.com/hkbk-garden/plant-catalog/pkg/services"
	"github.com/hkbk-garden/plant-catalog/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(config.DefaultPath, Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server failed", zap.String("error", logging.SanitizeError(err)))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Configuration loaded",
		zap.String("version", cfg.Version),
		zap.String("base_url", cfg.BaseURL),
		zap.String("store", cfg.Store.Backend),
		zap.String("display_style", cfg.Display.Style),
		zap.String("speech_locale", cfg.Speech.Locale),
		zap.Bool("in_docker", config.IsRunningInDocker()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	style, err := catalog.ParseStyle(cfg.Display.Style)
	if err != nil {
		return err
	}

	repo, closeStore, err := recordstore.Open(ctx, cfg, logger.Named("store"))
	if err != nil {
		return err
	}
	defer closeStore()

	assets := ui.AssetsFS()
	pages, err := ui.ParsePages(assets, nil)
	if err != nil {
		return err
	}
	static, err := ui.StaticHandler(assets)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.RegisterCollectors(reg)

	renderer := catalog.NewRenderer(style, cfg.Display.SiteName)
	plantService := services.NewPlantService(repo, logger)

	mux := http.NewServeMux()

	// Register handlers
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewPagesHandler(plantService, renderer, pages, cfg, logger.Named("pages")).RegisterRoutes(mux)
	handlers.NewPlantsHandler(plantService, renderer, cfg, logger.Named("api")).RegisterRoutes(mux)
	mux.Handle("GET /static/", http.StripPrefix("/static/", static))
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	handler := middleware.Chain(mux,
		middleware.RequestID,
		middleware.RequestLogger(logger.Named("http")),
		middleware.Recover(logger, "Something went wrong while loading plants."),
	)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.BindAddr, cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting plant-catalog",
			zap.String("addr", srv.Addr),
			zap.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("Shutdown complete")
	return nil
}
