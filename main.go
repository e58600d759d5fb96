package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	v1 "olist/api/v1"
	"olist/database"
	"olist/internal/config"
	exportapp "olist/internal/export/application"
	exportinfra "olist/internal/export/infrastructure"
	sharedinfra "olist/internal/shared/infrastructure"
	trainingapp "olist/internal/training/application"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Erreur configuration: ", err)
	}

	logger, err := sharedinfra.NewLogger(sharedinfra.LoggerOptions{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		log.Fatal("❌ Erreur logger: ", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := sharedinfra.NewPipelineMetrics(registry)
	if err != nil {
		return err
	}

	var db *sql.DB
	if cfg.Data.Loader == config.LoaderPostgres {
		if db, err = database.Open(ctx, cfg.Database.DSN()); err != nil {
			return err
		}
		defer db.Close()
		logger.Info("connexion PostgreSQL établie")
	}

	loader, err := trainingapp.NewLoader(cfg.Data, db, logger, metrics)
	if err != nil {
		return err
	}
	pipeline := trainingapp.NewPipeline(loader, cfg.Economics.Economics(), logger, metrics)
	handlers := v1.NewHandlers(pipeline, exportapp.NewExportService(logger), cfg.Server.CacheTTL, logger)

	if cfg.Redis.Enabled() {
		store, err := exportinfra.NewRedisStore(ctx, exportinfra.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.Prefix, cfg.Server.CacheTTL, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		handlers.WithExportStore(store)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(sharedinfra.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/api/health", healthHandler)
	r.Mount("/api/v1", handlers.Routes())
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("loader", cfg.Data.Loader),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"message": "tables d'entraînement disponibles sur /api/v1/training/{orders,sellers}",
	})
}
