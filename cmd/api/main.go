// Package main is the entry point for the gear planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/pkordes/gear-planner/internal/auth"
	"github.com/pkordes/gear-planner/internal/config"
	"github.com/pkordes/gear-planner/internal/handler"
	"github.com/pkordes/gear-planner/internal/metrics"
	"github.com/pkordes/gear-planner/internal/recommend"
	"github.com/pkordes/gear-planner/internal/repo"
	"github.com/pkordes/gear-planner/internal/service"
	"github.com/pkordes/gear-planner/internal/weather"
	"github.com/pkordes/gear-planner/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		if err := migrate(context.Background(), cfg.DatabaseURL, logger); err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	// --- Metrics ----------------------------------------------------------
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	// --- Services ---------------------------------------------------------
	tokens, err := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		slog.Error("failed to configure tokens", "error", err)
		os.Exit(1)
	}

	trips := repo.NewTripRepo(pool)
	links := repo.NewTripGearRepo(pool)
	gear := repo.NewGearRepo(pool)
	categories := repo.NewCategoryRepo(pool)
	stats := repo.NewStatsRepo(pool)

	forecaster := weather.NewClient(weather.Config{
		APIKey:        cfg.OpenWeatherAPIKey,
		Timeout:       cfg.WeatherTimeout,
		RatePerMinute: cfg.WeatherRatePerMinute,
	}, collector, logger)
	engine := recommend.NewEngine(repo.NewRecommendStore(pool), recommend.DefaultRules(), logger)

	srv := handler.NewServer(handler.Services{
		Auth:    service.NewAuthService(repo.NewUserRepo(pool), tokens),
		Gear:    service.NewGearService(gear, categories, stats),
		Trips:   service.NewTripService(trips, links, gear, repo.NewTxRunner(pool), collector, logger),
		Plans:   service.NewPlanService(trips, engine, forecaster, collector, logger),
		Catalog: service.NewCatalogService(repo.NewCatalogRepo(pool), categories, repo.NewActivityRepo(pool)),
		Stats:   service.NewStatsService(stats),
		Export:  service.NewExportService(trips, links),
	}, tokens, logger)

	router := srv.Routes(handler.RouterOptions{
		CORSOrigins:       cfg.CORSOrigins,
		MaxBodyBytes:      cfg.MaxBodyBytes,
		AuthRatePerMinute: cfg.AuthRatePerMinute,
		Metrics:           collector,
		Gatherer:          registry,
	})

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// WriteTimeout leaves room for a slow forecast call behind the breaker.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10*time.Second + cfg.WeatherTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies every pending embedded migration. goose needs a
// database/sql handle, so it gets its own short-lived connection.
func migrate(ctx context.Context, dsn string, log *slog.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("migrate: open: %w", err)
	}
	defer db.Close()

	applied, err := migrations.Up(ctx, db)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("migrations applied", "count", len(applied), "versions", applied)
	return nil
}
