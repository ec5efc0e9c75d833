package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MikeSquared-Agency/ValueCharts/internal/api"
	"github.com/MikeSquared-Agency/ValueCharts/internal/config"
	"github.com/MikeSquared-Agency/ValueCharts/internal/hermes"
	"github.com/MikeSquared-Agency/ValueCharts/internal/session"
	"github.com/MikeSquared-Agency/ValueCharts/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger = newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Store
	charts := store.NewMemoryStore()
	defer charts.Close()

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, hermes.Options{
			Name:          cfg.Hermes.Name,
			ReconnectWait: cfg.ReconnectWait(),
		}, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	// Session hub
	hub := session.New(charts, hermesClient, cfg, session.NewMetrics(prometheus.DefaultRegisterer), logger)
	hub.Start(ctx)
	defer hub.Stop()
	logger.Info("session hub started", "queue_size", cfg.Engine.QueueSize, "origin", hub.Origin())

	if err := hub.SetupSubscriptions(); err != nil {
		logger.Warn("failed to subscribe to chart events", "error", err)
	}

	// API server
	router := api.NewRouter(hub, charts, cfg.Server.AdminToken, cfg.Server.RateLimit, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsRouter := api.NewMetricsRouter()
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: metricsRouter,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)
	cancel()

	logger.Info("shutdown complete")
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
