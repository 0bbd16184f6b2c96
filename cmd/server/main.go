package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pilotbase-logbook/internal/infrastructure/codec"
	"pilotbase-logbook/internal/infrastructure/config"
	"pilotbase-logbook/internal/interface/handler"
	kvRepo "pilotbase-logbook/internal/interface/repository"
	"pilotbase-logbook/internal/usecase"
	"pilotbase-logbook/pkg/logger"
	"pilotbase-logbook/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger().Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLoggerWithLevel(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Pilotbase logbook service", "version", cfg.AppVersion, "backend", cfg.StoreBackend)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up backing store
	kv, err := kvRepo.NewKeyValueStore(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open backing store", "backend", cfg.StoreBackend, "error", err)
	}

	blobCodec, err := codec.ByName(cfg.StoreCodec)
	if err != nil {
		log.Fatal("Invalid store codec", "error", err)
	}

	m := metrics.NewMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)

	// Set up flight store
	store := usecase.NewFlightStore(kv, log,
		usecase.WithCodec(blobCodec),
		usecase.WithKey(cfg.StoreKey),
		usecase.WithMetrics(m),
		usecase.WithPersistTimeout(cfg.PersistTimeout),
	)
	if err := store.Initialize(ctx); err != nil {
		log.Fatal("Failed to initialize flight store", "error", err)
	}

	flightHandler := handler.NewFlightHandler(store, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.NewRouter(flightHandler, log, m, prometheus.DefaultGatherer),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	// Flush pending write-throughs before closing the backend
	if err := store.Close(); err != nil {
		log.Error("Flight store close error", "error", err)
	}
	if err := kv.Close(); err != nil {
		log.Error("Backing store close error", "error", err)
	}

	log.Info("Pilotbase logbook service stopped")
}
