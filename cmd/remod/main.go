package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"remo-dashboard/config"
	"remo-dashboard/internal/api"
	"remo-dashboard/internal/metrics"
	"remo-dashboard/internal/notification"
	"remo-dashboard/internal/poller"
	"remo-dashboard/internal/remo"
	"remo-dashboard/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "remo-dashboard ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded from %s", configPath)

	if cfg.Remo.APIKey == "" {
		logger.Printf("%s is not set; vendor routes will return a configuration error", config.APIKeyEnv)
	}

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewRecorder(registry)

	client := remo.NewClient(cfg.Remo)
	client.SetObserver(recorder)

	history := store.NewCacheStore(cfg.Server.HistoryTTL)
	logger.Println("button history initialized")

	var pool *notification.WorkerPool
	if cfg.MQTT.Enabled() {
		publisher := notification.NewMQTTPublisher(cfg.MQTT)
		if err := publisher.Connect(); err != nil {
			logger.Printf("MQTT disabled: %v", err)
		} else {
			defer publisher.Disconnect()
			pool = notification.NewWorkerPool(cfg.WorkerPool.Size, cfg.WorkerPool.QueueSize, publisher)
			pool.OnDrop(func(notification.Event) { recorder.DroppedEvent() })
			pool.Start(ctx)
			logger.Printf("publishing events under %s/", cfg.MQTT.TopicPrefix)
		}
	}

	// Run the poller in the background
	pollerSvc := poller.NewService(cfg.Poller, client, history, recorder, pool)
	go pollerSvc.Run(ctx)

	// Initialize router
	handler := api.NewHandler(client, history, pool, cfg.Server.SettleDelay)
	router, err := api.NewRouter(handler, registry, cfg.Server.CacheTTL)
	if err != nil {
		logger.Fatalf("failed to build router: %v", err)
	}
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")
	cancel()

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
