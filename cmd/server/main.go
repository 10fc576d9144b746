package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdugdh24/matchmaker-backend/internal/config"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/container"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Server.Env, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	shutdownTracing, err := tracing.Init(context.Background(), &cfg.Tracing, log)
	if err != nil {
		log.Fatal("failed to init tracing", "error", err)
	}

	// Initialize dependency injection container
	app, err := container.NewContainer(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize application", "error", err)
	}

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		if err := app.Server.Start(); err != nil {
			log.Error("server error", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	log.Info("server started",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"env", cfg.Server.Env,
		"storage", cfg.Storage.Type,
	)

	// Wait for interrupt signal
	<-quit

	ctx := context.Background()
	if err := app.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Error("tracing shutdown error", "error", err)
	}

	log.Info("server exited properly")
}
