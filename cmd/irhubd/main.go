package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ir-hub-backend/config"
	"ir-hub-backend/internal/api"
	"ir-hub-backend/internal/db"
	"ir-hub-backend/internal/pipeline"
	"ir-hub-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "irhubd ", log.LstdFlags)

	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	path := *configPath
	if path == "" {
		path = os.Getenv("IRHUB_CONFIG")
	}
	if path == "" {
		path = "./config/config.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", path, err)
	}
	logger.Printf("configuration loaded successfully from %s", path)

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	appStore := store.NewGormStore(gormDB)
	pipe := pipeline.New(pipeline.Options{VerifyFrames: cfg.Decoder.VerifyFrames})

	router := api.NewRouter(api.NewHandler(appStore, pipe), &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
