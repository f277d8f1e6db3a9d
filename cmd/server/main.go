package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-tracker/src/config"
	"stock-tracker/src/helpers"
	"stock-tracker/src/logger"
	"stock-tracker/src/server"
	"stock-tracker/src/storage"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	config, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(config.Name)

	// Setup storage
	db, err := storage.NewDatabase(config.MConfig, appLogger)
	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
	}
	// Postgres may still be booting when the service starts
	if err := helpers.RetryWithBackoff("database init", 3, 2*time.Second, db.Initialize); err != nil {
		appLogger.Critical("Failed to migrate db: %v", err)
	}
	defer db.Close()

	srv := server.NewAPIServer(config.MConfig, db, appLogger)

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		appLogger.Info("Shutting down...")
		db.Close()
		os.Exit(0)
	}()

	if err := srv.Start(); err != nil {
		appLogger.Critical("Server failed: %v", err)
	}
}
