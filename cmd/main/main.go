package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"narrative-observer/src/analysis"
	"narrative-observer/src/config"
	"narrative-observer/src/dataset"
	"narrative-observer/src/helpers"
	"narrative-observer/src/interfaces"
	"narrative-observer/src/logger"
	"narrative-observer/src/network"
	"narrative-observer/src/server"
	"narrative-observer/src/storage"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	config, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(config.MConfig, config.Name)

	// 2. Setup Storage
	var db interfaces.IDatabase

	switch config.Storage.DBType {
	case "postgres":
		db, err = storage.NewPostgresDB(config.MConfig, appLogger)
	default:
		// Default to SQLite
		db, err = storage.NewAsyncSQLiteDB(config.MConfig, appLogger)
	}

	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
	}
	if err := db.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate db: %v", err)
	}
	defer db.Close()

	// 3. Setup Components
	var networkManager interfaces.INetworkManager = network.NewAsyncNetworkManager(config.MConfig, appLogger)

	store := dataset.NewStore(config.MConfig, networkManager, appLogger)
	appLogger.Info("Loading dataset...")

	// Remote dataset fetches can fail transiently, so the initial load
	// goes through the retrying error handler.
	errorHandler := helpers.NewErrorHandler()
	if _, err := errorHandler.ExecuteWithRetry("dataset fetch", func() (interface{}, error) {
		return nil, store.Load()
	}, 3); err != nil {
		appLogger.Critical("Failed to load dataset: %v", err)
		os.Exit(1)
	}

	analyzer := analysis.NewAnalysisFacade(config.MConfig, appLogger)
	srv := server.NewAPIServer(config.MConfig, store, analyzer, db, appLogger)

	// 4. Start Server
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	}()

	// 5. Dataset hot reload
	reloader := dataset.NewReloader(config.MConfig, store, srv, appLogger)
	go reloader.Run()

	appLogger.Info("Initialization complete.")

	// 6. Main Loop
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	cleanupTicker := time.NewTicker(6 * time.Hour)
	defer cleanupTicker.Stop()

	for {
		select {
		case <-cleanupTicker.C:
			if err := db.CleanupOldData(); err != nil {
				appLogger.Error("Cleanup failed: %v", err)
			}

		case <-quit:
			appLogger.Info("Shutting down...")
			reloader.Stop()
			srv.Stop()
			return
		}
	}
}
