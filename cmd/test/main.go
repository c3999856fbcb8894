package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"narrative-observer/src/config"
	"narrative-observer/src/logger"
)

// Manual end-to-end harness: loads the real dataset, runs every analysis
// path once, then serves the API so endpoints can be poked by hand.
func main() {
	// 1. Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	serve := flag.Bool("serve", true, "start the HTTP server after the smoke run")
	flag.Parse()

	// 2. Load config
	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// 3. Setup Logger
	appLogger := logger.NewLogger(conf.MConfig, conf.Name+"-harness")

	// 4. Setup Components
	db, err := setupDatabase(conf.MConfig, appLogger)
	if err != nil {
		os.Exit(1)
	}
	defer db.Close()

	networkManager := setupNetwork(conf.MConfig)
	store, err := setupDataset(conf.MConfig, appLogger, networkManager)
	if err != nil {
		os.Exit(1)
	}
	analyzer := setupAnalysis(conf.MConfig)

	// 5. Smoke every analysis path against the loaded dataset
	if err := runAnalysisSmoke(store, analyzer, db, appLogger); err != nil {
		appLogger.Critical("Smoke run failed: %v", err)
		os.Exit(1)
	}

	if !*serve {
		appLogger.Info("Smoke run complete, exiting (serve=false).")
		return
	}

	// 6. Start Server
	srv, reloader := startServers(conf.MConfig, store, analyzer, db, appLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	reloader.Stop()
	srv.Stop()
}
