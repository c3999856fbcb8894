package main

import (
	"narrative-observer/src/analysis"
	"narrative-observer/src/dataset"
	"narrative-observer/src/interfaces"
	"narrative-observer/src/logger"
	"narrative-observer/src/models"
	"narrative-observer/src/network"
	"narrative-observer/src/storage"
)

// -----------------------------------------------------------------------------

// setupDatabase initializes the database connection based on config
func setupDatabase(config *models.MConfig, appLogger *logger.Logger) (interfaces.IDatabase, error) {
	var db interfaces.IDatabase
	var err error

	switch config.Storage.DBType {
	case "postgres":
		pgLogger := logger.NewLogger(config, "PostgresDB")
		db, err = storage.NewPostgresDB(config, pgLogger)
	default:
		// Default to SQLite
		sqliteLogger := logger.NewLogger(config, "SQLiteDB")
		db, err = storage.NewAsyncSQLiteDB(config, sqliteLogger)
	}

	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
		return nil, err
	}
	if err := db.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate db: %v", err)
		return nil, err
	}
	return db, nil
}

// -----------------------------------------------------------------------------

// setupNetwork initializes the network manager
func setupNetwork(config *models.MConfig) interfaces.INetworkManager {
	networkLogger := logger.NewLogger(config, "NetworkManager")
	return network.NewAsyncNetworkManager(config, networkLogger)
}

// -----------------------------------------------------------------------------

// setupDataset loads the configured dataset into a fresh store
func setupDataset(config *models.MConfig, appLogger *logger.Logger, nm interfaces.INetworkManager) (*dataset.Store, error) {
	storeLogger := logger.NewLogger(config, "Dataset")
	store := dataset.NewStore(config, nm, storeLogger)

	if err := store.Load(); err != nil {
		appLogger.Critical("Failed to load dataset: %v", err)
		return nil, err
	}
	return store, nil
}

// -----------------------------------------------------------------------------

// setupAnalysis initializes the analysis facade
func setupAnalysis(config *models.MConfig) *analysis.AnalysisFacade {
	analysisLogger := logger.NewLogger(config, "Analysis")
	return analysis.NewAnalysisFacade(config, analysisLogger)
}
