package main

import (
	"narrative-observer/src/analysis"
	"narrative-observer/src/dataset"
	"narrative-observer/src/interfaces"
	"narrative-observer/src/logger"
	"narrative-observer/src/models"
	"narrative-observer/src/server"
)

// -----------------------------------------------------------------------------

// startServers launches the API server and the dataset reloader.
func startServers(
	config *models.MConfig,
	store *dataset.Store,
	analyzer *analysis.AnalysisFacade,
	db interfaces.IDatabase,
	appLogger *logger.Logger,
) (*server.APIServer, *dataset.Reloader) {

	srv := server.NewAPIServer(config, store, analyzer, db, appLogger)

	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	}()

	reloader := dataset.NewReloader(config, store, srv, appLogger)
	go reloader.Run()

	appLogger.Info("API listening on %s:%d (try /api/health, /instruments, /ws)", config.Host, config.Port)
	return srv, reloader
}
