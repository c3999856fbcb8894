package dataset

import (
	"os"
	"time"

	"narrative-observer/src/interfaces"
	"narrative-observer/src/logger"
	"narrative-observer/src/models"
)

// Reloader polls the dataset file for modification and reloads the store
// when it changes. URL-backed datasets are re-fetched every interval
// since there is no mtime to compare.
type Reloader struct {
	Config    *models.MConfig
	Logger    *logger.Logger
	Store     *Store
	Exchanger interfaces.IDataExchanger

	stopChan  chan struct{}
	lastMtime time.Time
}

// -----------------------------------------------------------------------------

func NewReloader(cfg *models.MConfig, store *Store, ex interfaces.IDataExchanger, log *logger.Logger) *Reloader {
	return &Reloader{
		Config:    cfg,
		Logger:    log,
		Store:     store,
		Exchanger: ex,
		stopChan:  make(chan struct{}),
	}
}

// -----------------------------------------------------------------------------

// Run blocks until Stop, checking for dataset changes every interval.
// Call in a goroutine. An interval of 0 disables reloading.
func (r *Reloader) Run() {
	interval := r.Config.Dataset.ReloadIntervalSeconds
	if interval <= 0 {
		r.Logger.Info("Dataset reloading disabled")
		return
	}

	if info, err := os.Stat(r.Config.Dataset.Path); err == nil {
		r.lastMtime = info.ModTime()
	}

	ticker := time.NewTicker(time.Duration(interval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case <-ticker.C:
			r.checkAndReload()
		}
	}
}

// -----------------------------------------------------------------------------

func (r *Reloader) checkAndReload() {
	if r.Config.Dataset.URL == "" {
		info, err := os.Stat(r.Config.Dataset.Path)
		if err != nil {
			r.Logger.Warning("Cannot stat dataset file: %v", err)
			return
		}
		if !info.ModTime().After(r.lastMtime) {
			r.Logger.Debug("Dataset file unchanged")
			return
		}
		r.lastMtime = info.ModTime()
	}

	oldVersion := r.Store.Version()
	if err := r.Store.Load(); err != nil {
		r.Logger.Error("Dataset reload failed, keeping previous version: %v", err)
		return
	}

	newVersion := r.Store.Version()
	if newVersion == oldVersion {
		return
	}

	r.Logger.Info("Dataset reloaded: %s -> %s", oldVersion, newVersion)
	if r.Exchanger != nil {
		r.Exchanger.NotifyDatasetVersion(newVersion)
	}
}

// -----------------------------------------------------------------------------

func (r *Reloader) Stop() {
	close(r.stopChan)
}
