package main

import (
	"fmt"
	"time"

	"narrative-observer/src/analysis"
	"narrative-observer/src/dataset"
	"narrative-observer/src/export"
	"narrative-observer/src/interfaces"
	"narrative-observer/src/logger"
	"narrative-observer/src/models"
	"narrative-observer/src/selection"
	"narrative-observer/src/utils"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------

// runAnalysisSmoke walks every analysis path once against the loaded
// dataset and persists a sample export record and audit entry.
func runAnalysisSmoke(
	store *dataset.Store,
	analyzer *analysis.AnalysisFacade,
	db interfaces.IDatabase,
	appLogger *logger.Logger,
) error {

	instruments := store.Instruments()
	if len(instruments) == 0 {
		return fmt.Errorf("dataset has no instruments")
	}
	appLogger.Info("Dataset version %s with %d instruments", store.Version(), len(instruments))

	allPosts := store.AllPosts()

	for _, inst := range instruments {
		events, err := store.Events(inst.Ticker)
		if err != nil || len(events) == 0 {
			appLogger.Info("%s: no events", inst.Ticker)
			continue
		}

		for _, ev := range events {
			topics := store.TopicsForEvent(inst.Ticker, ev.ID)
			posts := store.PostsForEvent(inst.Ticker, ev.ID)

			conf := analyzer.ConfidenceFor(ev, topics, posts, len(allPosts), time.Now())
			appLogger.Info("%s %s: confidence overall=%.1f (cov=%.1f coh=%.1f rec=%.1f)",
				inst.Ticker, ev.ID, conf.Overall, conf.Coverage, conf.SentimentCoherence, conf.Recency)

			reweighted := analyzer.ReweightByEngagement(topics, posts)
			for _, t := range reweighted {
				appLogger.Info("  topic %s: share %.3f", t.Label, t.ShareOfPosts)
			}

			// Selection round-trip against the event's price timeline
			if err := smokeSelection(store, inst.Ticker, ev, topics, appLogger); err != nil {
				return err
			}

			// Memo render + export record
			now := time.Now()
			markdown := export.RenderMemo(ev, topics, conf, store.Version(), true, now)
			filename := export.BuildFilename(inst.Ticker, ev.ID, now)
			appLogger.Info("  memo %s (%d bytes)", filename, len(markdown))

			if err := db.SaveExportRecord(export.NewExportRecord(inst.Ticker, ev.ID, filename, now)); err != nil {
				return fmt.Errorf("save export record: %w", err)
			}
		}

		// Topic map + trends across all of the ticker's events
		topicsByEvent := make(map[string][]models.MTopic)
		var allTopics []models.MTopic
		for _, ev := range events {
			ts := store.TopicsForEvent(inst.Ticker, ev.ID)
			topicsByEvent[ev.ID] = ts
			allTopics = append(allTopics, ts...)
		}

		for _, sum := range analyzer.TopicMap(events, topicsByEvent) {
			appLogger.Info("%s map: %s -> %s (%.2f)", inst.Ticker, sum.EventID, sum.TopicLabel, sum.ShareOfPosts)
		}
		for _, series := range analyzer.TopicTrends(allTopics, allPosts, 10) {
			appLogger.Info("%s trend: %s, %d weeks", inst.Ticker, series.TopicLabel, len(series.Points))
		}
	}

	// Audit persistence path
	entry := models.MAuditEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().Unix(),
		Action:    utils.ActionViewEvent,
		Ticker:    instruments[0].Ticker,
		Detail:    "harness smoke",
	}
	if err := db.SaveAuditEntriesBulk([]models.MAuditEntry{entry}); err != nil {
		return fmt.Errorf("save audit entry: %w", err)
	}

	recent, err := db.ListRecentAuditEntries(5)
	if err != nil {
		return fmt.Errorf("list audit entries: %w", err)
	}
	appLogger.Info("Audit log holds %d recent entries", len(recent))

	return nil
}

// -----------------------------------------------------------------------------

// smokeSelection drives the range selection state machine across the
// event's price timeline and resolves the active topic both ways.
func smokeSelection(
	store *dataset.Store,
	ticker string,
	ev models.MEvent,
	topics []models.MTopic,
	appLogger *logger.Logger,
) error {

	series, err := store.PriceSeries(ticker, 0, 0)
	if err != nil || len(series) == 0 {
		return nil
	}

	timestamps := make([]int64, len(series))
	for i, p := range series {
		timestamps[i] = p.Timestamp
	}

	ctrl := selection.NewRangeSelectionController(timestamps, topics)
	ctrl.Click(len(timestamps) - 1)
	ctrl.Click(0)

	dominant, err := ctrl.ActiveTopicForRange()
	if err != nil {
		return fmt.Errorf("range selection: %w", err)
	}
	if dominant != nil {
		appLogger.Info("  selection [full series]: %s", dominant.Label)
	}

	ctrl.Clear()
	if at := ctrl.ActiveTopicAtCursor(); at != nil {
		appLogger.Info("  selection cursor: %s", at.Label)
	}

	return nil
}
