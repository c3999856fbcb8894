package analysis

import (
	"sort"
	"time"

	"narrative-observer/src/analysis/core"
	"narrative-observer/src/logger"
	"narrative-observer/src/models"
)

const secondsPerDay = 86400

type AnalysisFacade struct {
	Config *models.MConfig
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAnalysisFacade(cfg *models.MConfig, log *logger.Logger) *AnalysisFacade {
	return &AnalysisFacade{
		Config: cfg,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

// ConfidenceFor scores one event from its topics and posts. totalPosts is
// the dataset-wide post count used for the volume baseline; now anchors
// the recency decay. All four scores are rounded to one decimal.
func (a *AnalysisFacade) ConfidenceFor(
	event models.MEvent,
	topics []models.MTopic,
	posts []models.MPost,
	totalPosts int,
	now time.Time,
) models.MConfidenceMetrics {

	window := event.Window()

	// Inclusive day count: a window shorter than a day still spans one day.
	windowDays := window.DurationSeconds()/secondsPerDay + 1

	postsInWindow := 0
	for _, p := range posts {
		if window.Contains(p.Timestamp) {
			postsInWindow++
		}
	}

	coverage := core.CoverageScore(postsInWindow, totalPosts, windowDays, a.Config.Dataset.BaselineWindowDays)

	shares := make([]float64, len(topics))
	sentiments := make([]float64, len(topics))
	for i, t := range topics {
		shares[i] = t.ShareOfPosts
		sentiments[i] = t.SentimentScore
	}
	coherence := core.CoherenceScore(core.SignificantSentiments(shares, sentiments))

	daysSince := (now.Unix() - window.End) / secondsPerDay
	if now.Unix() < window.End {
		daysSince = -1
	}
	recency := core.RecencyScore(daysSince)

	return models.MConfidenceMetrics{
		Coverage:           core.Round1(coverage),
		SentimentCoherence: core.Round1(coherence),
		Recency:            core.Round1(recency),
		Overall:            core.Round1(core.CombineConfidence(coverage, coherence, recency)),
	}
}

// -----------------------------------------------------------------------------

// TopicMap labels each event with its dominant topic. Events whose
// window no topic overlaps are omitted.
func (a *AnalysisFacade) TopicMap(
	events []models.MEvent,
	topicsByEvent map[string][]models.MTopic,
) []models.MEventTopicSummary {

	summaries := make([]models.MEventTopicSummary, 0, len(events))

	for _, ev := range events {
		dominant, err := core.DominantTopicForRange(ev.Window(), topicsByEvent[ev.ID])
		if err != nil {
			// Event windows are validated at dataset load.
			a.Logger.Error("Skipping event %s: %v", ev.ID, err)
			continue
		}
		if dominant == nil {
			continue
		}

		summaries = append(summaries, models.MEventTopicSummary{
			EventID:      ev.ID,
			Ticker:       ev.Ticker,
			WindowStart:  ev.Start,
			WindowEnd:    ev.End,
			TopicLabel:   dominant.Label,
			ShareOfPosts: dominant.ShareOfPosts,
		})
	}

	return summaries
}

// -----------------------------------------------------------------------------

// TopicTrends buckets post engagement into calendar weeks (Monday start,
// UTC) per topic label, and keeps the topN labels by total engagement.
// Labels tie-break alphabetically so output is stable across runs.
func (a *AnalysisFacade) TopicTrends(
	topics []models.MTopic,
	posts []models.MPost,
	topN int,
) []models.MTopicTrendSeries {

	postByID := make(map[string]models.MPost, len(posts))
	for _, p := range posts {
		postByID[p.ID] = p
	}

	weekly := make(map[string]map[string]float64) // label -> week -> engagement
	totals := make(map[string]float64)

	for _, t := range topics {
		if _, ok := weekly[t.Label]; !ok {
			weekly[t.Label] = make(map[string]float64)
		}
		for _, pid := range t.AllPostIDs() {
			p, ok := postByID[pid]
			if !ok {
				continue
			}
			week := weekStartISO(p.Timestamp)
			weekly[t.Label][week] += float64(p.Engagement)
			totals[t.Label] += float64(p.Engagement)
		}
	}

	labels := make([]string, 0, len(weekly))
	for label := range weekly {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if totals[labels[i]] != totals[labels[j]] {
			return totals[labels[i]] > totals[labels[j]]
		}
		return labels[i] < labels[j]
	})

	if topN > 0 && len(labels) > topN {
		labels = labels[:topN]
	}

	series := make([]models.MTopicTrendSeries, 0, len(labels))
	for _, label := range labels {
		buckets := weekly[label]

		weeks := make([]string, 0, len(buckets))
		for w := range buckets {
			weeks = append(weeks, w)
		}
		sort.Strings(weeks)

		points := make([]models.MTopicTrendPoint, 0, len(weeks))
		for _, w := range weeks {
			points = append(points, models.MTopicTrendPoint{
				WeekStart:   w,
				Impressions: buckets[w],
			})
		}

		series = append(series, models.MTopicTrendSeries{
			TopicLabel: label,
			Points:     points,
		})
	}

	return series
}

// -----------------------------------------------------------------------------

// ReweightByEngagement re-derives topic shares from post engagement.
func (a *AnalysisFacade) ReweightByEngagement(
	topics []models.MTopic,
	posts []models.MPost,
) []models.MTopic {
	return core.EngagementWeightedShares(topics, posts)
}

// -----------------------------------------------------------------------------

// weekStartISO returns the ISO date of the Monday of the week containing ts.
func weekStartISO(ts int64) string {
	t := time.Unix(ts, 0).UTC()
	// time.Weekday puts Sunday at 0; shift so Monday is the week start.
	offset := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -offset)
	return monday.Format("2006-01-02")
}
