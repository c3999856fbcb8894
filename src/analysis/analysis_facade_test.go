package analysis

import (
	"testing"
	"time"

	"narrative-observer/src/logger"
	"narrative-observer/src/models"
)

func newTestFacade() *AnalysisFacade {
	cfg := &models.MConfig{
		Dataset: models.MDatasetConfig{BaselineWindowDays: 365},
	}
	return NewAnalysisFacade(cfg, logger.NewLogger(nil, "test"))
}

// -----------------------------------------------------------------------------

func TestConfidenceForRoundsAndCombines(t *testing.T) {
	a := newTestFacade()

	// 2-day window ending exactly now: recency 100.
	now := time.Unix(200000, 0)
	event := models.MEvent{
		ID:          "e1",
		Ticker:      "ACME",
		MTimeWindow: models.MTimeWindow{Start: now.Unix() - 86400, End: now.Unix()},
	}
	topics := []models.MTopic{
		{ShareOfPosts: 0.6, SentimentScore: 0.5},
		{ShareOfPosts: 0.4, SentimentScore: 0.5},
	}
	posts := []models.MPost{
		{ID: "p1", Timestamp: now.Unix() - 1000},
		{ID: "p2", Timestamp: now.Unix() - 2000},
	}

	conf := a.ConfidenceFor(event, topics, posts, 365, now)

	// 2 posts against a baseline of 1/day over a 2-day window: exactly expected.
	if conf.Coverage != 100 {
		t.Errorf("coverage = %v, want 100", conf.Coverage)
	}
	// Two identical sentiments are perfectly coherent.
	if conf.SentimentCoherence != 100 {
		t.Errorf("coherence = %v, want 100", conf.SentimentCoherence)
	}
	if conf.Recency != 100 {
		t.Errorf("recency = %v, want 100", conf.Recency)
	}
	if conf.Overall != 100 {
		t.Errorf("overall = %v, want 100", conf.Overall)
	}
}

func TestConfidenceForInsignificantTopicsExcluded(t *testing.T) {
	a := newTestFacade()

	now := time.Unix(200000, 0)
	event := models.MEvent{
		MTimeWindow: models.MTimeWindow{Start: now.Unix() - 86400, End: now.Unix()},
	}
	// The 4% topic's contrarian sentiment must not drag coherence down.
	topics := []models.MTopic{
		{ShareOfPosts: 0.96, SentimentScore: 0.5},
		{ShareOfPosts: 0.04, SentimentScore: -1.0},
	}

	conf := a.ConfidenceFor(event, topics, nil, 365, now)
	if conf.SentimentCoherence != 75 {
		t.Errorf("coherence = %v, want 75 (single significant topic)", conf.SentimentCoherence)
	}
}

func TestConfidenceForFutureWindow(t *testing.T) {
	a := newTestFacade()

	now := time.Unix(200000, 0)
	event := models.MEvent{
		MTimeWindow: models.MTimeWindow{Start: now.Unix() + 86400, End: now.Unix() + 2*86400},
	}

	conf := a.ConfidenceFor(event, nil, nil, 365, now)
	if conf.Recency != 100 {
		t.Errorf("recency for future window = %v, want 100", conf.Recency)
	}
}

// -----------------------------------------------------------------------------

func TestTopicMapPicksDominantPerEvent(t *testing.T) {
	a := newTestFacade()

	events := []models.MEvent{
		{ID: "e1", Ticker: "ACME", MTimeWindow: models.MTimeWindow{Start: 100, End: 200}},
		{ID: "e2", Ticker: "ACME", MTimeWindow: models.MTimeWindow{Start: 300, End: 400}},
	}
	topicsByEvent := map[string][]models.MTopic{
		"e1": {
			{ID: "e1-t1", Label: "big", ShareOfPosts: 0.7, MTimeWindow: models.MTimeWindow{Start: 100, End: 200}},
			{ID: "e1-t2", Label: "small", ShareOfPosts: 0.3, MTimeWindow: models.MTimeWindow{Start: 100, End: 200}},
		},
		// e2 has no topics and is omitted.
	}

	got := a.TopicMap(events, topicsByEvent)
	if len(got) != 1 {
		t.Fatalf("summaries = %d, want 1", len(got))
	}
	if got[0].EventID != "e1" || got[0].TopicLabel != "big" {
		t.Errorf("summary = %+v, want e1/big", got[0])
	}
	if got[0].WindowStart != 100 || got[0].WindowEnd != 200 {
		t.Errorf("summary window = [%d,%d], want event window", got[0].WindowStart, got[0].WindowEnd)
	}
}

// -----------------------------------------------------------------------------

func TestTopicTrendsWeeklyBuckets(t *testing.T) {
	a := newTestFacade()

	// Mon 2025-03-10 00:00 UTC and the following Wednesday / next Monday.
	mon := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC).Unix()
	wed := mon + 2*86400
	nextMon := mon + 7*86400

	topics := []models.MTopic{
		{Label: "launch", EvidencePostIDs: []string{"p1", "p2", "p3"}},
	}
	posts := []models.MPost{
		{ID: "p1", Timestamp: mon, Engagement: 10},
		{ID: "p2", Timestamp: wed, Engagement: 5},
		{ID: "p3", Timestamp: nextMon, Engagement: 7},
	}

	got := a.TopicTrends(topics, posts, 10)
	if len(got) != 1 {
		t.Fatalf("series = %d, want 1", len(got))
	}

	points := got[0].Points
	if len(points) != 2 {
		t.Fatalf("points = %+v, want 2 weekly buckets", points)
	}
	if points[0].WeekStart != "2025-03-10" || points[0].Impressions != 15 {
		t.Errorf("week 1 = %+v, want 2025-03-10/15", points[0])
	}
	if points[1].WeekStart != "2025-03-17" || points[1].Impressions != 7 {
		t.Errorf("week 2 = %+v, want 2025-03-17/7", points[1])
	}
}

func TestTopicTrendsTopNByEngagement(t *testing.T) {
	a := newTestFacade()

	topics := []models.MTopic{
		{Label: "quiet", EvidencePostIDs: []string{"p1"}},
		{Label: "loud", EvidencePostIDs: []string{"p2"}},
	}
	posts := []models.MPost{
		{ID: "p1", Timestamp: 1000, Engagement: 1},
		{ID: "p2", Timestamp: 1000, Engagement: 100},
	}

	got := a.TopicTrends(topics, posts, 1)
	if len(got) != 1 || got[0].TopicLabel != "loud" {
		t.Errorf("topN series = %+v, want only loud", got)
	}
}

// -----------------------------------------------------------------------------

func TestWeekStartISO(t *testing.T) {
	// Sunday 2025-03-16 belongs to the week starting Monday 2025-03-10.
	sun := time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC).Unix()
	if got := weekStartISO(sun); got != "2025-03-10" {
		t.Errorf("weekStartISO(sunday) = %s, want 2025-03-10", got)
	}

	mon := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC).Unix()
	if got := weekStartISO(mon); got != "2025-03-10" {
		t.Errorf("weekStartISO(monday) = %s, want 2025-03-10", got)
	}
}
