package export

import (
	"strings"
	"testing"
	"time"

	"narrative-observer/src/models"
)

func fixtureEvent() models.MEvent {
	return models.MEvent{
		ID:     "evt-1",
		Ticker: "ACME",
		MTimeWindow: models.MTimeWindow{
			Start: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC).Unix(),
			End:   time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC).Unix(),
		},
		MovePct:  7.6,
		VolZ:     3.2,
		Headline: "ACME rallies",
	}
}

func fixtureTopics() []models.MTopic {
	return []models.MTopic{
		{
			ID: "evt-1-t1", Label: "Product launch",
			Keywords:        []string{"launch", "demo"},
			ShareOfPosts:    0.62,
			SentimentScore:  0.55,
			EvidencePostIDs: []string{"p1", "p2", "p3", "p4"},
			CounterPostIDs:  []string{"p5"},
		},
	}
}

// -----------------------------------------------------------------------------

func TestRenderMemoSections(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	conf := models.MConfidenceMetrics{Coverage: 85, SentimentCoherence: 72, Recency: 90, Overall: 82.6}

	md := RenderMemo(fixtureEvent(), fixtureTopics(), conf, "abc123", true, now)

	for _, want := range []string{
		"# Stock Movement Analysis: ACME - 2025-03-10 to 2025-03-12",
		"**DISCLAIMER**",
		"## Event Summary",
		"- **Price Movement**: +7.6%",
		"## Confidence Assessment",
		"- **Overall Confidence**: 82.6/100",
		"### 1. Product launch",
		"- **Share of Discussion**: 62.0%",
		"- **Sentiment Score**: +0.55 (scale: -1 to +1)",
		"- **Counter-Narratives**: 1 posts expressing contrasting views",
		"*Sample evidence: Post IDs p1, p2, p3*",
		"## Methodology & Data Sources",
		"- Dataset Version: abc123 (static historical archive)",
		"- Generated: 2025-03-15 10:30:00 UTC",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("memo missing %q", want)
		}
	}
}

func TestRenderMemoCountersExcluded(t *testing.T) {
	now := time.Now()
	md := RenderMemo(fixtureEvent(), fixtureTopics(), models.MConfidenceMetrics{}, "v", false, now)

	if strings.Contains(md, "Counter-Narratives") {
		t.Error("memo includes counter-narratives despite includeCounters=false")
	}
}

// -----------------------------------------------------------------------------

func TestBuildFilename(t *testing.T) {
	now := time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC)
	got := BuildFilename("ACME", "evt-1", now)
	want := "ACME_evt-1_analysis_20250315.md"
	if got != want {
		t.Errorf("filename = %q, want %q", got, want)
	}
}

// -----------------------------------------------------------------------------

func TestNewExportRecord(t *testing.T) {
	now := time.Unix(1700000000, 0)
	rec := NewExportRecord("ACME", "evt-1", "f.md", now)

	if rec.ID == "" {
		t.Error("record id empty")
	}
	if rec.Ticker != "ACME" || rec.EventID != "evt-1" || rec.Filename != "f.md" {
		t.Errorf("record = %+v", rec)
	}
	if rec.CreatedAt != now.Unix() {
		t.Errorf("created_at = %d, want %d", rec.CreatedAt, now.Unix())
	}

	other := NewExportRecord("ACME", "evt-1", "f.md", now)
	if other.ID == rec.ID {
		t.Error("record ids not unique")
	}
}
