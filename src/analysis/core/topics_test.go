package core

import (
	"testing"

	"narrative-observer/src/helpers"
	"narrative-observer/src/models"
)

// Day-granular unix timestamps for readable windows.
func day(n int64) int64 { return n * 86400 }

func window(startDay, endDay int64) models.MTimeWindow {
	return models.MTimeWindow{Start: day(startDay), End: day(endDay)}
}

func topic(id string, startDay, endDay int64, share float64) models.MTopic {
	return models.MTopic{
		ID:           id,
		Ticker:       "ACME",
		MTimeWindow:  window(startDay, endDay),
		Label:        id,
		ShareOfPosts: share,
	}
}

// -----------------------------------------------------------------------------

func TestOverlapSeconds(t *testing.T) {
	if got := OverlapSeconds(window(10, 16), window(9, 12)); got != day(2) {
		t.Errorf("overlap = %d, want %d", got, day(2))
	}
	// Touching boundaries do not overlap.
	if got := OverlapSeconds(window(10, 16), window(16, 20)); got != 0 {
		t.Errorf("touching windows overlap = %d, want 0", got)
	}
	if got := OverlapSeconds(window(10, 16), window(20, 25)); got != 0 {
		t.Errorf("disjoint windows overlap = %d, want 0", got)
	}
}

// -----------------------------------------------------------------------------

func TestDominantTopicForRangeLargestOverlapWins(t *testing.T) {
	// Query Mar 10-16: A overlaps 2 days (10-12), B overlaps 3 days (13-16).
	topics := []models.MTopic{
		topic("A", 9, 12, 0.9),
		topic("B", 13, 20, 0.1),
	}

	got, err := DominantTopicForRange(window(10, 16), topics)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != "B" {
		t.Errorf("dominant = %v, want B", got)
	}
}

func TestDominantTopicForRangeTieBreaksByShare(t *testing.T) {
	topics := []models.MTopic{
		topic("low", 10, 16, 0.2),
		topic("high", 10, 16, 0.7),
	}

	got, err := DominantTopicForRange(window(10, 16), topics)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != "high" {
		t.Errorf("dominant = %v, want high", got)
	}
}

func TestDominantTopicForRangeFullTieKeepsFirst(t *testing.T) {
	topics := []models.MTopic{
		topic("first", 10, 16, 0.5),
		topic("second", 10, 16, 0.5),
	}

	got, err := DominantTopicForRange(window(10, 16), topics)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != "first" {
		t.Errorf("dominant = %v, want first (input order)", got)
	}
}

func TestDominantTopicForRangeNoOverlap(t *testing.T) {
	topics := []models.MTopic{topic("A", 1, 5, 0.9)}

	got, err := DominantTopicForRange(window(10, 16), topics)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("dominant = %v, want nil", got)
	}
}

func TestDominantTopicForRangeRejectsInvertedWindow(t *testing.T) {
	topics := []models.MTopic{topic("A", 1, 5, 0.9)}

	_, err := DominantTopicForRange(window(16, 10), topics)
	if !helpers.IsInvalidRange(err) {
		t.Errorf("err = %v, want InvalidRangeError", err)
	}
}

// -----------------------------------------------------------------------------

func TestDominantTopicAtPointUsesContainment(t *testing.T) {
	// A zero-width interval never overlaps, but containment still selects.
	topics := []models.MTopic{topic("A", 10, 16, 0.5)}

	got := DominantTopicAtPoint(day(12), topics)
	if got == nil || got.ID != "A" {
		t.Errorf("point query = %v, want A", got)
	}
}

func TestDominantTopicAtPointBoundariesIncluded(t *testing.T) {
	topics := []models.MTopic{topic("A", 10, 16, 0.5)}

	if got := DominantTopicAtPoint(day(10), topics); got == nil {
		t.Error("point at window start not contained")
	}
	if got := DominantTopicAtPoint(day(16), topics); got == nil {
		t.Error("point at window end not contained")
	}
	if got := DominantTopicAtPoint(day(17), topics); got != nil {
		t.Errorf("point outside window = %v, want nil", got)
	}
}

func TestDominantTopicAtPointTieBreaksByShare(t *testing.T) {
	topics := []models.MTopic{
		topic("low", 10, 16, 0.2),
		topic("high", 12, 14, 0.7),
	}

	got := DominantTopicAtPoint(day(13), topics)
	if got == nil || got.ID != "high" {
		t.Errorf("point query = %v, want high", got)
	}
}
