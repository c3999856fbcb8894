package core

import (
	"math"
	"testing"
)

// -----------------------------------------------------------------------------

func TestCombineConfidenceWeights(t *testing.T) {
	got := CombineConfidence(85, 72, 90)
	want := 82.6
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("CombineConfidence(85, 72, 90) = %v, want %v", got, want)
	}
}

func TestCombineConfidenceClampsInputs(t *testing.T) {
	got := CombineConfidence(150, -20, 50)
	want := 100*CoverageWeight + 0*CoherenceWeight + 50*RecencyWeight
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("CombineConfidence(150, -20, 50) = %v, want %v", got, want)
	}
}

func TestCombineConfidenceStaysInRange(t *testing.T) {
	cases := [][3]float64{
		{0, 0, 0},
		{100, 100, 100},
		{50, 25, 75},
		{100, 0, 0},
	}
	for _, c := range cases {
		got := CombineConfidence(c[0], c[1], c[2])
		if got < 0 || got > 100 {
			t.Errorf("CombineConfidence(%v, %v, %v) = %v, out of [0,100]", c[0], c[1], c[2], got)
		}
	}
}

// -----------------------------------------------------------------------------

func TestClampScore(t *testing.T) {
	if got := ClampScore(-5); got != 0 {
		t.Errorf("ClampScore(-5) = %v, want 0", got)
	}
	if got := ClampScore(105); got != 100 {
		t.Errorf("ClampScore(105) = %v, want 100", got)
	}
	if got := ClampScore(42.5); got != 42.5 {
		t.Errorf("ClampScore(42.5) = %v, want 42.5", got)
	}
}

// -----------------------------------------------------------------------------

func TestCoverageScore(t *testing.T) {
	// 365 posts over 365 baseline days means 1 expected post per day.
	// 2 posts in a 1-day window doubles the baseline but caps at 100.
	if got := CoverageScore(2, 365, 1, 365); got != 100 {
		t.Errorf("CoverageScore(2, 365, 1, 365) = %v, want 100", got)
	}

	// Half the expected volume scores 50.
	if got := CoverageScore(1, 365, 2, 365); got != 50 {
		t.Errorf("CoverageScore(1, 365, 2, 365) = %v, want 50", got)
	}

	// No baseline is neutral.
	if got := CoverageScore(5, 0, 1, 365); got != 50 {
		t.Errorf("CoverageScore with no posts = %v, want 50", got)
	}
}

// -----------------------------------------------------------------------------

func TestCoherenceScore(t *testing.T) {
	if got := CoherenceScore(nil); got != 50 {
		t.Errorf("CoherenceScore(nil) = %v, want 50", got)
	}
	if got := CoherenceScore([]float64{0.4}); got != 75 {
		t.Errorf("CoherenceScore(single) = %v, want 75", got)
	}

	// Identical sentiments are perfectly coherent.
	if got := CoherenceScore([]float64{0.5, 0.5, 0.5}); got != 100 {
		t.Errorf("CoherenceScore(identical) = %v, want 100", got)
	}

	// Maximal disagreement: sample std of {-1, 1} is sqrt(2) ~ 1.414,
	// giving (1 - 1.414/2)*100 ~ 29.3.
	got := CoherenceScore([]float64{-1, 1})
	want := (1 - math.Sqrt2/2) * 100
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("CoherenceScore({-1,1}) = %v, want %v", got, want)
	}
}

// -----------------------------------------------------------------------------

func TestSignificantSentiments(t *testing.T) {
	shares := []float64{0.6, 0.04, 0.3}
	sentiments := []float64{0.5, -0.9, 0.2}

	got := SignificantSentiments(shares, sentiments)
	if len(got) != 2 || got[0] != 0.5 || got[1] != 0.2 {
		t.Errorf("SignificantSentiments = %v, want [0.5 0.2]", got)
	}
}

// -----------------------------------------------------------------------------

func TestRecencyScore(t *testing.T) {
	if got := RecencyScore(0); got != 100 {
		t.Errorf("RecencyScore(0) = %v, want 100", got)
	}
	if got := RecencyScore(-3); got != 100 {
		t.Errorf("RecencyScore(future) = %v, want 100", got)
	}

	got := RecencyScore(10)
	want := 100 * math.Pow(0.95, 10)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("RecencyScore(10) = %v, want %v", got, want)
	}

	if got := RecencyScore(1000); got < 0 {
		t.Errorf("RecencyScore(1000) = %v, must not go negative", got)
	}
}
