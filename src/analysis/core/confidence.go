package core

import "math"

// -----------------------------------------------------------------------------

// Fixed weights for the overall confidence combination. These are part of
// the scoring contract and deliberately have no configuration surface.
const (
	CoverageWeight  = 0.4
	CoherenceWeight = 0.3
	RecencyWeight   = 0.3
)

// Daily decay factor for the recency score.
const recencyDecayPerDay = 0.95

// Share below which a topic is ignored for sentiment coherence.
const significantShareFloor = 0.05

// -----------------------------------------------------------------------------

// ClampScore bounds a sub-score to the [0,100] scale.
func ClampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// -----------------------------------------------------------------------------

// CombineConfidence computes the weighted overall score from the three
// sub-scores. Inputs outside [0,100] are clamped before combining;
// upstream should already guarantee the range.
func CombineConfidence(coverage, coherence, recency float64) float64 {
	coverage = ClampScore(coverage)
	coherence = ClampScore(coherence)
	recency = ClampScore(recency)
	return coverage*CoverageWeight + coherence*CoherenceWeight + recency*RecencyWeight
}

// -----------------------------------------------------------------------------

// CoverageScore rates post volume in the event window against the
// dataset-wide baseline. baselineDays is the span the dataset is assumed
// to cover. Returns the neutral 50 when no baseline exists.
func CoverageScore(postsInWindow, totalPosts int, windowDays int64, baselineDays int) float64 {
	if totalPosts <= 0 || baselineDays <= 0 {
		return 50.0
	}

	baselinePerDay := float64(totalPosts) / float64(baselineDays)
	expected := baselinePerDay * float64(windowDays)
	if expected <= 0 {
		return 50.0
	}

	return math.Min(100.0, float64(postsInWindow)/expected*100.0)
}

// -----------------------------------------------------------------------------

// CoherenceScore rates sentiment agreement across the significant topics'
// sentiment scores. Lower spread means higher coherence. A single topic is
// reasonably coherent (75); no topics is neutral (50).
func CoherenceScore(sentiments []float64) float64 {
	switch len(sentiments) {
	case 0:
		return 50.0
	case 1:
		return 75.0
	}

	// Sentiment spans [-1,1], so the sample deviation spans [0,2].
	std := CalculateSampleStd(sentiments)
	return math.Max(0.0, (1-std/2)*100.0)
}

// -----------------------------------------------------------------------------

// SignificantSentiments extracts sentiment scores of topics whose share
// clears the significance floor.
func SignificantSentiments(shares, sentiments []float64) []float64 {
	var out []float64
	for i, share := range shares {
		if share > significantShareFloor && i < len(sentiments) {
			out = append(out, sentiments[i])
		}
	}
	return out
}

// -----------------------------------------------------------------------------

// RecencyScore decays from 100 by 5% per day since the event window
// ended. Future windows score 100.
func RecencyScore(daysSinceEvent int64) float64 {
	if daysSinceEvent < 0 {
		return 100.0
	}
	return math.Max(0.0, 100.0*math.Pow(recencyDecayPerDay, float64(daysSinceEvent)))
}
