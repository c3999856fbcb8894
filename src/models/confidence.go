package models

// MConfidenceMetrics is the per-event confidence assessment.
// All four fields are scores in [0,100]. Derived per request, never stored.
type MConfidenceMetrics struct {
	Coverage           float64 `json:"coverage"`
	SentimentCoherence float64 `json:"sentiment_coherence"`
	Recency            float64 `json:"recency"`
	Overall            float64 `json:"overall"`
}
