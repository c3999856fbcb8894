package models

// -----------------------------------------------------------------------------

// MTopic is one discussion cluster tied to an event window.
// ShareOfPosts values across an event's topics are approximate and are
// not required to sum to exactly 1.
type MTopic struct {
	ID          string `json:"id"`
	Ticker      string `json:"ticker"`
	MTimeWindow        // window_start / window_end, flattened in JSON
	Label       string   `json:"topic_label"`
	Keywords    []string `json:"keywords"`
	// Fraction of discussion attributed to this topic, in [0,1].
	ShareOfPosts float64 `json:"share_of_posts"`
	// Aggregate sentiment in [-1,1].
	SentimentScore  float64  `json:"sentiment_score"`
	EvidencePostIDs []string `json:"evidence_post_ids"`
	CounterPostIDs  []string `json:"counter_post_ids"`
}

// -----------------------------------------------------------------------------

// Window returns the topic's time window.
func (t MTopic) Window() MTimeWindow {
	return t.MTimeWindow
}

// -----------------------------------------------------------------------------

// AllPostIDs returns the union of evidence and counter post ids.
// The two lists are disjoint by convention, not enforced.
func (t MTopic) AllPostIDs() []string {
	ids := make([]string, 0, len(t.EvidencePostIDs)+len(t.CounterPostIDs))
	ids = append(ids, t.EvidencePostIDs...)
	ids = append(ids, t.CounterPostIDs...)
	return ids
}

// -----------------------------------------------------------------------------

// MTopicTrendPoint is one weekly sample of engagement for a topic label.
type MTopicTrendPoint struct {
	WeekStart   string  `json:"week_start"` // ISO date, Monday of the week
	Impressions float64 `json:"impressions"`
}

// MTopicTrendSeries is the weekly engagement series for one topic label.
type MTopicTrendSeries struct {
	TopicLabel string             `json:"topic_label"`
	Points     []MTopicTrendPoint `json:"points"`
}
