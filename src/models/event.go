package models

// -----------------------------------------------------------------------------

// MEvent is a significant price-movement period for a ticker.
// Owned by the static dataset; read-only at request time.
type MEvent struct {
	ID          string `json:"id"`
	Ticker      string `json:"ticker"`
	MTimeWindow        // window_start / window_end, flattened in JSON
	MovePct     float64 `json:"move_pct"`
	VolZ        float64 `json:"vol_z"`
	Headline    string  `json:"headline"`
}

// Window returns the event's time window.
func (e MEvent) Window() MTimeWindow {
	return e.MTimeWindow
}

// -----------------------------------------------------------------------------

// MEventTopicSummary is the dominant topic for one event window,
// used for timeline labeling.
type MEventTopicSummary struct {
	EventID      string  `json:"event_id"`
	Ticker       string  `json:"ticker"`
	WindowStart  int64   `json:"window_start"`
	WindowEnd    int64   `json:"window_end"`
	TopicLabel   string  `json:"topic_label"`
	ShareOfPosts float64 `json:"share_of_posts"`
}

// -----------------------------------------------------------------------------

// MEventDetail bundles everything the dashboard needs for one event view.
type MEventDetail struct {
	Event      MEvent             `json:"event"`
	Topics     []MTopic           `json:"topics"`
	Posts      []MPost            `json:"posts"`
	Confidence MConfidenceMetrics `json:"confidence"`
}
