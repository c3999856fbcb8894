package models

// -----------------------------------------------------------------------------

// MExportRequest asks for an event analysis rendered as a markdown memo.
type MExportRequest struct {
	EventID string `json:"event_id"`
	Ticker  string `json:"ticker"`
	// When set, only these topic ids are included in the memo.
	SelectedTopics []string `json:"selected_topics"`
	// Counter-narrative counts are included unless explicitly disabled.
	IncludeCounterNarratives *bool `json:"include_counter_narratives"`
}

// CountersIncluded resolves the optional flag, defaulting to true.
func (r MExportRequest) CountersIncluded() bool {
	return r.IncludeCounterNarratives == nil || *r.IncludeCounterNarratives
}

// -----------------------------------------------------------------------------

// MExportResponse carries the rendered memo back to the client.
type MExportResponse struct {
	Markdown string `json:"markdown"`
	Filename string `json:"filename"`
}

// -----------------------------------------------------------------------------

// MExportRecord is the persisted trace of a generated memo.
type MExportRecord struct {
	ID        string `json:"id"`
	Ticker    string `json:"ticker"`
	EventID   string `json:"event_id"`
	Filename  string `json:"filename"`
	CreatedAt int64  `json:"created_at"`
}
