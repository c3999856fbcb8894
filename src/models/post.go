package models

// MPost is a single social-media post, the leaf evidence unit.
// Immutable; sourced from the static dataset.
type MPost struct {
	ID           string `json:"id"`
	Timestamp    int64  `json:"ts"`
	Platform     string `json:"platform"`
	AuthorHandle string `json:"author_handle"`
	Text         string `json:"text"`
	// Engagement is the sum of likes + reposts + replies, never negative.
	Engagement int `json:"engagement"`
}
