package models

// MPricePoint represents one point of the stored price series.
// Series are ordered by timestamp; duplicates for the same
// ticker+timestamp are not permitted.
type MPricePoint struct {
	Ticker    string  `json:"ticker"`
	Timestamp int64   `json:"ts"`
	Price     float64 `json:"price"`
	Volume    float64 `json:"volume"`
}
