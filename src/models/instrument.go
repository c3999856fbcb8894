package models

// MInstrument identifies a tracked stock.
type MInstrument struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}
