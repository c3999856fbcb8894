package models

// MSessionDay flags one calendar day as a trading session or not,
// per the ticker's exchange calendar.
type MSessionDay struct {
	Date       string `json:"date"` // ISO date in the exchange timezone
	TradingDay bool   `json:"trading_day"`
}

// MSessionSummary is the /sessions payload for one ticker and window.
type MSessionSummary struct {
	Ticker      string        `json:"ticker"`
	Days        []MSessionDay `json:"days"`
	TradingDays int           `json:"trading_days"`
}
