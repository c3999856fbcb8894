package models

// MDatasetFile mirrors the on-disk JSON dataset produced by the upstream
// collection pipeline. All collections are pre-validated and read-only
// once loaded.
type MDatasetFile struct {
	Instruments []MInstrument `json:"instruments"`
	PriceSeries []MPricePoint `json:"price_series"`
	Events      []MEvent      `json:"events"`
	Topics      []MTopic      `json:"topics"`
	Posts       []MPost       `json:"posts"`
}
