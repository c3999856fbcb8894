package interfaces

import "narrative-observer/src/models"

// -----------------------------------------------------------------------------
// IDataset defines read access to the loaded static dataset. All methods
// are safe for concurrent use; the dataset never changes between reloads.
// -----------------------------------------------------------------------------

type IDataset interface {

	// -----------------------------------------------------------------------------

	// Instruments returns every tracked instrument.
	Instruments() []models.MInstrument

	// -----------------------------------------------------------------------------

	// PriceSeries returns the ordered series for a ticker, optionally
	// bounded to [start, end] (0 means unbounded on that side).
	PriceSeries(ticker string, start, end int64) ([]models.MPricePoint, error)

	// -----------------------------------------------------------------------------

	// Events returns a ticker's events, newest window first.
	Events(ticker string) ([]models.MEvent, error)

	// -----------------------------------------------------------------------------

	// EventByID returns a single event for the ticker.
	EventByID(ticker, eventID string) (models.MEvent, error)

	// -----------------------------------------------------------------------------

	// TopicsForEvent returns an event's topics, largest share first.
	TopicsForEvent(ticker, eventID string) []models.MTopic

	// -----------------------------------------------------------------------------

	// PostsForEvent returns every post referenced by an event's topics,
	// newest first.
	PostsForEvent(ticker, eventID string) []models.MPost

	// -----------------------------------------------------------------------------

	// AllPosts returns the full post collection (baseline calculations).
	AllPosts() []models.MPost

	// -----------------------------------------------------------------------------

	// Version identifies the currently loaded dataset revision.
	Version() string
}
