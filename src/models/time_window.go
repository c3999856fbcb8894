package models

import "fmt"

// -----------------------------------------------------------------------------

// MTimeWindow is a closed interval of unix timestamps (seconds).
// Invariant: Start <= End. Windows come from the static dataset and are
// immutable once constructed.
type MTimeWindow struct {
	Start int64 `json:"window_start"`
	End   int64 `json:"window_end"`
}

// -----------------------------------------------------------------------------

// Validate rejects inverted windows. Callers are expected to normalize
// before constructing a query window, so a reversed window is a caller bug.
func (w MTimeWindow) Validate() error {
	if w.Start > w.End {
		return fmt.Errorf("invalid time window: start %d after end %d", w.Start, w.End)
	}
	return nil
}

// -----------------------------------------------------------------------------

// DurationSeconds returns the window length in seconds.
func (w MTimeWindow) DurationSeconds() int64 {
	return w.End - w.Start
}

// -----------------------------------------------------------------------------

// Contains reports whether the instant ts falls inside the window,
// boundaries included.
func (w MTimeWindow) Contains(ts int64) bool {
	return w.Start <= ts && ts <= w.End
}
