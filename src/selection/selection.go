package selection

import (
	"narrative-observer/src/analysis/core"
	"narrative-observer/src/models"
)

// Phase of the range selection state machine.
type Phase string

const (
	PhaseIdle          Phase = "IDLE"
	PhaseRangeStart    Phase = "RANGE_START"
	PhaseRangeComplete Phase = "RANGE_COMPLETE"
)

// Sentinel for "no index selected".
const NoIndex = -1

// -----------------------------------------------------------------------------

// SelectionState is the serializable state of a timeline selection.
// RangeStart and RangeEnd are raw click indices in click order; use
// Range for the normalized interval.
type SelectionState struct {
	CurrentIndex int   `json:"current_index"`
	RangeStart   int   `json:"range_start"`
	RangeEnd     int   `json:"range_end"`
	Phase        Phase `json:"phase"`
}

// NewSelectionState returns the initial idle state.
func NewSelectionState() SelectionState {
	return SelectionState{
		CurrentIndex: NoIndex,
		RangeStart:   NoIndex,
		RangeEnd:     NoIndex,
		Phase:        PhaseIdle,
	}
}

// -----------------------------------------------------------------------------

// Click advances the state machine with a click on timeline index idx.
// The first click anchors a range, the second completes it, and a click
// on a completed range starts a fresh one. Negative indices are ignored.
func Click(s SelectionState, idx int) SelectionState {
	if idx < 0 {
		return s
	}

	s.CurrentIndex = idx

	switch s.Phase {
	case PhaseIdle, PhaseRangeComplete:
		s.RangeStart = idx
		s.RangeEnd = NoIndex
		s.Phase = PhaseRangeStart
	case PhaseRangeStart:
		s.RangeEnd = idx
		s.Phase = PhaseRangeComplete
	}

	return s
}

// -----------------------------------------------------------------------------

// Clear drops any pending or completed range but keeps the cursor where
// it is, so clearing a selection does not lose the user's place.
func Clear(s SelectionState) SelectionState {
	s.RangeStart = NoIndex
	s.RangeEnd = NoIndex
	s.Phase = PhaseIdle
	return s
}

// -----------------------------------------------------------------------------

// Range returns the completed selection normalized so lo <= hi, with
// ok=false while no range is complete. Clicking right-to-left selects
// the same interval as left-to-right.
func (s SelectionState) Range() (lo, hi int, ok bool) {
	if s.Phase != PhaseRangeComplete {
		return NoIndex, NoIndex, false
	}
	lo, hi = s.RangeStart, s.RangeEnd
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

// -----------------------------------------------------------------------------

// RangeSelectionController binds a SelectionState to a concrete timeline:
// a sorted slice of timestamps plus the topics covering them. It answers
// "which topic is active" for the current cursor or the selected range.
type RangeSelectionController struct {
	State      SelectionState
	Timestamps []int64
	Topics     []models.MTopic
}

func NewRangeSelectionController(timestamps []int64, topics []models.MTopic) *RangeSelectionController {
	return &RangeSelectionController{
		State:      NewSelectionState(),
		Timestamps: timestamps,
		Topics:     topics,
	}
}

// -----------------------------------------------------------------------------

// Click forwards a timeline click, clamping out-of-bounds indices away.
func (c *RangeSelectionController) Click(idx int) {
	if idx < 0 || idx >= len(c.Timestamps) {
		return
	}
	c.State = Click(c.State, idx)
}

// Clear resets the selection, keeping the cursor.
func (c *RangeSelectionController) Clear() {
	c.State = Clear(c.State)
}

// -----------------------------------------------------------------------------

// ActiveTopicAtCursor resolves the topic containing the cursor's
// timestamp, or nil with no cursor or no containing topic.
func (c *RangeSelectionController) ActiveTopicAtCursor() *models.MTopic {
	if c.State.CurrentIndex == NoIndex || c.State.CurrentIndex >= len(c.Timestamps) {
		return nil
	}
	return core.DominantTopicAtPoint(c.Timestamps[c.State.CurrentIndex], c.Topics)
}

// -----------------------------------------------------------------------------

// ActiveTopicForRange resolves the dominant topic over the completed
// selection. Returns nil when no range is complete or nothing overlaps.
func (c *RangeSelectionController) ActiveTopicForRange() (*models.MTopic, error) {
	lo, hi, ok := c.State.Range()
	if !ok {
		return nil, nil
	}
	window := models.MTimeWindow{Start: c.Timestamps[lo], End: c.Timestamps[hi]}
	return core.DominantTopicForRange(window, c.Topics)
}
