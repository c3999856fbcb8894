package core

import (
	"narrative-observer/src/helpers"
	"narrative-observer/src/models"
)

// -----------------------------------------------------------------------------

// OverlapSeconds returns the length of the intersection of two windows in
// seconds, never negative. Touching windows (shared boundary instant)
// count as zero overlap.
func OverlapSeconds(a, b models.MTimeWindow) int64 {
	lo := a.Start
	if b.Start > lo {
		lo = b.Start
	}
	hi := a.End
	if b.End < hi {
		hi = b.End
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// -----------------------------------------------------------------------------

// DominantTopicForRange selects the topic that best represents the query
// window: largest overlap wins, ties broken by larger share of posts,
// remaining ties by input order. Returns nil when no topic overlaps.
// A query window with start after end is rejected.
func DominantTopicForRange(query models.MTimeWindow, topics []models.MTopic) (*models.MTopic, error) {
	if query.Start > query.End {
		return nil, &helpers.InvalidRangeError{Start: query.Start, End: query.End}
	}

	var best *models.MTopic
	var bestOverlap int64

	for i := range topics {
		overlap := OverlapSeconds(query, topics[i].Window())
		if overlap <= 0 {
			continue
		}
		if best == nil || overlap > bestOverlap ||
			(overlap == bestOverlap && topics[i].ShareOfPosts > best.ShareOfPosts) {
			best = &topics[i]
			bestOverlap = overlap
		}
	}

	return best, nil
}

// -----------------------------------------------------------------------------

// DominantTopicAtPoint selects the topic for a single instant. A zero
// width window has no interval overlap with anything, so the point query
// uses containment instead: among topics whose window contains the
// instant, the largest share of posts wins, ties by input order.
func DominantTopicAtPoint(ts int64, topics []models.MTopic) *models.MTopic {
	var best *models.MTopic

	for i := range topics {
		if !topics[i].Contains(ts) {
			continue
		}
		if best == nil || topics[i].ShareOfPosts > best.ShareOfPosts {
			best = &topics[i]
		}
	}

	return best
}
