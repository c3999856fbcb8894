package core

import (
	"sort"

	"narrative-observer/src/models"
)

// -----------------------------------------------------------------------------

// EngagementWeightedShares recomputes each topic's share of posts from
// engagement counts instead of raw post counts: a topic's share becomes
// its summed engagement over the union of evidence and counter posts,
// divided by the total across all topics. Posts missing from the post set
// contribute 0. When total engagement is zero the original shares and
// ordering are preserved. The result is a new slice sorted descending by
// share; the inputs are not mutated.
func EngagementWeightedShares(topics []models.MTopic, posts []models.MPost) []models.MTopic {
	engagementByID := make(map[string]int, len(posts))
	for _, p := range posts {
		engagementByID[p.ID] = p.Engagement
	}

	updated := make([]models.MTopic, len(topics))
	copy(updated, topics)

	perTopic := make([]int, len(topics))
	total := 0

	for i := range topics {
		sum := 0
		for _, pid := range topics[i].AllPostIDs() {
			sum += engagementByID[pid]
		}
		perTopic[i] = sum
		total += sum
	}

	// Zero-guard: no engagement anywhere leaves shares untouched.
	if total == 0 {
		return updated
	}

	for i := range updated {
		updated[i].ShareOfPosts = Round3(float64(perTopic[i]) / float64(total))
	}

	sort.SliceStable(updated, func(i, j int) bool {
		return updated[i].ShareOfPosts > updated[j].ShareOfPosts
	})

	return updated
}
