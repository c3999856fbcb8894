package server

import (
	"fmt"
	"hash/fnv"
	"strconv"

	"github.com/gin-gonic/gin"

	"narrative-observer/src/models"
)

// -----------------------------------------------------------------------------

// parseWindowQuery reads optional start/end unix-second bounds; 0 means
// unbounded on that side.
func parseWindowQuery(c *gin.Context) (int64, int64, error) {
	start, err := parseInt64Query(c, "start")
	if err != nil {
		return 0, 0, err
	}
	end, err := parseInt64Query(c, "end")
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// -----------------------------------------------------------------------------

func parseInt64Query(c *gin.Context, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

// -----------------------------------------------------------------------------

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// -----------------------------------------------------------------------------
// Client-safe redaction
// -----------------------------------------------------------------------------

const redactedTextLimit = 80

// redactPosts anonymizes author handles and truncates post text for
// client-facing display. The originals stay untouched.
func redactPosts(posts []models.MPost) []models.MPost {
	out := make([]models.MPost, len(posts))
	copy(out, posts)

	for i := range out {
		out[i].AuthorHandle = anonymizeHandle(out[i].AuthorHandle)
		if len(out[i].Text) > redactedTextLimit {
			out[i].Text = out[i].Text[:redactedTextLimit] + "..."
		}
	}
	return out
}

// -----------------------------------------------------------------------------

// anonymizeHandle replaces a handle with a stable opaque alias, so the
// same author stays recognizable across posts without being named.
func anonymizeHandle(handle string) string {
	h := fnv.New32a()
	h.Write([]byte(handle))
	return fmt.Sprintf("user_%08x", h.Sum32())
}

// -----------------------------------------------------------------------------

// filterTopics keeps only the topics whose id is in the wanted set,
// preserving order.
func filterTopics(topics []models.MTopic, wanted []string) []models.MTopic {
	set := make(map[string]bool, len(wanted))
	for _, id := range wanted {
		set[id] = true
	}

	out := make([]models.MTopic, 0, len(topics))
	for _, t := range topics {
		if set[t.ID] {
			out = append(out, t)
		}
	}
	return out
}
