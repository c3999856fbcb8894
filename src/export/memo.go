package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"narrative-observer/src/models"
)

// -----------------------------------------------------------------------------

const memoDisclaimer = "**DISCLAIMER**: This memo presents evidence-based analysis of social " +
	"media discussion patterns associated with stock price movements. It does NOT constitute " +
	"investment advice, recommendations to buy/sell securities, or price targets. All analysis " +
	"is based on static historical datasets and reflects correlation, not causation."

const memoMethodology = `
## Methodology & Data Sources

This analysis employs the following approach:

### Data Collection
- **Source**: Static social media dataset (Twitter/X platform)
- **Collection Method**: Historical archive, no live scraping
- **Time Window**: Posts published within the event date range
- **No External APIs**: All data processed from local dataset

### Analysis Techniques
- **Topic Clustering**: Pre-computed topic groups using NLP entity extraction
- **Sentiment Analysis**: Automated sentiment classification (positive/neutral/negative)
- **Volume Analysis**: Post counts compared to baseline activity
- **Coverage Metrics**: Share of discussion for each topic

### Important Limitations

**This is descriptive analysis only:**
- Social media discussion does NOT prove causation with price movements
- Correlation between discussion patterns and price changes does not imply one caused the other
- Sentiment analysis is automated and may contain classification errors
- Dataset limited to publicly available posts; does not reflect private information
- Analysis cannot account for institutional trading, insider information, or market microstructure
- This is educational/informational content for research purposes

**Not Investment Advice:**
- This memo does NOT constitute investment advice or recommendations
- No buy, sell, or hold recommendations are provided
- No price targets or forward-looking statements included
- Users must conduct independent analysis and consult qualified advisors

## Recordkeeping & Compliance

This memo is generated for recordkeeping and educational purposes to document evidence-based market narrative analysis. It should be used alongside traditional financial analysis, not as a replacement.
`

// -----------------------------------------------------------------------------

// RenderMemo builds the markdown analysis memo for one event. Topics are
// rendered in the order given; counter-narrative counts are included only
// when includeCounters is set.
func RenderMemo(
	event models.MEvent,
	topics []models.MTopic,
	confidence models.MConfidenceMetrics,
	datasetVersion string,
	includeCounters bool,
	now time.Time,
) string {

	start := time.Unix(event.Start, 0).UTC().Format("2006-01-02")
	end := time.Unix(event.End, 0).UTC().Format("2006-01-02")

	var b strings.Builder

	fmt.Fprintf(&b, "# Stock Movement Analysis: %s - %s to %s\n\n", event.Ticker, start, end)
	b.WriteString(memoDisclaimer)
	b.WriteString("\n\n## Event Summary\n\n")
	fmt.Fprintf(&b, "- **Ticker**: %s\n", event.Ticker)
	fmt.Fprintf(&b, "- **Date Range**: %s to %s\n", start, end)
	fmt.Fprintf(&b, "- **Price Movement**: %+.1f%%\n", event.MovePct)
	fmt.Fprintf(&b, "- **Volatility Score**: %.1f standard deviations above baseline\n", event.VolZ)
	fmt.Fprintf(&b, "- **Headline**: %s\n", event.Headline)

	b.WriteString("\n## Confidence Assessment\n\n")
	b.WriteString("The following metrics assess the reliability of this analysis:\n\n")
	fmt.Fprintf(&b, "- **Coverage**: %.1f/100 (post volume vs baseline activity)\n", confidence.Coverage)
	fmt.Fprintf(&b, "- **Sentiment Coherence**: %.1f/100 (agreement across topics)\n", confidence.SentimentCoherence)
	fmt.Fprintf(&b, "- **Recency**: %.1f/100 (time decay from event date)\n", confidence.Recency)
	fmt.Fprintf(&b, "- **Overall Confidence**: %.1f/100\n", confidence.Overall)

	b.WriteString("\n## Evidence-Based Narratives\n\n")
	b.WriteString("The following topics were identified in social media discussions during the " +
		"event window. Evidence suggests these themes were associated with market attention " +
		"during the price movement period.\n")

	for i, topic := range topics {
		fmt.Fprintf(&b, "\n### %d. %s\n\n", i+1, topic.Label)
		fmt.Fprintf(&b, "- **Share of Discussion**: %.1f%%\n", topic.ShareOfPosts*100)
		fmt.Fprintf(&b, "- **Sentiment Score**: %+.2f (scale: -1 to +1)\n", topic.SentimentScore)
		fmt.Fprintf(&b, "- **Keywords**: %s\n", strings.Join(topic.Keywords, ", "))
		fmt.Fprintf(&b, "- **Supporting Evidence**: %d posts\n", len(topic.EvidencePostIDs))

		if includeCounters && len(topic.CounterPostIDs) > 0 {
			fmt.Fprintf(&b, "- **Counter-Narratives**: %d posts expressing contrasting views\n",
				len(topic.CounterPostIDs))
		}

		b.WriteString("\n")

		if len(topic.EvidencePostIDs) > 0 {
			sample := topic.EvidencePostIDs
			if len(sample) > 3 {
				sample = sample[:3]
			}
			fmt.Fprintf(&b, "*Sample evidence: Post IDs %s*\n\n", strings.Join(sample, ", "))
		}
	}

	b.WriteString(memoMethodology)

	b.WriteString("\n---\n\n**Metadata**\n")
	fmt.Fprintf(&b, "- Dataset Version: %s (static historical archive)\n", datasetVersion)
	b.WriteString("- Analysis Model: Correlation-based topic clustering\n")
	fmt.Fprintf(&b, "- Generated: %s\n", now.UTC().Format("2006-01-02 15:04:05 UTC"))
	b.WriteString("- Platform: Evidence-Based Narrative Observer\n\n")
	b.WriteString("*This document was generated using static datasets and automated analysis " +
		"tools. Human review recommended before distribution to clients.*\n")

	return b.String()
}

// -----------------------------------------------------------------------------

// BuildFilename names a memo file by ticker, event and generation date.
func BuildFilename(ticker, eventID string, now time.Time) string {
	return fmt.Sprintf("%s_%s_analysis_%s.md", ticker, eventID, now.UTC().Format("20060102"))
}

// -----------------------------------------------------------------------------

// NewExportRecord builds the recordkeeping row for a generated memo.
func NewExportRecord(ticker, eventID, filename string, now time.Time) models.MExportRecord {
	return models.MExportRecord{
		ID:        uuid.NewString(),
		Ticker:    ticker,
		EventID:   eventID,
		Filename:  filename,
		CreatedAt: now.Unix(),
	}
}
