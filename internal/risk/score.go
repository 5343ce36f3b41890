package risk

import (
	"strings"

	"roadrisk/internal/domain"
)

// Severity scoring weights. Fatalities dominate; severity labels refine.
const (
	fatalityWeight = 10
	severeWeight   = 5
	moderateWeight = 2
)

// Score computes the weighted severity score of a group of records. It is
// monotonic non-decreasing in fatality count and in the count of
// severe/fatal/moderate-labeled records, and returns 0 for an empty group.
func Score(records []domain.Record) float64 {
	var fatalities, severe, moderate int
	for _, r := range records {
		fatalities += r.Fatalities
		switch strings.ToLower(strings.TrimSpace(r.Severity)) {
		case domain.SeverityFatal, domain.SeveritySevere:
			severe++
		case domain.SeverityModerate:
			moderate++
		}
	}
	return float64(fatalityWeight*fatalities + severeWeight*severe + moderateWeight*moderate)
}
