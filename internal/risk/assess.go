package risk

import "roadrisk/internal/domain"

// Assessment is the per-area risk evaluation consumed by the dashboard and
// the map overlay.
type Assessment struct {
	Area          string       `json:"area"`
	Records       int          `json:"records"`
	Fatalities    int          `json:"fatalities"`
	Score         float64      `json:"score"`
	Tier          Tier         `json:"tier"`
	DominantCause string       `json:"dominant_cause"`
	TopCauses     []CauseCount `json:"top_causes"`
	Advice        Advice       `json:"advice"`
}

// AssessAreas groups records by area, scores every group, and classifies
// each score against the population of all area scores. Areas appear in
// first-seen record order. Empty input yields an empty slice.
func AssessAreas(records []domain.Record) []Assessment {
	grouping := GroupBy(records, AreaKey)
	keys := grouping.Keys()

	scores := make([]float64, len(keys))
	for i, key := range keys {
		scores[i] = Score(grouping.Group(key))
	}

	out := make([]Assessment, len(keys))
	for i, key := range keys {
		group := grouping.Group(key)
		dominant := DominantCause(group)
		fatalities := 0
		for _, rec := range group {
			fatalities += rec.Fatalities
		}
		out[i] = Assessment{
			Area:          key,
			Records:       len(group),
			Fatalities:    fatalities,
			Score:         scores[i],
			Tier:          Classify(scores[i], scores),
			DominantCause: dominant,
			TopCauses:     TopCauses(group, 5),
			Advice:        Recommend(dominant),
		}
	}
	return out
}
