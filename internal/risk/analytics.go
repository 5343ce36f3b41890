package risk

import (
	"sort"

	"roadrisk/internal/domain"
)

// CauseCount pairs a primary cause with its occurrence count.
type CauseCount struct {
	Cause string `json:"cause"`
	Count int    `json:"count"`
}

// TopCauses tallies primary causes across records and returns the n most
// frequent in descending count order. Causes are matched case-sensitively,
// empty causes count under the Unknown sentinel, and ties keep
// first-encountered order. Pass a negative n for the full ranking.
func TopCauses(records []domain.Record, n int) []CauseCount {
	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		cause := r.Cause
		if cause == "" {
			cause = domain.UnknownCause
		}
		if _, seen := counts[cause]; !seen {
			order = append(order, cause)
		}
		counts[cause]++
	}

	ranked := make([]CauseCount, 0, len(order))
	for _, cause := range order {
		ranked = append(ranked, CauseCount{Cause: cause, Count: counts[cause]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// DominantCause returns the single most frequent cause, or the Unknown
// sentinel for an empty collection.
func DominantCause(records []domain.Record) string {
	top := TopCauses(records, 1)
	if len(top) == 0 {
		return domain.UnknownCause
	}
	return top[0].Cause
}

// HourCount is one bucket of the 24-hour accident histogram.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// HourlyHistogram buckets records by parsed hour of day. All 24 buckets are
// returned, zero counts included. Records whose time parses outside [0,23]
// are skipped rather than clamped.
func HourlyHistogram(records []domain.Record) []HourCount {
	var buckets [24]int
	for _, r := range records {
		h := domain.HourOfDay(r.Time)
		if h < 0 || h > 23 {
			continue
		}
		buckets[h]++
	}

	out := make([]HourCount, len(buckets))
	for h, c := range buckets {
		out[h] = HourCount{Hour: h, Count: c}
	}
	return out
}

// FilterByHour returns the records whose parsed hour equals hour, preserving
// input order.
func FilterByHour(records []domain.Record, hour int) []domain.Record {
	var out []domain.Record
	for _, r := range records {
		if domain.HourOfDay(r.Time) == hour {
			out = append(out, r)
		}
	}
	return out
}

// PredictHour classifies the subset of records that occurred at the given
// hour, against an optional comparison population. No records at that hour
// means safe, via the empty-group rule.
func PredictHour(records []domain.Record, hour int, population []float64) Tier {
	return ClassifyGroup(FilterByHour(records, hour), population)
}

// ResponseSummary averages emergency response minutes over the records that
// actually carry a value. Null response times are excluded from the average,
// never zero-filled; the sample counts say how many records contributed.
type ResponseSummary struct {
	AvgPoliceMin     float64 `json:"avg_police_min"`
	PoliceSamples    int     `json:"police_samples"`
	AvgAmbulanceMin  float64 `json:"avg_ambulance_min"`
	AmbulanceSamples int     `json:"ambulance_samples"`
}

// ResponseTimes summarizes police and ambulance response minutes.
func ResponseTimes(records []domain.Record) ResponseSummary {
	var s ResponseSummary
	var policeSum, ambulanceSum float64
	for _, r := range records {
		if r.PoliceResponseMin != nil {
			policeSum += *r.PoliceResponseMin
			s.PoliceSamples++
		}
		if r.AmbulanceResponseMin != nil {
			ambulanceSum += *r.AmbulanceResponseMin
			s.AmbulanceSamples++
		}
	}
	if s.PoliceSamples > 0 {
		s.AvgPoliceMin = policeSum / float64(s.PoliceSamples)
	}
	if s.AmbulanceSamples > 0 {
		s.AvgAmbulanceMin = ambulanceSum / float64(s.AmbulanceSamples)
	}
	return s
}
