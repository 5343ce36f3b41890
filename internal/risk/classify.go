package risk

import (
	"math"
	"sort"

	"roadrisk/internal/domain"
)

// Tier is an ordinal risk classification. Higher values mean higher risk,
// and a higher score never yields a lower tier under the same policy.
type Tier int

const (
	TierSafe Tier = iota
	TierModerate
	TierHighRisk
)

var tierNames = [...]string{"safe", "moderate", "high-risk"}

func (t Tier) String() string {
	if t < TierSafe || t > TierHighRisk {
		return "unknown"
	}
	return tierNames[t]
}

// MarshalText renders the tier name, so JSON responses carry "safe" rather
// than an integer.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Absolute fallback thresholds, applied when no comparison population is
// available.
const (
	highRiskThreshold = 50
	moderateThreshold = 20
)

// Percentile cut points for population-relative classification.
const (
	upperCut = 75
	lowerCut = 25
)

// Percentile computes the p-th percentile of values using linear
// interpolation between order statistics: for sorted values of length n,
// the rank is p/100 × (n−1); fractional ranks interpolate between the two
// neighboring elements. An empty input returns 0 for any p.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo < 0 {
		return sorted[0]
	}
	if hi >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	if lo == hi {
		return sorted[lo]
	}

	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Classify maps a score to a risk tier.
//
// With a non-empty population of comparison scores the classification is
// population-relative: at or above the population's 75th percentile is
// high-risk, at or above the 25th is moderate, below is safe. Without a
// population the absolute thresholds apply (≥50 high-risk, ≥20 moderate).
// The caller chooses the policy by supplying or omitting the population.
func Classify(score float64, population []float64) Tier {
	if len(population) == 0 {
		switch {
		case score >= highRiskThreshold:
			return TierHighRisk
		case score >= moderateThreshold:
			return TierModerate
		default:
			return TierSafe
		}
	}

	switch {
	case score >= Percentile(population, upperCut):
		return TierHighRisk
	case score >= Percentile(population, lowerCut):
		return TierModerate
	default:
		return TierSafe
	}
}

// ClassifyGroup scores a group of records and classifies the result. A group
// with no records is safe unconditionally, under either policy.
func ClassifyGroup(records []domain.Record, population []float64) Tier {
	if len(records) == 0 {
		return TierSafe
	}
	return Classify(Score(records), population)
}
