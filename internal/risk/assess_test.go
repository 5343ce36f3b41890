package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadrisk/internal/domain"
)

func TestScoreAndClassify_SmallGroupScenario(t *testing.T) {
	group := []domain.Record{
		{Fatalities: 1, Severity: "fatal"},
		{Fatalities: 0, Severity: "moderate"},
		{Fatalities: 0, Severity: "minor"},
	}

	score := Score(group)
	assert.Equal(t, 17.0, score)

	// 17 sits just under the absolute moderate cut of 20.
	assert.Equal(t, TierSafe, Classify(score, nil))
}

func TestAssessAreas(t *testing.T) {
	records := []domain.Record{
		{Area: "Whitefield", Fatalities: 2, Severity: "fatal", Cause: "Overspeeding"},
		{Area: "Whitefield", Severity: "severe", Cause: "Overspeeding"},
		{Area: "Hebbal", Severity: "moderate", Cause: "Drunk Driving"},
		{Area: "Indiranagar", Severity: "minor", Cause: "Jaywalking"},
	}

	got := AssessAreas(records)
	require.Len(t, got, 3)

	// Areas enumerate in first-seen order.
	assert.Equal(t, "Whitefield", got[0].Area)
	assert.Equal(t, "Hebbal", got[1].Area)
	assert.Equal(t, "Indiranagar", got[2].Area)

	// Scores: Whitefield 10*2+5*2=30, Hebbal 2, Indiranagar 0.
	assert.Equal(t, 30.0, got[0].Score)
	assert.Equal(t, 2.0, got[1].Score)
	assert.Equal(t, 0.0, got[2].Score)

	// Population [30, 2, 0]: P25 = 1, P75 = 16.
	assert.Equal(t, TierHighRisk, got[0].Tier)
	assert.Equal(t, TierModerate, got[1].Tier)
	assert.Equal(t, TierSafe, got[2].Tier)

	assert.Equal(t, 2, got[0].Records)
	assert.Equal(t, 2, got[0].Fatalities)
	assert.Equal(t, 0, got[1].Fatalities)
	assert.Equal(t, "Overspeeding", got[0].DominantCause)
	assert.Equal(t, categories[1].advice, got[0].Advice)
	assert.Equal(t, []CauseCount{{Cause: "Overspeeding", Count: 2}}, got[0].TopCauses)
	assert.Equal(t, categories[3].advice, got[1].Advice)
}

func TestAssessAreas_EmptyInput(t *testing.T) {
	assert.Empty(t, AssessAreas(nil))
}

func TestAssessAreas_SingleAreaTopsItsOwnDistribution(t *testing.T) {
	records := []domain.Record{{Area: "Whitefield", Severity: "minor"}}

	got := AssessAreas(records)
	require.Len(t, got, 1)

	// With one area the population collapses to its own score, so the area
	// sits at the 75th percentile of itself.
	assert.Equal(t, TierHighRisk, got[0].Tier)
}

func TestAssessAreas_UnknownAreaIsARegularGroup(t *testing.T) {
	records := []domain.Record{
		{Area: domain.UnknownArea, Severity: "severe", Cause: ""},
		{Area: "Hebbal", Severity: "minor", Cause: "Overspeeding"},
	}

	got := AssessAreas(records)
	require.Len(t, got, 2)
	assert.Equal(t, domain.UnknownArea, got[0].Area)
	assert.Equal(t, domain.UnknownCause, got[0].DominantCause)
	assert.Equal(t, genericAdvice, got[0].Advice)
}
