package httpapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadrisk/internal/adapter/httpapi"
)

// riskBatch spreads four accidents over three areas so the percentile
// classifier has a spread to cut: Whitefield scores 30, Hebbal 2,
// Indiranagar 0.
const riskBatch = `[
	{"accident_no":"ACC-W1","date":"2024-04-13","time":"23:00","area":"Whitefield","latitude":12.97,"longitude":77.75,"fatalities":1,"severity":"Fatal","cause":"Overspeeding","police_response_min":10},
	{"accident_no":"ACC-W2","date":"2024-04-20","time":"23:30","area":"Whitefield","latitude":12.96,"longitude":77.74,"fatalities":1,"severity":"Fatal","cause":"Overspeeding","police_response_min":20},
	{"accident_no":"ACC-H1","date":"2024-04-14","time":"09:15","area":"Hebbal","latitude":13.04,"longitude":77.59,"severity":"Moderate","cause":"Signal jumping"},
	{"accident_no":"ACC-I1","date":"2024-04-15","time":"14:00","area":"Indiranagar","latitude":12.97,"longitude":77.64,"severity":"Minor","cause":"Jaywalking"}
]`

func newRiskServer(t *testing.T) *httpapi.Server {
	t.Helper()
	srv := newTestServer(t)
	rec := doRequest(t, srv, http.MethodPost, "/api/v1/records", riskBatch)
	require.Equal(t, http.StatusCreated, rec.Code)
	return srv
}

type assessmentJSON struct {
	Area          string  `json:"area"`
	Records       int     `json:"records"`
	Fatalities    int     `json:"fatalities"`
	Score         float64 `json:"score"`
	Tier          string  `json:"tier"`
	DominantCause string  `json:"dominant_cause"`
	TopCauses     []struct {
		Cause string `json:"cause"`
		Count int    `json:"count"`
	} `json:"top_causes"`
	Advice struct {
		Authority []string `json:"authority"`
		Civilian  []string `json:"civilian"`
	} `json:"advice"`
}

func TestAssessAreas(t *testing.T) {
	srv := newRiskServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/risk/areas", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count int              `json:"count"`
		Areas []assessmentJSON `json:"areas"`
	}
	decodeBody(t, rec, &body)

	require.Equal(t, 3, body.Count)
	require.Len(t, body.Areas, 3)

	byArea := make(map[string]assessmentJSON, len(body.Areas))
	for _, a := range body.Areas {
		byArea[a.Area] = a
	}

	assert.Equal(t, "high-risk", byArea["Whitefield"].Tier)
	assert.InDelta(t, 30, byArea["Whitefield"].Score, 1e-9)
	assert.Equal(t, 2, byArea["Whitefield"].Fatalities)
	assert.Equal(t, "Overspeeding", byArea["Whitefield"].DominantCause)
	assert.NotEmpty(t, byArea["Whitefield"].Advice.Authority)

	assert.Equal(t, "moderate", byArea["Hebbal"].Tier)
	assert.Equal(t, "safe", byArea["Indiranagar"].Tier)

	// Areas keep first-seen record order.
	assert.Equal(t, "Whitefield", body.Areas[0].Area)
	assert.Equal(t, "Hebbal", body.Areas[1].Area)
}

func TestAssessAreas_EmptyStore(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/risk/areas", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count int              `json:"count"`
		Areas []assessmentJSON `json:"areas"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, 0, body.Count)
	assert.NotNil(t, body.Areas)
}

func TestAreaDetail(t *testing.T) {
	srv := newRiskServer(t)

	t.Run("Found", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/risk/areas/Whitefield", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			assessmentJSON
			Hourly []struct {
				Hour  int `json:"hour"`
				Count int `json:"count"`
			} `json:"hourly"`
			ResponseTimes struct {
				AvgPoliceMin  float64 `json:"avg_police_min"`
				PoliceSamples int     `json:"police_samples"`
			} `json:"response_times"`
		}
		decodeBody(t, rec, &body)

		assert.Equal(t, "Whitefield", body.Area)
		assert.Equal(t, "high-risk", body.Tier)
		assert.Equal(t, 2, body.Records)

		require.Len(t, body.Hourly, 24)
		assert.Equal(t, 2, body.Hourly[23].Count)
		assert.Equal(t, 0, body.Hourly[9].Count)

		assert.InDelta(t, 15, body.ResponseTimes.AvgPoliceMin, 1e-9)
		assert.Equal(t, 2, body.ResponseTimes.PoliceSamples)
	})

	t.Run("UnknownArea", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/risk/areas/Nowhere", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "resource_not_found", errorCode(t, rec))
	})
}

func TestAreaForecast(t *testing.T) {
	srv := newRiskServer(t)

	type forecastJSON struct {
		Area    string  `json:"area"`
		Hour    int     `json:"hour"`
		Records int     `json:"records"`
		Score   float64 `json:"score"`
		Tier    string  `json:"tier"`
	}

	t.Run("BusyHour", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/risk/areas/Whitefield/forecast?hour=23", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body forecastJSON
		decodeBody(t, rec, &body)
		assert.Equal(t, 23, body.Hour)
		assert.Equal(t, 2, body.Records)
		assert.InDelta(t, 30, body.Score, 1e-9)
		assert.Equal(t, "high-risk", body.Tier)
	})

	t.Run("QuietHourIsSafe", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/risk/areas/Whitefield/forecast?hour=4", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body forecastJSON
		decodeBody(t, rec, &body)
		assert.Equal(t, 0, body.Records)
		assert.Equal(t, "safe", body.Tier)
	})

	t.Run("MissingHour", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/risk/areas/Whitefield/forecast", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "validation_failed", errorCode(t, rec))
	})

	t.Run("HourOutOfRange", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/risk/areas/Whitefield/forecast?hour=25", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("HourNotANumber", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/risk/areas/Whitefield/forecast?hour=midnight", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownArea", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/risk/areas/Nowhere/forecast?hour=23", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestStats(t *testing.T) {
	srv := newRiskServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Records       int            `json:"records"`
		Areas         int            `json:"areas"`
		Fatalities    int            `json:"fatalities"`
		Injuries      int            `json:"injuries"`
		Tiers         map[string]int `json:"tiers"`
		DominantCause string         `json:"dominant_cause"`
		TopCauses     []struct {
			Cause string `json:"cause"`
			Count int    `json:"count"`
		} `json:"top_causes"`
		Hourly []struct {
			Hour  int `json:"hour"`
			Count int `json:"count"`
		} `json:"hourly"`
	}
	decodeBody(t, rec, &body)

	assert.Equal(t, 4, body.Records)
	assert.Equal(t, 3, body.Areas)
	assert.Equal(t, 2, body.Fatalities)
	assert.Equal(t, 0, body.Injuries)
	assert.Equal(t, map[string]int{"high-risk": 1, "moderate": 1, "safe": 1}, body.Tiers)
	assert.Equal(t, "Overspeeding", body.DominantCause)
	require.Len(t, body.TopCauses, 3)
	assert.Equal(t, "Overspeeding", body.TopCauses[0].Cause)
	assert.Equal(t, 2, body.TopCauses[0].Count)
	assert.Len(t, body.Hourly, 24)
}

func TestStats_EmptyStore(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Records       int    `json:"records"`
		DominantCause string `json:"dominant_cause"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, 0, body.Records)
	assert.Equal(t, "Unknown", body.DominantCause)
}
