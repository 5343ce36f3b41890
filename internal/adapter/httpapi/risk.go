package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"roadrisk/internal/risk"
)

// assessmentList is the response shape for the all-areas assessment.
type assessmentList struct {
	Count int               `json:"count"`
	Areas []risk.Assessment `json:"areas"`
}

// areaDetail extends an area assessment with its hourly accident profile and
// emergency response summary.
type areaDetail struct {
	risk.Assessment
	Hourly        []risk.HourCount     `json:"hourly"`
	ResponseTimes risk.ResponseSummary `json:"response_times"`
}

// hourForecast is the response shape for the per-area, per-hour prediction.
type hourForecast struct {
	Area    string    `json:"area"`
	Hour    int       `json:"hour"`
	Records int       `json:"records"`
	Score   float64   `json:"score"`
	Tier    risk.Tier `json:"tier"`
}

// statsResponse summarizes the whole dataset.
type statsResponse struct {
	Records       int                  `json:"records"`
	Areas         int                  `json:"areas"`
	Fatalities    int                  `json:"fatalities"`
	Injuries      int                  `json:"injuries"`
	Tiers         map[string]int       `json:"tiers"`
	DominantCause string               `json:"dominant_cause"`
	TopCauses     []risk.CauseCount    `json:"top_causes"`
	Hourly        []risk.HourCount     `json:"hourly"`
	ResponseTimes risk.ResponseSummary `json:"response_times"`
}

// handleAssessAreas scores and classifies every area against the current
// dataset.
func (s *Server) handleAssessAreas(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.All(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	start := time.Now()
	assessments := risk.AssessAreas(records)
	s.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, assessmentList{Count: len(assessments), Areas: assessments})
}

// handleAreaDetail returns one area's assessment along with its hourly
// histogram and response time summary. 404 when the area has no records.
func (s *Server) handleAreaDetail(w http.ResponseWriter, r *http.Request) {
	area := chi.URLParam(r, "area")

	records, err := s.store.All(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	start := time.Now()
	assessments := risk.AssessAreas(records)
	s.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())

	for _, a := range assessments {
		if a.Area != area {
			continue
		}
		grouping := risk.GroupBy(records, risk.AreaKey)
		areaRecords := grouping.Group(area)
		writeJSON(w, http.StatusOK, areaDetail{
			Assessment:    a,
			Hourly:        risk.HourlyHistogram(areaRecords),
			ResponseTimes: risk.ResponseTimes(areaRecords),
		})
		return
	}
	s.writeError(w, r, newAppError(ErrCodeNotFound, "no records for area "+area, nil))
}

// handleAreaForecast classifies one area's risk for a specific hour of day.
// The hour subgroup is compared against the same hour across all areas.
func (s *Server) handleAreaForecast(w http.ResponseWriter, r *http.Request) {
	area := chi.URLParam(r, "area")

	hourStr := r.URL.Query().Get("hour")
	if hourStr == "" {
		s.writeError(w, r, newAppError(ErrCodeValidation, "hour query parameter is required", nil))
		return
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		s.writeError(w, r, newAppError(ErrCodeValidation, "hour must be an integer between 0 and 23", err))
		return
	}

	records, err := s.store.All(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	grouping := risk.GroupBy(records, risk.AreaKey)
	areaRecords := grouping.Group(area)
	if len(areaRecords) == 0 {
		s.writeError(w, r, newAppError(ErrCodeNotFound, "no records for area "+area, nil))
		return
	}

	// Classify this area's hour subgroup against every area's subgroup for
	// the same hour, zero scores included.
	population := make([]float64, 0, grouping.Len())
	for _, key := range grouping.Keys() {
		population = append(population, risk.Score(risk.FilterByHour(grouping.Group(key), hour)))
	}

	subgroup := risk.FilterByHour(areaRecords, hour)
	writeJSON(w, http.StatusOK, hourForecast{
		Area:    area,
		Hour:    hour,
		Records: len(subgroup),
		Score:   risk.Score(subgroup),
		Tier:    risk.PredictHour(areaRecords, hour, population),
	})
}

// handleStats summarizes the dataset: counts, tier breakdown, leading causes,
// the hourly accident profile, and response times.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.All(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	start := time.Now()
	assessments := risk.AssessAreas(records)
	s.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())

	fatalities, injuries := 0, 0
	for _, rec := range records {
		fatalities += rec.Fatalities
		injuries += rec.Injuries
	}
	tiers := make(map[string]int, 3)
	for _, a := range assessments {
		tiers[a.Tier.String()]++
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Records:       len(records),
		Areas:         len(assessments),
		Fatalities:    fatalities,
		Injuries:      injuries,
		Tiers:         tiers,
		DominantCause: risk.DominantCause(records),
		TopCauses:     risk.TopCauses(records, 5),
		Hourly:        risk.HourlyHistogram(records),
		ResponseTimes: risk.ResponseTimes(records),
	})
}
