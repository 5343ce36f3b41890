package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"roadrisk/internal/domain"
	"roadrisk/internal/store"
)

// recordList is the response shape for record listings.
type recordList struct {
	Count   int             `json:"count"`
	Records []domain.Record `json:"records"`
}

// handleCreateRecords admits a batch of submitted records. The response
// always carries the full per-record outcome; the status code summarizes it:
// 201 when everything was admitted, 207 on a partial batch, 400 when every
// record was rejected.
func (s *Server) handleCreateRecords(w http.ResponseWriter, r *http.Request) {
	var inputs []domain.RecordInput
	if err := decodeJSON(w, r, &inputs); err != nil {
		s.writeError(w, r, err)
		return
	}

	for i := range inputs {
		inputs[i] = domain.ResolveArea(r.Context(), inputs[i], s.geocoder, s.logger)
	}

	result, err := s.store.InsertMany(r.Context(), inputs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.RecordsAdmitted.Add(float64(len(result.Admitted)))
	s.metrics.RecordsRejected.Add(float64(len(result.Rejected)))

	if s.sink != nil && len(result.Admitted) > 0 {
		if err := s.sink.PublishAdmitted(r.Context(), result.Admitted); err != nil {
			s.logger.Warn("sink publish failed", "error", err, "records", len(result.Admitted))
			s.metrics.SinkErrors.Inc()
		} else {
			s.metrics.SinkPublished.Add(float64(len(result.Admitted)))
		}
	}

	status := http.StatusCreated
	switch {
	case len(inputs) == 0:
		status = http.StatusOK
	case len(result.Admitted) == 0:
		status = http.StatusBadRequest
	case len(result.Rejected) > 0:
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, result)
}

// handleListRecords lists records, optionally filtered by ?area= or by
// ?start=&end= (inclusive date range). The filters are mutually exclusive.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	area := q.Get("area")
	start, end := q.Get("start"), q.Get("end")

	if area != "" && (start != "" || end != "") {
		s.writeError(w, r, newAppError(ErrCodeValidation, "area and date range filters are mutually exclusive", nil))
		return
	}
	if (start == "") != (end == "") {
		s.writeError(w, r, newAppError(ErrCodeValidation, "start and end must be provided together", nil))
		return
	}

	var (
		records []domain.Record
		err     error
	)
	switch {
	case area != "":
		records, err = s.store.ByArea(r.Context(), area)
	case start != "":
		records, err = s.store.ByDateRange(r.Context(), start, end)
	default:
		records, err = s.store.All(r.Context())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if records == nil {
		records = []domain.Record{}
	}
	writeJSON(w, http.StatusOK, recordList{Count: len(records), Records: records})
}

// handleGetRecord returns one record by its ID.
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.store.ByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, r, newAppError(ErrCodeNotFound, "record not found", err))
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
