// Package httpapi exposes the record and risk endpoints over HTTP.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"roadrisk/internal/domain"
	"roadrisk/internal/observability"
	"roadrisk/internal/store"
)

// RecordStore is the persistence contract the API serves from.
type RecordStore interface {
	InsertMany(ctx context.Context, inputs []domain.RecordInput) (store.InsertResult, error)
	All(ctx context.Context) ([]domain.Record, error)
	ByID(ctx context.Context, id string) (domain.Record, error)
	ByArea(ctx context.Context, area string) ([]domain.Record, error)
	ByDateRange(ctx context.Context, start, end string) ([]domain.Record, error)
	CheckReadiness(ctx context.Context) error
}

// RecordSink publishes admitted records downstream. Publishing is
// best-effort; failures never roll back admission.
type RecordSink interface {
	PublishAdmitted(ctx context.Context, records []domain.Record) error
}

// Server exposes the record ingest, risk assessment, health, and metrics
// HTTP endpoints.
type Server struct {
	httpServer *http.Server
	store      RecordStore
	geocoder   domain.Geocoder
	sink       RecordSink
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with all routes mounted. Pass a nil
// geocoder to disable area resolution on submitted records, and a nil sink
// to disable downstream publishing.
func NewServer(addr string, st RecordStore, geocoder domain.Geocoder, sink RecordSink, logger *slog.Logger, metrics *observability.Metrics) *Server {
	s := &Server{
		store:    st,
		geocoder: geocoder,
		sink:     sink,
		logger:   logger,
		metrics:  metrics,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/records", s.handleCreateRecords)
		r.Get("/records", s.handleListRecords)
		r.Get("/records/{id}", s.handleGetRecord)

		r.Get("/risk/areas", s.handleAssessAreas)
		r.Get("/risk/areas/{area}", s.handleAreaDetail)
		r.Get("/risk/areas/{area}/forecast", s.handleAreaForecast)
		r.Get("/stats", s.handleStats)
	})

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
