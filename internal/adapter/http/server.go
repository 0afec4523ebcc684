package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/fallout-sim-service/internal/domain"
)

// Scenario is the simulator surface the API exposes. The runner implements it.
type Scenario interface {
	Trigger(ctx context.Context, groundZero int, yieldKT float64) (domain.IncidentSummary, error)
	Advance(ctx context.Context, dtHours float64) (domain.ScenarioSnapshot, error)
	SetWind(speedMS, directionDeg float64)
	Reset()
	Snapshot() domain.ScenarioSnapshot
	ZoneStatus(zone int) (domain.ZoneSafety, error)
	SetPopulationFactor(zone int, factor float64) error
	Protocols() map[string][]string
	Fallout() [][]float64
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the scenario API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	scenario   Scenario
	logger     *slog.Logger
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(addr string, scenario Scenario, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		scenario: scenario,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/v1/incident", s.handleTrigger)
	mux.HandleFunc("POST /api/v1/advance", s.handleAdvance)
	mux.HandleFunc("POST /api/v1/wind", s.handleWind)
	mux.HandleFunc("POST /api/v1/reset", s.handleReset)
	mux.HandleFunc("GET /api/v1/snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /api/v1/zones/{zone}", s.handleZoneStatus)
	mux.HandleFunc("PUT /api/v1/zones/{zone}/population", s.handlePopulationFactor)
	mux.HandleFunc("GET /api/v1/protocols", s.handleProtocols)
	mux.HandleFunc("GET /api/v1/fallout", s.handleFallout)

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

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

type triggerRequest struct {
	GroundZero int     `json:"ground_zero"`
	YieldKT    float64 `json:"yield_kt"`
}

func (s *Server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	var req triggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary, err := s.scenario.Trigger(r.Context(), req.GroundZero, req.YieldKT)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, summary)
}

type advanceRequest struct {
	DTHours float64 `json:"dt_hours"`
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snapshot, err := s.scenario.Advance(r.Context(), req.DTHours)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleWind(w http.ResponseWriter, r *http.Request) {
	var wind domain.WindCondition
	if err := json.NewDecoder(r.Body).Decode(&wind); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.scenario.SetWind(wind.SpeedMS, wind.DirectionDeg)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.scenario.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.scenario.Snapshot())
}

func (s *Server) handleZoneStatus(w http.ResponseWriter, r *http.Request) {
	zone, err := strconv.Atoi(r.PathValue("zone"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "zone must be an integer")
		return
	}

	status, err := s.scenario.ZoneStatus(zone)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

type populationRequest struct {
	Factor float64 `json:"factor"`
}

func (s *Server) handlePopulationFactor(w http.ResponseWriter, r *http.Request) {
	zone, err := strconv.Atoi(r.PathValue("zone"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "zone must be an integer")
		return
	}

	var req populationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.scenario.SetPopulationFactor(zone, req.Factor); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProtocols(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.scenario.Protocols())
}

func (s *Server) handleFallout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"deposition": s.scenario.Fallout()})
}

// writeDomainError maps validation errors to 400; anything else is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidZone),
		errors.Is(err, domain.ErrInvalidYield),
		errors.Is(err, domain.ErrInvalidTimeStep):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
