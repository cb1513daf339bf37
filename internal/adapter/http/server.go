// Package http exposes the public alert API plus the demo-mode session
// endpoints. Every API response carries a {"success": bool} envelope.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/disaster-alert-service/internal/alertqueue"
	"github.com/couchcryptid/disaster-alert-service/internal/directory"
	"github.com/couchcryptid/disaster-alert-service/internal/domain"
	"github.com/couchcryptid/disaster-alert-service/internal/feed"
	"github.com/couchcryptid/disaster-alert-service/internal/reconciler"
	"github.com/couchcryptid/disaster-alert-service/internal/session"
	"github.com/couchcryptid/disaster-alert-service/internal/simulation"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps carries the collaborators the server routes to. Session, Queue, and
// Simulation are nil outside demo mode, which leaves the session endpoints
// unregistered.
type Deps struct {
	Reconciler *reconciler.Reconciler
	Feed       *feed.Adapter
	Directory  *directory.Directory
	Fallback   *reconciler.Fallback
	Ready      sharedobs.ReadinessChecker

	Session    *session.Session
	Queue      *alertqueue.Queue
	Simulation *simulation.Generator
}

// Server exposes the alert API and the health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	deps       Deps
	logger     *slog.Logger
}

// NewServer creates an HTTP server with all routes registered.
func NewServer(addr string, deps Deps, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		deps:   deps,
		logger: logger,
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.recover(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/cities", s.handleCities)
	mux.HandleFunc("GET /api/cities/{city}/areas", s.handleAreas)
	mux.HandleFunc("POST /api/alerts", s.handleSubmitAlert)
	mux.HandleFunc("GET /api/alerts", s.handleAlerts)
	mux.HandleFunc("GET /api/ai-alerts", s.handleAIAlerts)
	mux.HandleFunc("GET /api/fallback", s.handleFallback)

	if deps.Session != nil {
		mux.HandleFunc("GET /api/session/alerts", s.handleSessionAlerts)
		mux.HandleFunc("POST /api/session/alerts/{id}/resolve", s.handleResolveAlert)
		mux.HandleFunc("GET /api/statistics", s.handleStatistics)
		mux.HandleFunc("GET /api/resources", s.handleResources)
		mux.HandleFunc("GET /api/hazards", s.handleHazards)
		mux.HandleFunc("POST /api/hazards", s.handleAddHazard)
		mux.HandleFunc("DELETE /api/hazards/{id}", s.handleRemoveHazard)
		mux.HandleFunc("GET /api/safety-places", s.handleSafetyPlaces)
		mux.HandleFunc("PUT /api/safety-places", s.handleSetSafetyPlaces)
		mux.HandleFunc("GET /api/preferences", s.handlePreferences)
		mux.HandleFunc("PUT /api/preferences", s.handleSetPreferences)
	}
	if deps.Queue != nil {
		mux.HandleFunc("GET /api/queue", s.handleQueue)
		mux.HandleFunc("POST /api/queue/dismiss", s.handleQueueDismiss)
		mux.HandleFunc("POST /api/queue/respond", s.handleQueueRespond)
	}
	if deps.Simulation != nil {
		mux.HandleFunc("POST /api/simulation", s.handleSimulationToggle)
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(deps.Ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("/", s.handleNotFound)

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

// recover converts handler panics into a generic 500 so one bad request never
// takes the process down.
func (s *Server) recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("handler panic", "path", r.URL.Path, "panic", rec)
				writeError(w, http.StatusInternalServerError, "Something went wrong")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Disaster Alert API is running",
	})
}

func (s *Server) handleCities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"cities":  s.deps.Directory.Cities(),
	})
}

func (s *Server) handleAreas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"areas":   s.deps.Directory.Areas(r.PathValue("city")),
	})
}

func (s *Server) handleSubmitAlert(w http.ResponseWriter, r *http.Request) {
	var sub domain.AlertSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ack, err := s.deps.Reconciler.Submit(r.Context(), sub)
	if err != nil {
		if domain.IsMissingFields(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("submission failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	if s.deps.Session != nil {
		s.deps.Session.RecordSubmission(ack)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Alert submitted successfully",
		"data":    ack,
	})
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	records, err := s.deps.Feed.Alerts(r.Context())
	if err != nil {
		s.logger.Error("fetch alerts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch alerts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"alerts":  records,
	})
}

func (s *Server) handleAIAlerts(w http.ResponseWriter, r *http.Request) {
	records, err := s.deps.Feed.AIAlerts(r.Context())
	if err != nil {
		s.logger.Error("fetch ai alerts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch AI alerts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"alerts":  records,
	})
}

func (s *Server) handleFallback(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"submissions": s.deps.Fallback.Snapshot(),
	})
}

func (s *Server) handleSessionAlerts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"alerts":  s.deps.Session.Alerts(),
	})
}

func (s *Server) handleResolveAlert(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.deps.Session.ResolveAlert(id) {
		writeError(w, http.StatusNotFound, "Alert not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleStatistics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"statistics": s.deps.Session.Statistics(),
	})
}

func (s *Server) handleResources(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"resources": s.deps.Session.Resources(),
	})
}

func (s *Server) handleHazards(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"hazards": s.deps.Session.HazardAreas(),
	})
}

func (s *Server) handleAddHazard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Center       domain.LatLng `json:"center"`
		RadiusMeters float64       `json:"radiusMeters"`
		Label        string        `json:"label"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RadiusMeters <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid hazard area")
		return
	}
	area := s.deps.Session.AddHazardArea(req.Center, req.RadiusMeters, req.Label)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"hazard":  area,
	})
}

func (s *Server) handleRemoveHazard(w http.ResponseWriter, r *http.Request) {
	if !s.deps.Session.RemoveHazardArea(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "Hazard area not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleSafetyPlaces(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"places":  s.deps.Session.SafetyPlaces(),
	})
}

func (s *Server) handleSetSafetyPlaces(w http.ResponseWriter, r *http.Request) {
	var places []domain.SafetyPlace
	if err := json.NewDecoder(r.Body).Decode(&places); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.deps.Session.SetSafetyPlaces(places)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handlePreferences(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"preferences": s.deps.Session.Preferences(),
	})
}

func (s *Server) handleSetPreferences(w http.ResponseWriter, r *http.Request) {
	var prefs session.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.deps.Session.SetPreferences(prefs)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"preferences": prefs,
	})
}

func (s *Server) handleQueue(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]any{
		"success": true,
		"current": nil,
		"queued":  s.deps.Queue.QueueLength(),
	}
	if rec, remaining, ok := s.deps.Queue.Current(); ok {
		resp["current"] = map[string]any{
			"record":    rec,
			"remaining": remaining,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleQueueDismiss(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"dismissed": s.deps.Queue.Dismiss(),
	})
}

func (s *Server) handleQueueRespond(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"responded": s.deps.Queue.Respond(),
	})
}

func (s *Server) handleSimulationToggle(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"running": s.deps.Simulation.Toggle(),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   msg,
	})
}
