// Package api exposes the simulation's command surface over HTTP/JSON.
// It is a thin adapter: every route maps onto one Simulation method.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/talgya/econsim/internal/audit"
	"github.com/talgya/econsim/internal/economy"
	"github.com/talgya/econsim/internal/engine"
)

// Server serves one simulation session over HTTP.
type Server struct {
	Sim       *engine.Simulation
	Port      int
	RateLimit int // POST requests per client per minute

	httpServer *http.Server
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	limit := s.RateLimit
	if limit <= 0 {
		limit = 120
	}
	limiter := NewRateLimiter(limit, time.Minute)

	mux := http.NewServeMux()

	// Read-only views.
	mux.HandleFunc("GET /api/v1/state", s.handleState)
	mux.HandleFunc("GET /api/v1/log", s.handleLog)
	mux.HandleFunc("GET /api/v1/events", s.handleEvents)
	mux.HandleFunc("GET /api/v1/policies", s.handlePolicies)

	// Transitions.
	mux.HandleFunc("POST /api/v1/adjust", RateLimitMiddleware(limiter, s.handleAdjust))
	mux.HandleFunc("POST /api/v1/advance", RateLimitMiddleware(limiter, s.handleAdvance))
	mux.HandleFunc("POST /api/v1/log/clear", RateLimitMiddleware(limiter, s.handleClearLog))

	return mux
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("HTTP API starting", "addr", addr, "session", s.Sim.ID)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// stateView is the state plus any breached alert thresholds.
type stateView struct {
	State    economy.State `json:"state"`
	Warnings []string      `json:"warnings"`
}

func viewOf(st economy.State) stateView {
	w := st.Warnings()
	if w == nil {
		w = []string{}
	}
	return stateView{State: st, Warnings: w}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewOf(s.Sim.Snapshot()))
}

// handleAdjust applies a lever: {"action": "taxes", "value": 2}.
func (s *Server) handleAdjust(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action string `json:"action"`
		Value  *int   `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Value == nil {
		http.Error(w, "value is required", http.StatusBadRequest)
		return
	}

	st, err := s.Sim.ApplyLever(r.Context(), economy.Lever(req.Action), *req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(st))
}

// handleAdvance advances time: {"years": 1}. Years defaults to 1.
func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Years *int `json:"years"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	years := 1
	if req.Years != nil {
		years = *req.Years
	}

	st, err := s.Sim.AdvanceTime(r.Context(), years)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(st))
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Sim.AuditLog(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleClearLog(w http.ResponseWriter, r *http.Request) {
	if err := s.Sim.ClearAuditLog(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": []audit.Entry{}})
}

// eventView renders timestamps the way the event table shows them.
type eventView struct {
	ID          string            `json:"id"`
	Timestamp   string            `json:"timestamp"`
	Kind        economy.EventKind `json:"kind"`
	Description string            `json:"description"`
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events := s.Sim.NotableEvents()
	out := make([]eventView, 0, len(events))
	for _, e := range events {
		out = append(out, eventView{
			ID:          e.ID,
			Timestamp:   e.Timestamp.Format(economy.EventTimestampLayout),
			Kind:        e.Kind,
			Description: e.Description,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": out})
}

func (s *Server) handlePolicies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"policies": s.Sim.Policies()})
}

// writeError maps engine and audit errors onto status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidLever), errors.Is(err, engine.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, audit.ErrInvalidEntry):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON encodes fully before writing the header. An unencodable value,
// such as an indicator at +Inf, is a 500.
func writeJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		slog.Error("JSON encode error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Debug("JSON write error", "error", err)
	}
}
