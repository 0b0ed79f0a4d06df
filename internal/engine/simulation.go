// Package engine runs the economy's state transitions: lever adjustments,
// time advancement, and the shocks and policies injected along the way.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/econsim/internal/audit"
	"github.com/talgya/econsim/internal/economy"
	"github.com/talgya/econsim/internal/entropy"
)

var (
	// ErrInvalidLever is returned for a lever name outside the four instruments.
	ErrInvalidLever = errors.New("engine: invalid lever")
	// ErrInvalidArgument is returned for a non-positive year count or an out-of-bounds magnitude.
	ErrInvalidArgument = errors.New("engine: invalid argument")
)

// Options tune a Simulation.
type Options struct {
	// MaxMagnitude bounds |magnitude| for lever calls. Zero leaves it unbounded.
	MaxMagnitude      int
	ShockProbability  float64
	PolicyProbability float64
	// Now stamps notable events. Nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns the stock trial probabilities and no magnitude bound.
func DefaultOptions() Options {
	return Options{
		ShockProbability:  0.10,
		PolicyProbability: 0.10,
	}
}

// Simulation is one economy session. Every transition holds mu for its whole
// duration, including the audit append, so callers see a total order.
type Simulation struct {
	ID string

	mu    sync.Mutex
	state economy.State
	rng   entropy.Source
	log   *audit.Log
	opts  Options
}

// New creates a session over a fresh economy.
func New(log *audit.Log, rng entropy.Source, opts Options) *Simulation {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Simulation{
		ID:    uuid.NewString(),
		state: economy.NewState(),
		rng:   rng,
		log:   log,
		opts:  opts,
	}
}

// Snapshot returns a copy of the current state.
func (s *Simulation) Snapshot() economy.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// NotableEvents returns the event ledger in the order events occurred.
func (s *Simulation) NotableEvents() []economy.NotableEvent {
	return s.Snapshot().NotableEvents
}

// Policies returns every enacted policy in order.
func (s *Simulation) Policies() []economy.PolicyRecord {
	return s.Snapshot().Policies
}

// AuditLog reads the durable trail back.
func (s *Simulation) AuditLog(ctx context.Context) ([]audit.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Entries(ctx)
}

// ClearAuditLog truncates the trail. State, events, and policies are untouched.
func (s *Simulation) ClearAuditLog(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.log.Clear(ctx); err != nil {
		slog.Error("audit log clear failed", "session", s.ID, "error", err)
		return err
	}
	slog.Info("audit log cleared", "session", s.ID)
	return nil
}

// commit appends the audit entry for a staged transition and, only once that
// succeeds, makes next the live state. Caller must hold mu.
func (s *Simulation) commit(ctx context.Context, next economy.State, action string, value int, impact string) (economy.State, error) {
	if _, err := s.log.Record(ctx, action, value, impact); err != nil {
		slog.Error("audit append failed, transition discarded",
			"session", s.ID, "action", action, "value", value, "error", err)
		return s.state.Clone(), err
	}
	s.state = next
	return next.Clone(), nil
}

// recordEvent appends to the notable event ledger of st.
func (s *Simulation) recordEvent(st *economy.State, kind economy.EventKind, description string) economy.NotableEvent {
	ev := economy.NotableEvent{
		ID:          uuid.NewString(),
		Timestamp:   s.opts.Now(),
		Kind:        kind,
		Description: description,
	}
	st.NotableEvents = append(st.NotableEvents, ev)
	slog.Info("notable event", "session", s.ID, "kind", kind, "description", description)
	return ev
}
