package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/talgya/econsim/internal/economy"
	"github.com/talgya/econsim/internal/entropy"
)

// DaysPerYear is the calendar step per simulated year. Leap days are ignored.
const DaysPerYear = 365

// TimeAdvancementAction is the audit action for AdvanceTime.
const TimeAdvancementAction = "Time Advancement"

// MaxElapsedYears caps the simulated clock. At this ceiling the date is
// still DaysPerYear*MaxElapsedYears days (about 3e13 seconds) past
// StartDate, well inside time.Time and int range.
const MaxElapsedYears = 1_000_000

// AdvanceTime moves the economy forward by years. Growth rates are drawn
// once per call and scaled by years; the shock and policy trials also run
// once per call regardless of years.
func (s *Simulation) AdvanceTime(ctx context.Context, years int) (economy.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if years <= 0 {
		return s.state.Clone(), fmt.Errorf("%w: years must be positive, got %d", ErrInvalidArgument, years)
	}
	if years > MaxElapsedYears-s.state.Time {
		return s.state.Clone(), fmt.Errorf("%w: advancing %d years from year %d passes the %d year limit",
			ErrInvalidArgument, years, s.state.Time, MaxElapsedYears)
	}

	next := s.state.Clone()
	y := float64(years)

	next.Time += years
	next.Date = next.Date.AddDate(0, 0, DaysPerYear*years)

	gdpGrowth := entropy.Uniform(s.rng, 0.01, 0.03)
	debtGrowth := entropy.Uniform(s.rng, 0.02, 0.04)
	populationGrowth := entropy.Uniform(s.rng, 0.4, 0.6)

	next.GDP *= 1 + gdpGrowth*y
	next.PublicDebt *= 1 + debtGrowth*y
	next.Population += y * populationGrowth
	next.Unemployment = economy.NonNegative(next.Unemployment + entropy.Uniform(s.rng, 0.05, 0.15)*y)
	next.Inflation = economy.NonNegative(next.Inflation + entropy.Uniform(s.rng, 0.1, 0.3)*y)
	next.Happiness = economy.Clamp(next.Happiness-entropy.Uniform(s.rng, 0.3, 0.7)*y, 0, 100)

	if entropy.Chance(s.rng, s.opts.ShockProbability) {
		s.triggerShock(&next)
	}
	if entropy.Chance(s.rng, s.opts.PolicyProbability) {
		s.enactPolicy(&next)
	}

	// Lever adjustments are unclamped; a year boundary restores every
	// bounded field so the invariants hold after each advance.
	next.Normalize()

	impact := fmt.Sprintf("Date: %s, GDP: %.2f, Public Debt: %.2f", next.DateString(), next.GDP, next.PublicDebt)
	st, err := s.commit(ctx, next, TimeAdvancementAction, years, impact)
	if err != nil {
		return st, err
	}
	slog.Info("time advanced", "session", s.ID, "years", years, "summary", st.Summary())
	return st, nil
}
