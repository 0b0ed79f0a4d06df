package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/talgya/econsim/internal/economy"
)

// leverEffects are per-unit responses to one unit of lever magnitude.
var leverEffects = map[economy.Lever][]effectRange{
	economy.LeverTaxes: {
		raise(economy.IndicatorGDP, 8, 12),
		lower(economy.IndicatorPublicDebt, 4, 6),
		lower(economy.IndicatorInvestment, 1.5, 2.5),
		lower(economy.IndicatorConsumerConfidence, 0.4, 0.6),
		lower(economy.IndicatorHappiness, 0.2, 0.4),
	},
	economy.LeverSpending: {
		raise(economy.IndicatorGDP, 12, 18),
		raise(economy.IndicatorPublicDebt, 8, 12),
		raise(economy.IndicatorInvestment, 0.8, 1.2),
		raise(economy.IndicatorConsumerConfidence, 0.15, 0.25),
		raise(economy.IndicatorHappiness, 0.4, 0.6),
	},
	economy.LeverInterest: {
		lower(economy.IndicatorInflation, 0.4, 0.6),
		lower(economy.IndicatorGDP, 4, 6),
		raise(economy.IndicatorUnemployment, 0.15, 0.25),
		lower(economy.IndicatorInvestment, 2.5, 3.5),
		lower(economy.IndicatorConsumerConfidence, 0.7, 0.9),
		lower(economy.IndicatorHappiness, 0.15, 0.25),
	},
	economy.LeverInvestment: {
		raise(economy.IndicatorGDP, 18, 22),
		raise(economy.IndicatorInvestment, 0.9, 1.1),
		raise(economy.IndicatorConsumerConfidence, 0.25, 0.35),
		raise(economy.IndicatorHappiness, 0.3, 0.5),
	},
}

// leverHeadline names the two indicators each lever's audit impact reports.
var leverHeadline = map[economy.Lever][2]economy.Indicator{
	economy.LeverTaxes:      {economy.IndicatorGDP, economy.IndicatorPublicDebt},
	economy.LeverSpending:   {economy.IndicatorGDP, economy.IndicatorPublicDebt},
	economy.LeverInterest:   {economy.IndicatorInflation, economy.IndicatorGDP},
	economy.LeverInvestment: {economy.IndicatorGDP, economy.IndicatorInvestment},
}

// ApplyLever applies an immediate adjustment of the given magnitude. The
// magnitude scales every draw linearly and is unbounded unless
// Options.MaxMagnitude is set. Lever effects are not clamped.
func (s *Simulation) ApplyLever(ctx context.Context, lever economy.Lever, magnitude int) (economy.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ranges, ok := leverEffects[lever]
	if !ok {
		slog.Warn("rejected unknown lever", "session", s.ID, "lever", lever)
		return s.state.Clone(), fmt.Errorf("%w: %q", ErrInvalidLever, lever)
	}
	if limit := s.opts.MaxMagnitude; limit > 0 && (magnitude > limit || magnitude < -limit) {
		return s.state.Clone(), fmt.Errorf("%w: magnitude %d outside [-%d, %d]", ErrInvalidArgument, magnitude, limit, limit)
	}

	next := s.state.Clone()
	applyEffects(&next, s.rng, ranges, float64(magnitude), false)

	head := leverHeadline[lever]
	impact := fmt.Sprintf("%s: %.2f, %s: %.2f",
		head[0], next.Value(head[0]),
		head[1], next.Value(head[1]),
	)

	st, err := s.commit(ctx, next, lever.ActionName(), magnitude, impact)
	if err != nil {
		return st, err
	}
	slog.Info("lever adjusted", "session", s.ID, "lever", lever, "magnitude", magnitude, "impact", impact)
	return st, nil
}
