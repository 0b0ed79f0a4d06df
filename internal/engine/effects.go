package engine

import (
	"github.com/talgya/econsim/internal/economy"
	"github.com/talgya/econsim/internal/entropy"
)

// effectRange is one indicator's response: a uniform draw from [lo, hi],
// signed by sign, scaled by the caller's magnitude.
type effectRange struct {
	indicator economy.Indicator
	sign      float64
	lo, hi    float64
}

func raise(ind economy.Indicator, lo, hi float64) effectRange {
	return effectRange{indicator: ind, sign: 1, lo: lo, hi: hi}
}

func lower(ind economy.Indicator, lo, hi float64) effectRange {
	return effectRange{indicator: ind, sign: -1, lo: lo, hi: hi}
}

// applyEffects draws and applies each range in order and returns the deltas
// applied. With bound set, the touched indicator is clamped right after its
// draw and the returned delta is the change that survived the clamp.
func applyEffects(st *economy.State, rng entropy.Source, ranges []effectRange, scale float64, bound bool) []economy.Effect {
	applied := make([]economy.Effect, 0, len(ranges))
	for _, r := range ranges {
		delta := r.sign * entropy.Uniform(rng, r.lo, r.hi) * scale
		before := st.Value(r.indicator)
		st.Adjust(r.indicator, delta)
		if bound {
			st.Bound(r.indicator)
			delta = st.Value(r.indicator) - before
		}
		applied = append(applied, economy.Effect{Indicator: r.indicator, Delta: delta})
	}
	return applied
}
