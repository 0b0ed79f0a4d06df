package engine

import (
	"github.com/talgya/econsim/internal/economy"
	"github.com/talgya/econsim/internal/entropy"
)

type shock struct {
	kind        economy.ShockKind
	description string
	effects     []effectRange
}

var shocks = []shock{
	{
		kind:        economy.ShockRecession,
		description: "Economic Shock: A recession has hit. GDP is contracting and unemployment is rising.",
		effects: []effectRange{
			lower(economy.IndicatorGDP, 50, 150),
			raise(economy.IndicatorUnemployment, 1, 3),
		},
	},
	{
		kind:        economy.ShockBoom,
		description: "Economic Boom: Output is surging and unemployment is falling.",
		effects: []effectRange{
			raise(economy.IndicatorGDP, 100, 200),
			lower(economy.IndicatorUnemployment, 1, 2),
		},
	},
	{
		kind:        economy.ShockInflationSpike,
		description: "Economic Shock: Inflation has spiked sharply.",
		effects: []effectRange{
			raise(economy.IndicatorInflation, 2, 5),
		},
	},
	{
		kind:        economy.ShockDebtCrisis,
		description: "Economic Shock: A debt crisis has shaken confidence in public finances.",
		effects: []effectRange{
			raise(economy.IndicatorPublicDebt, 100, 300),
			lower(economy.IndicatorConsumerConfidence, 5, 10),
		},
	},
}

// triggerShock picks one shock uniformly, applies it to st, and records the
// event. Caller must hold mu.
func (s *Simulation) triggerShock(st *economy.State) economy.NotableEvent {
	sh := shocks[entropy.Pick(s.rng, len(shocks))]
	applyEffects(st, s.rng, sh.effects, 1, true)
	return s.recordEvent(st, economy.EventShock, sh.description)
}
