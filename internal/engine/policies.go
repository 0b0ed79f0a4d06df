package engine

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/econsim/internal/economy"
	"github.com/talgya/econsim/internal/entropy"
)

type policy struct {
	kind    economy.PolicyKind
	name    string
	event   string
	effects []effectRange
}

var policies = []policy{
	{
		kind:  economy.PolicyUBI,
		name:  "Universal Basic Income",
		event: "Policy Enacted: Universal Basic Income introduced.",
		effects: []effectRange{
			raise(economy.IndicatorConsumerConfidence, 5, 15),
			raise(economy.IndicatorHappiness, 2, 5),
			raise(economy.IndicatorPublicDebt, 100, 300),
		},
	},
	{
		kind:  economy.PolicyTaxCuts,
		name:  "Tax Cuts",
		event: "Policy Enacted: Broad tax cuts signed into law.",
		effects: []effectRange{
			raise(economy.IndicatorConsumerConfidence, 3, 10),
			raise(economy.IndicatorInvestment, 10, 30),
			raise(economy.IndicatorPublicDebt, 50, 200),
		},
	},
	{
		kind:  economy.PolicyAusterity,
		name:  "Austerity Measures",
		event: "Policy Enacted: Austerity measures cut public spending.",
		effects: []effectRange{
			lower(economy.IndicatorPublicDebt, 100, 300),
			lower(economy.IndicatorGDP, 50, 100),
			raise(economy.IndicatorUnemployment, 1, 3),
			lower(economy.IndicatorConsumerConfidence, 5, 10),
		},
	},
	{
		kind:  economy.PolicyGreenInvestment,
		name:  "Green Investment",
		event: "Policy Enacted: A green investment programme has launched.",
		effects: []effectRange{
			raise(economy.IndicatorPublicDebt, 100, 300),
			raise(economy.IndicatorGDP, 50, 150),
			raise(economy.IndicatorConsumerConfidence, 2, 5),
		},
	},
	{
		kind:  economy.PolicyHealthcareReform,
		name:  "Healthcare Reform",
		event: "Policy Enacted: Healthcare reform expands public coverage.",
		effects: []effectRange{
			raise(economy.IndicatorPublicDebt, 50, 200),
			raise(economy.IndicatorHappiness, 5, 10),
			raise(economy.IndicatorGDP, 20, 50),
		},
	},
}

// enactPolicy picks one policy uniformly, applies it to st, and records both
// the notable event and the policy record. The record's impact reports the
// deltas actually applied. Caller must hold mu.
func (s *Simulation) enactPolicy(st *economy.State) economy.PolicyRecord {
	p := policies[entropy.Pick(s.rng, len(policies))]
	applied := applyEffects(st, s.rng, p.effects, 1, true)

	rec := economy.PolicyRecord{
		ID:          uuid.NewString(),
		Policy:      p.kind,
		Description: p.name,
		Effects:     applied,
		Impact:      economy.RenderEffects(applied),
	}
	st.Policies = append(st.Policies, rec)
	s.recordEvent(st, economy.EventPolicy, p.event)

	slog.Info("policy enacted", "session", s.ID, "policy", p.kind, "impact", rec.Impact)
	return rec
}
