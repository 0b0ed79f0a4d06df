// Package economy holds the national indicators the simulation perturbs,
// along with the narrative and policy records derived from transitions.
package economy

import (
	"fmt"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
)

// StartDate is the simulated calendar date of a fresh economy.
var StartDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// DateLayout is how simulated dates are rendered in summaries and the audit trail.
const DateLayout = "2006-01-02"

// Alert thresholds. They only produce warnings on the state view and never
// mutate anything.
const (
	GDPAlertFloor          = 800
	UnemploymentAlertLimit = 10
	InflationAlertLimit    = 10
)

// State is the complete economy at one point in simulated time.
type State struct {
	GDP                float64 `json:"gdp"`
	Unemployment       float64 `json:"unemployment"` // percent, >= 0
	Inflation          float64 `json:"inflation"`    // percent, >= 0
	PublicDebt         float64 `json:"public_debt"`  // negative = surplus
	Investment         float64 `json:"investment"`
	ConsumerConfidence float64 `json:"consumer_confidence"` // [0, 100]
	Happiness          float64 `json:"happiness"`           // [0, 100]
	Population         float64 `json:"population"`

	Time int       `json:"time"` // simulated years elapsed
	Date time.Time `json:"date"`

	NotableEvents []NotableEvent `json:"notable_events"`
	Policies      []PolicyRecord `json:"policies"`
}

// NewState returns the economy every session starts from.
func NewState() State {
	return State{
		GDP:                1000,
		Unemployment:       5,
		Inflation:          2,
		PublicDebt:         500,
		Investment:         200,
		ConsumerConfidence: 70,
		Happiness:          75,
		Population:         100,
		Date:               StartDate,
		NotableEvents:      []NotableEvent{},
		Policies:           []PolicyRecord{},
	}
}

// Clone returns a deep copy. Transitions are staged on a clone and only
// replace the live state once their audit entry is durable.
func (s State) Clone() State {
	c := s
	c.NotableEvents = slices.Clone(s.NotableEvents)
	c.Policies = slices.Clone(s.Policies)
	if c.NotableEvents == nil {
		c.NotableEvents = []NotableEvent{}
	}
	if c.Policies == nil {
		c.Policies = []PolicyRecord{}
	}
	return c
}

// DateString renders the simulated date.
func (s State) DateString() string {
	return s.Date.Format(DateLayout)
}

// Warnings lists the alert thresholds the economy currently breaches.
func (s State) Warnings() []string {
	var out []string
	if s.GDP < GDPAlertFloor {
		out = append(out, fmt.Sprintf("GDP Drop: GDP %.2f is below %d", s.GDP, GDPAlertFloor))
	}
	if s.Unemployment > UnemploymentAlertLimit {
		out = append(out, fmt.Sprintf("Unemployment Surge: %.2f%% exceeds %d%%", s.Unemployment, UnemploymentAlertLimit))
	}
	if s.Inflation > InflationAlertLimit {
		out = append(out, fmt.Sprintf("Inflation Surge: %.2f%% exceeds %d%%", s.Inflation, InflationAlertLimit))
	}
	return out
}

// Summary is a compact human-readable line for operator logs.
func (s State) Summary() string {
	return fmt.Sprintf("%s year %d: GDP %s, debt %s, unemployment %.2f%%, inflation %.2f%%, population %s",
		s.DateString(), s.Time,
		humanize.CommafWithDigits(s.GDP, 2),
		humanize.CommafWithDigits(s.PublicDebt, 2),
		s.Unemployment, s.Inflation,
		humanize.CommafWithDigits(s.Population, 1),
	)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NonNegative floors v at zero.
func NonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// Normalize re-applies every bounded-field invariant.
func (s *State) Normalize() {
	for _, ind := range boundedIndicators {
		s.Bound(ind)
	}
}
