package economy

import (
	"fmt"
	"strings"
)

// Indicator names one numeric field of State.
type Indicator uint8

const (
	IndicatorGDP Indicator = iota
	IndicatorUnemployment
	IndicatorInflation
	IndicatorPublicDebt
	IndicatorInvestment
	IndicatorConsumerConfidence
	IndicatorHappiness
	IndicatorPopulation
)

var indicatorNames = [...]string{
	IndicatorGDP:                "GDP",
	IndicatorUnemployment:       "Unemployment",
	IndicatorInflation:          "Inflation",
	IndicatorPublicDebt:         "Public Debt",
	IndicatorInvestment:         "Investment",
	IndicatorConsumerConfidence: "Consumer Confidence",
	IndicatorHappiness:          "Happiness",
	IndicatorPopulation:         "Population",
}

// boundedIndicators carry a clamp invariant.
var boundedIndicators = []Indicator{
	IndicatorUnemployment,
	IndicatorInflation,
	IndicatorConsumerConfidence,
	IndicatorHappiness,
}

// String returns the display name used in impact summaries.
func (i Indicator) String() string {
	if int(i) < len(indicatorNames) {
		return indicatorNames[i]
	}
	return fmt.Sprintf("Indicator(%d)", uint8(i))
}

// MarshalText renders the indicator by name in JSON.
func (i Indicator) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (s *State) field(ind Indicator) *float64 {
	switch ind {
	case IndicatorGDP:
		return &s.GDP
	case IndicatorUnemployment:
		return &s.Unemployment
	case IndicatorInflation:
		return &s.Inflation
	case IndicatorPublicDebt:
		return &s.PublicDebt
	case IndicatorInvestment:
		return &s.Investment
	case IndicatorConsumerConfidence:
		return &s.ConsumerConfidence
	case IndicatorHappiness:
		return &s.Happiness
	case IndicatorPopulation:
		return &s.Population
	}
	panic(fmt.Sprintf("economy: unknown indicator %d", ind))
}

// Value reads an indicator.
func (s *State) Value(ind Indicator) float64 {
	return *s.field(ind)
}

// Adjust adds delta to an indicator without clamping.
func (s *State) Adjust(ind Indicator, delta float64) {
	*s.field(ind) += delta
}

// Bound clamps a single indicator to its invariant range, if it has one.
func (s *State) Bound(ind Indicator) {
	f := s.field(ind)
	switch ind {
	case IndicatorUnemployment, IndicatorInflation:
		*f = NonNegative(*f)
	case IndicatorConsumerConfidence, IndicatorHappiness:
		*f = Clamp(*f, 0, 100)
	}
}

// Effect is one applied change to one indicator.
type Effect struct {
	Indicator Indicator `json:"indicator"`
	Delta     float64   `json:"delta"`
}

// RenderEffects formats effects as "Name +1.23, Name -4.56".
func RenderEffects(effects []Effect) string {
	parts := make([]string, 0, len(effects))
	for _, e := range effects {
		parts = append(parts, fmt.Sprintf("%s %+.2f", e.Indicator, e.Delta))
	}
	return strings.Join(parts, ", ")
}
