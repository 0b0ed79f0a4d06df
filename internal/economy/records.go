package economy

import "time"

// EventTimestampLayout renders NotableEvent timestamps at the boundary.
const EventTimestampLayout = "2006-01-02 15:04:05"

// Lever is a policy instrument an operator adjusts directly.
type Lever string

const (
	LeverTaxes      Lever = "taxes"
	LeverSpending   Lever = "spending"
	LeverInterest   Lever = "interest"
	LeverInvestment Lever = "investment"
)

// Levers lists every recognised lever.
var Levers = []Lever{LeverTaxes, LeverSpending, LeverInterest, LeverInvestment}

// ActionName is the audit trail action recorded for an adjustment of l.
func (l Lever) ActionName() string {
	switch l {
	case LeverTaxes:
		return "Tax Adjustment"
	case LeverSpending:
		return "Spending Adjustment"
	case LeverInterest:
		return "Interest Rate Adjustment"
	case LeverInvestment:
		return "Investment Adjustment"
	}
	return ""
}

// Valid reports whether l is one of the four levers.
func (l Lever) Valid() bool {
	return l.ActionName() != ""
}

// EventKind separates the two sources of notable events.
type EventKind string

const (
	EventShock  EventKind = "shock"
	EventPolicy EventKind = "policy"
)

// NotableEvent is a narrative record of a shock or an enacted policy.
type NotableEvent struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Kind        EventKind `json:"kind"`
	Description string    `json:"description"`
}

// ShockKind is one of the unsolicited macro shocks.
type ShockKind string

const (
	ShockRecession      ShockKind = "recession"
	ShockBoom           ShockKind = "boom"
	ShockInflationSpike ShockKind = "inflation_spike"
	ShockDebtCrisis     ShockKind = "debt_crisis"
)

// PolicyKind is one of the structural policies that may be enacted.
type PolicyKind string

const (
	PolicyUBI              PolicyKind = "ubi"
	PolicyTaxCuts          PolicyKind = "tax_cuts"
	PolicyAusterity        PolicyKind = "austerity"
	PolicyGreenInvestment  PolicyKind = "green_investment"
	PolicyHealthcareReform PolicyKind = "healthcare_reform"
)

// PolicyRecord describes an enacted policy and what it did.
type PolicyRecord struct {
	ID          string     `json:"id"`
	Policy      PolicyKind `json:"policy"`
	Description string     `json:"description"`
	Effects     []Effect   `json:"effects"`
	Impact      string     `json:"impact"`
}
