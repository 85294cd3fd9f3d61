package domain

import (
	"github.com/shopspring/decimal"
)

// CalculationResult is the evaluator's verdict for one snapshot of the
// application state. It is recomputed whole, never mutated in place.
type CalculationResult struct {
	Eligible     bool            `yaml:"eligible" json:"eligible"`
	Amount       decimal.Decimal `yaml:"amount" json:"amount"`
	AverageGross decimal.Decimal `yaml:"average_gross" json:"average_gross"`
	AverageNet   decimal.Decimal `yaml:"average_net" json:"average_net"`
	Ceiling      decimal.Decimal `yaml:"ceiling" json:"ceiling"`

	// Method labels the formula branch that fired, e.g. "full eligibility (100%)".
	Method string `yaml:"method,omitempty" json:"method,omitempty"`

	// Reasons is the ordered audit trail of applied rules, in the order the
	// evaluator appended them.
	Reasons []string `yaml:"reasons,omitempty" json:"reasons,omitempty"`

	Details CalculationDetails `yaml:"calculation_details" json:"calculation_details"`
}

// CalculationDetails captures every intermediate value of an evaluation for
// audit and inspection. Amounts here retain full precision; only the
// top-level Amount is rounded.
type CalculationDetails struct {
	Category        ApplicantCategory `yaml:"category" json:"category"`
	IncomeMethod    IncomeMethod      `yaml:"income_method" json:"income_method"`
	Ceiling         decimal.Decimal   `yaml:"ceiling" json:"ceiling"`
	AverageGross    decimal.Decimal   `yaml:"average_gross" json:"average_gross"`
	AverageNet      decimal.Decimal   `yaml:"average_net" json:"average_net"`
	AdjustedGross   decimal.Decimal   `yaml:"adjusted_gross" json:"adjusted_gross"`
	AdjustedNet     decimal.Decimal   `yaml:"adjusted_net" json:"adjusted_net"`
	Deduction       decimal.Decimal   `yaml:"deduction" json:"deduction"`
	Savings         decimal.Decimal   `yaml:"savings" json:"savings"`
	SavingsAddition decimal.Decimal   `yaml:"savings_addition" json:"savings_addition"`
}

// Equal reports whether two results are identical, reasons included. Used by
// idempotence checks; decimal comparison is by value, not representation.
func (r *CalculationResult) Equal(other *CalculationResult) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.Eligible != other.Eligible ||
		!r.Amount.Equal(other.Amount) ||
		!r.AverageGross.Equal(other.AverageGross) ||
		!r.AverageNet.Equal(other.AverageNet) ||
		!r.Ceiling.Equal(other.Ceiling) ||
		r.Method != other.Method ||
		len(r.Reasons) != len(other.Reasons) {
		return false
	}
	for i := range r.Reasons {
		if r.Reasons[i] != other.Reasons[i] {
			return false
		}
	}
	return true
}
