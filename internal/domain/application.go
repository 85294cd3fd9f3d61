package domain

import (
	"github.com/shopspring/decimal"
)

// IncomeMethod selects which income source the normalizer consults. The
// methods are mutually exclusive; switching clears the other method's fields.
type IncomeMethod string

const (
	IncomeNone     IncomeMethod = ""
	IncomePayslips IncomeMethod = "payslips"
	IncomeManual   IncomeMethod = "manual"
	IncomeNotWork  IncomeMethod = "not_working"
)

// Valid reports whether m is a chosen, known method.
func (m IncomeMethod) Valid() bool {
	return m == IncomePayslips || m == IncomeManual || m == IncomeNotWork
}

// SlipCount is the fixed number of payslip slots.
const SlipCount = 3

// Wizard step numbers. Step 4 is the terminal results view.
const (
	StepCategory = 1
	StepIncome   = 2
	StepExtras   = 3
	StepResults  = 4
)

// SalarySlip is one payslip slot. A slot participates in averaging only when
// Gross is present; Deductions and OneTime default to zero.
type SalarySlip struct {
	Gross      *decimal.Decimal `yaml:"gross,omitempty" json:"gross,omitempty"`
	Deductions *decimal.Decimal `yaml:"deductions,omitempty" json:"deductions,omitempty"`
	OneTime    *decimal.Decimal `yaml:"one_time,omitempty" json:"one_time,omitempty"`
}

// HasGross reports whether the slot is filled in.
func (s SalarySlip) HasGross() bool { return s.Gross != nil }

// Net returns gross minus mandatory deductions and one-time payments, zero for
// an empty slot.
func (s SalarySlip) Net() decimal.Decimal {
	if s.Gross == nil {
		return decimal.Zero
	}
	net := *s.Gross
	if s.Deductions != nil {
		net = net.Sub(*s.Deductions)
	}
	if s.OneTime != nil {
		net = net.Sub(*s.OneTime)
	}
	return net
}

// ManualIncome is the direct-entry alternative to payslips. At least one of
// Gross/Net must be present for the method to be usable; the missing one is
// estimated from the other.
type ManualIncome struct {
	Gross *decimal.Decimal `yaml:"gross,omitempty" json:"gross,omitempty"`
	Net   *decimal.Decimal `yaml:"net,omitempty" json:"net,omitempty"`
}

// Empty reports whether neither figure was entered.
func (m ManualIncome) Empty() bool { return m.Gross == nil && m.Net == nil }

// ApplicationState is the single mutable aggregate the wizard owns. Every
// result is a pure function of this record at the moment of computation.
type ApplicationState struct {
	Step         int                    `yaml:"step" json:"step"`
	Category     ApplicantCategory      `yaml:"category,omitempty" json:"category,omitempty"`
	IncomeMethod IncomeMethod           `yaml:"income_method,omitempty" json:"income_method,omitempty"`
	Slips        [SlipCount]SalarySlip  `yaml:"salary_slips" json:"salary_slips"`
	Manual       ManualIncome           `yaml:"manual_income" json:"manual_income"`
	Savings      *decimal.Decimal       `yaml:"savings,omitempty" json:"savings,omitempty"`
	HasCar       bool                   `yaml:"has_car" json:"has_car"`
	CarValue     *decimal.Decimal       `yaml:"car_value,omitempty" json:"car_value,omitempty"`

	// HasAllowances records national-insurance benefit income. It is collected
	// but not yet factored into any formula; the field exists so a future
	// formula extension has a defined slot to attach to.
	HasAllowances bool `yaml:"has_allowances" json:"has_allowances"`

	// MarriedAfterFirstYear is the student-only marriage-timing answer.
	// nil means unanswered; an explicit false disqualifies student tracks.
	MarriedAfterFirstYear *bool `yaml:"married_after_first_year,omitempty" json:"married_after_first_year,omitempty"`

	Errors FieldErrors        `yaml:"-" json:"errors,omitempty"`
	Result *CalculationResult `yaml:"-" json:"result,omitempty"`
}

// NewApplicationState returns the initial state: step 1, everything empty.
func NewApplicationState() *ApplicationState {
	return &ApplicationState{
		Step:   StepCategory,
		Errors: FieldErrors{},
	}
}

// HasIncomeSignal reports whether the state carries enough income data for an
// interim estimate: a chosen method with any slip gross, any manual figure, or
// the not-working declaration.
func (st *ApplicationState) HasIncomeSignal() bool {
	switch st.IncomeMethod {
	case IncomePayslips:
		for _, slip := range st.Slips {
			if slip.HasGross() {
				return true
			}
		}
		return false
	case IncomeManual:
		return !st.Manual.Empty()
	case IncomeNotWork:
		return true
	}
	return false
}
