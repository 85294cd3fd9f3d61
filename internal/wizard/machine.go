// Package wizard drives the four-step application flow: category, income,
// savings and assets, results. It owns the application state, gates forward
// navigation on step validation, and keeps a live interim estimate current
// as inputs change.
package wizard

import (
	"github.com/shopspring/decimal"

	"github.com/ch8101040/tashmash/internal/calculation"
	"github.com/ch8101040/tashmash/internal/domain"
	"github.com/ch8101040/tashmash/internal/validation"
)

// Machine is the wizard state machine. All mutation goes through its setter
// methods so the interim estimate and the stored verdict stay consistent
// with the inputs. Not safe for concurrent use.
type Machine struct {
	state   *domain.ApplicationState
	rules   *domain.RuleSet
	interim *domain.CalculationResult
}

// New returns a machine positioned on the category step with empty state.
func New(rules *domain.RuleSet) *Machine {
	return &Machine{
		state: domain.NewApplicationState(),
		rules: rules,
	}
}

// NewFromState wraps an existing application state, recomputing the interim
// estimate from it. Used when state arrives from outside the wizard, e.g. a
// saved file.
func NewFromState(st *domain.ApplicationState, rules *domain.RuleSet) *Machine {
	m := &Machine{state: st, rules: rules}
	m.refresh()
	return m
}

// State exposes the underlying application state for rendering.
func (m *Machine) State() *domain.ApplicationState { return m.state }

// Rules exposes the rule set the machine evaluates against.
func (m *Machine) Rules() *domain.RuleSet { return m.rules }

// Step reports the current step, 1-based.
func (m *Machine) Step() int { return m.state.Step }

// Interim returns the live estimate, or nil when there is nothing to show.
func (m *Machine) Interim() *domain.CalculationResult { return m.interim }

// Result returns the verdict computed on entering the results step, nil
// before that or after any input changed since.
func (m *Machine) Result() *domain.CalculationResult { return m.state.Result }

// Advance validates the current step and moves forward on success. The
// validation errors land in State().Errors either way. Leaving the savings
// step runs the final evaluation and stores the verdict.
func (m *Machine) Advance() bool {
	if m.state.Step >= domain.StepResults {
		return false
	}
	errs := validation.ValidateStep(m.state.Step, m.state, m.rules)
	m.state.Errors = errs
	if !errs.Empty() {
		return false
	}
	if m.state.Step == domain.StepExtras {
		m.state.Result = calculation.Evaluate(m.state, m.rules)
	}
	m.state.Step++
	return true
}

// Back moves one step toward the start. Errors from the abandoned step are
// discarded; inputs and any computed verdict are kept.
func (m *Machine) Back() {
	if m.state.Step > domain.StepCategory {
		m.state.Step--
		m.state.Errors = domain.FieldErrors{}
	}
}

// GoTo jumps directly to a previously visited step. Forward jumps are
// refused; forward movement always goes through Advance.
func (m *Machine) GoTo(step int) bool {
	if step < domain.StepCategory || step > m.state.Step {
		return false
	}
	m.state.Step = step
	m.state.Errors = domain.FieldErrors{}
	return true
}

// Reset discards all inputs and returns to the category step.
func (m *Machine) Reset() {
	m.state = domain.NewApplicationState()
	m.interim = nil
}

// SelectCategory records the applicant's category.
func (m *Machine) SelectCategory(c domain.ApplicantCategory) {
	m.state.Category = c
	m.refresh()
}

// SetIncomeMethod switches the income entry method, clearing the figures
// that belong to the methods no longer in use.
func (m *Machine) SetIncomeMethod(method domain.IncomeMethod) {
	m.state.IncomeMethod = method
	if method != domain.IncomePayslips {
		m.state.Slips = [domain.SlipCount]domain.SalarySlip{}
	}
	if method != domain.IncomeManual {
		m.state.Manual = domain.ManualIncome{}
	}
	m.refresh()
}

// SetSlip replaces one payslip slot. Out-of-range indexes are ignored.
func (m *Machine) SetSlip(i int, slip domain.SalarySlip) {
	if i < 0 || i >= domain.SlipCount {
		return
	}
	m.state.Slips[i] = slip
	m.refresh()
}

// SetManualGross records the manually entered gross figure; nil clears it.
func (m *Machine) SetManualGross(d *decimal.Decimal) {
	m.state.Manual.Gross = d
	m.refresh()
}

// SetManualNet records the manually entered net figure; nil clears it.
func (m *Machine) SetManualNet(d *decimal.Decimal) {
	m.state.Manual.Net = d
	m.refresh()
}

// SetSavings records total household savings; nil clears the answer.
func (m *Machine) SetSavings(d *decimal.Decimal) {
	m.state.Savings = d
	m.refresh()
}

// SetHasCar records vehicle ownership. Dropping ownership clears the value.
func (m *Machine) SetHasCar(has bool) {
	m.state.HasCar = has
	if !has {
		m.state.CarValue = nil
	}
	m.refresh()
}

// SetCarValue records the declared vehicle value; nil clears it.
func (m *Machine) SetCarValue(d *decimal.Decimal) {
	m.state.CarValue = d
	m.refresh()
}

// SetHasAllowances records whether the household receives other allowances.
// The answer is collected for the record and does not affect the amount.
func (m *Machine) SetHasAllowances(has bool) {
	m.state.HasAllowances = has
	m.refresh()
}

// SetMarriedAfterFirstYear answers the student marriage question; nil means
// unanswered, which does not disqualify.
func (m *Machine) SetMarriedAfterFirstYear(v *bool) {
	m.state.MarriedAfterFirstYear = v
	m.refresh()
}

// refresh recomputes the interim estimate and invalidates any stored final
// verdict after a mutation.
func (m *Machine) refresh() {
	m.state.Errors = domain.FieldErrors{}
	m.state.Result = nil
	m.interim = calculation.ComputeInterim(m.state, m.rules)
}

// ComputeFinal validates a complete application in one shot and, when it
// passes, evaluates it. Both the income and the savings steps are checked,
// so headless callers get the same gating the interactive wizard applies.
func ComputeFinal(st *domain.ApplicationState, rules *domain.RuleSet) (*domain.CalculationResult, domain.FieldErrors) {
	errs := validation.ValidateStep(domain.StepIncome, st, rules)
	for field, err := range validation.ValidateStep(domain.StepExtras, st, rules) {
		errs.Add(field, err.Kind, err.Message)
	}
	if !errs.Empty() {
		return nil, errs
	}
	return calculation.Evaluate(st, rules), errs
}
