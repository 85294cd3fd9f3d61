// Package validation enforces the per-step input constraints that gate
// forward navigation in the wizard. It produces field-keyed errors only;
// result-level disqualifications belong to the evaluator.
package validation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ch8101040/tashmash/internal/calculation"
	"github.com/ch8101040/tashmash/internal/domain"
)

// Field keys used in the error map. Per-slot keys carry the slot index
// suffix, e.g. "gross_0".
const (
	FieldIncomeMethod = "income_method"
	FieldSlips        = "slips"
	FieldManualIncome = "manual_income"
	FieldManualGross  = "manual_gross"
	FieldManualNet    = "manual_net"
	FieldSavings      = "savings"
	FieldCarValue     = "car_value"
)

// SlipGrossField returns the error-map key for slot i's gross figure.
func SlipGrossField(i int) string { return fmt.Sprintf("gross_%d", i) }

// SlipDeductionsField returns the error-map key for slot i's deductions.
func SlipDeductionsField(i int) string { return fmt.Sprintf("deductions_%d", i) }

// ValidateStep checks the given step against the state and returns the
// field→error map; an empty map means the step passes. Category selection
// (step 1) and the results view (step 4) impose no blocking rule.
func ValidateStep(step int, st *domain.ApplicationState, rules *domain.RuleSet) domain.FieldErrors {
	errs := domain.FieldErrors{}
	switch step {
	case domain.StepIncome:
		validateIncome(st, rules, errs)
	case domain.StepExtras:
		validateExtras(st, rules, errs)
	}
	return errs
}

func validateIncome(st *domain.ApplicationState, rules *domain.RuleSet, errs domain.FieldErrors) {
	if !st.IncomeMethod.Valid() {
		errs.Add(FieldIncomeMethod, domain.MissingRequired, "An income entry method must be chosen.")
		return
	}
	switch st.IncomeMethod {
	case domain.IncomePayslips:
		validatePayslips(st, rules, errs)
	case domain.IncomeManual:
		validateManual(st, rules, errs)
	case domain.IncomeNotWork:
		// Nothing to enter.
	}
}

func validatePayslips(st *domain.ApplicationState, rules *domain.RuleSet, errs domain.FieldErrors) {
	hasInput := false
	for i, slip := range st.Slips {
		if !slip.HasGross() {
			continue
		}
		hasInput = true
		gross := *slip.Gross
		if gross.IsNegative() || gross.GreaterThan(rules.MaxInput) {
			errs.Add(SlipGrossField(i), domain.OutOfRange,
				fmt.Sprintf("Gross income must be between 0 and %s.", rules.MaxInput))
		}
		if slip.Deductions != nil {
			if slip.Deductions.IsNegative() || slip.Deductions.GreaterThan(gross) {
				errs.Add(SlipDeductionsField(i), domain.OutOfRange,
					"Mandatory deductions must be non-negative and no more than the slip's gross.")
			}
		}
	}
	if !hasInput {
		errs.Add(FieldSlips, domain.MissingRequired, "At least one payslip must be entered.")
		return
	}
	// Early warning for the working track: repeat the evaluator's minimum
	// income gate here so the applicant sees it before the results step.
	if st.Category == domain.Worker {
		averageGross, _ := calculation.AverageIncome(st, rules)
		if averageGross.LessThan(rules.WorkerMinimumIncome) {
			errs.Add(FieldSlips, domain.MinimumIncomeNotMet,
				fmt.Sprintf("Average gross income (%s) is below the minimum required for the working track (%s).",
					averageGross.Round(0), rules.WorkerMinimumIncome))
		}
	}
}

func validateManual(st *domain.ApplicationState, rules *domain.RuleSet, errs domain.FieldErrors) {
	manual := st.Manual
	if manual.Empty() {
		errs.Add(FieldManualIncome, domain.MissingRequired, "Either gross or net income must be entered.")
		return
	}
	if manual.Gross != nil && (manual.Gross.IsNegative() || manual.Gross.GreaterThan(rules.MaxInput)) {
		errs.Add(FieldManualGross, domain.OutOfRange,
			fmt.Sprintf("Gross income must be between 0 and %s.", rules.MaxInput))
	}
	if manual.Net != nil && (manual.Net.IsNegative() || manual.Net.GreaterThan(rules.MaxInput)) {
		errs.Add(FieldManualNet, domain.OutOfRange,
			fmt.Sprintf("Net income must be between 0 and %s.", rules.MaxInput))
	}
	if manual.Gross != nil && manual.Net != nil && manual.Gross.LessThan(*manual.Net) {
		errs.Add(FieldManualIncome, domain.Inconsistent, "Gross income cannot be lower than net income.")
	}
	if st.Category != domain.Worker {
		return
	}
	grossToCheck := decimal.Zero
	switch {
	case manual.Gross != nil:
		grossToCheck = *manual.Gross
	case manual.Net != nil && manual.Net.IsPositive():
		grossToCheck = calculation.EstimateGross(*manual.Net, rules)
	}
	if grossToCheck.IsPositive() && grossToCheck.LessThan(rules.WorkerMinimumIncome) {
		errs.Add(FieldManualGross, domain.MinimumIncomeNotMet,
			fmt.Sprintf("Estimated gross income (%s) is below the minimum required for the working track (%s).",
				grossToCheck.Round(0), rules.WorkerMinimumIncome))
	}
}

func validateExtras(st *domain.ApplicationState, rules *domain.RuleSet, errs domain.FieldErrors) {
	if st.Savings != nil && (st.Savings.IsNegative() || st.Savings.GreaterThan(rules.MaxSavings)) {
		errs.Add(FieldSavings, domain.OutOfRange,
			fmt.Sprintf("Savings must be between 0 and %s.", rules.MaxSavings))
	}
	if st.HasCar {
		switch {
		case st.CarValue == nil:
			errs.Add(FieldCarValue, domain.MissingRequired, "A vehicle value is required when a vehicle is owned.")
		case st.CarValue.IsNegative() || st.CarValue.GreaterThan(rules.MaxInput):
			errs.Add(FieldCarValue, domain.OutOfRange,
				fmt.Sprintf("Vehicle value must be between 0 and %s.", rules.MaxInput))
		}
	}
}
