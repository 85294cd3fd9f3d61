package calculation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ch8101040/tashmash/internal/domain"
)

// Formula branch labels surfaced in CalculationResult.Method.
const (
	MethodFullEligibility = "full eligibility (100%)"
	MethodStandardFormula = "standard formula"
	MethodNoEligibility   = "no eligibility"
)

// Evaluate runs the ordered eligibility rules against one snapshot of the
// application state and returns a fresh verdict. The rules fire in a fixed
// order, first applicable wins:
//
//  1. student marriage gate
//  2. vehicle disqualification
//  3. bracket table (bracket category only; subsumes the gross ceiling)
//  4. minimum-income gate (worker track only)
//  5. general gross ceiling
//  6. adjusted-net formula, with the student full-eligibility floor
//
// The returned amount is rounded to a whole shekel; intermediate values in
// Details keep full precision. Evaluate never fails: disqualifications are
// ordinary results with Eligible set to false.
func Evaluate(st *domain.ApplicationState, rules *domain.RuleSet) *domain.CalculationResult {
	ceiling := rules.CeilingFor(st.Category)
	averageGross, averageNet := AverageIncome(st, rules)

	savings := decimal.Zero
	if st.Savings != nil {
		savings = *st.Savings
	}
	addition := SavingsAddition(st.Savings, rules)

	details := domain.CalculationDetails{
		Category:        st.Category,
		IncomeMethod:    st.IncomeMethod,
		Ceiling:         ceiling,
		AverageGross:    averageGross,
		AverageNet:      averageNet,
		AdjustedGross:   averageGross,
		AdjustedNet:     averageNet,
		Savings:         savings,
		SavingsAddition: addition,
	}

	// Marriage before the end of the first study year disqualifies the student
	// tracks outright; income is not consulted.
	if st.Category.IsStudent() && st.MarriedAfterFirstYear != nil && !*st.MarriedAfterFirstYear {
		return ineligible(details, averageGross, averageNet, ceiling,
			"Marriage took place before the end of the first study year; the student tracks grant no benefit in that case.")
	}

	// A single vehicle over the value cap disqualifies regardless of income.
	// Ownership of more than one vehicle is described in the published help
	// text but is not modelled here; only one value is collected.
	if st.HasCar && st.CarValue != nil && st.CarValue.GreaterThan(rules.CarValueLimit) {
		return ineligible(details, averageGross, averageNet, ceiling,
			fmt.Sprintf("Vehicle value (%s) exceeds the maximum allowed (%s).",
				money(*st.CarValue), money(rules.CarValueLimit)))
	}

	if st.Category.Formula() == domain.FormulaBracket {
		return evaluateBrackets(details, averageGross, averageNet, ceiling, addition, rules)
	}

	if st.Category.Formula() == domain.FormulaMinimumGated && averageGross.LessThan(rules.WorkerMinimumIncome) {
		return ineligible(details, averageGross, averageNet, ceiling,
			fmt.Sprintf("Average gross income (%s) is below the minimum required for the working track (%s).",
				money(averageGross), money(rules.WorkerMinimumIncome)))
	}

	// General gross ceiling, mandatory for every non-bracket category.
	if averageGross.GreaterThan(rules.GrossCeiling) {
		return ineligible(details, averageGross, averageNet, ceiling,
			fmt.Sprintf("Average gross income (%s) exceeds the general income ceiling (%s).",
				money(averageGross), money(rules.GrossCeiling)))
	}

	return evaluateFormula(st.Category, details, averageGross, averageNet, ceiling, addition, rules)
}

func evaluateBrackets(details domain.CalculationDetails, averageGross, averageNet, ceiling, addition decimal.Decimal, rules *domain.RuleSet) *domain.CalculationResult {
	var reasons []string

	adjustedGross := averageGross.Add(addition)
	details.AdjustedGross = adjustedGross
	details.AdjustedNet = averageNet.Add(addition)
	if addition.IsPositive() {
		reasons = append(reasons, fmt.Sprintf("Savings above %s added %s to gross income for the calculation.",
			money(rules.SavingsThreshold), money(addition)))
	}

	for _, bracket := range rules.Brackets {
		if adjustedGross.GreaterThan(bracket.UpTo) {
			continue
		}
		amount := ceiling.Mul(bracket.Rate)
		method := MethodFullEligibility
		if !bracket.Rate.Equal(decimal.NewFromInt(1)) {
			method = fmt.Sprintf("partial eligibility (%s%%)", bracket.Rate.Mul(decimal.NewFromInt(100)))
		}
		return result(details, averageGross, averageNet, ceiling, amount, method, reasons)
	}

	top := rules.Brackets[len(rules.Brackets)-1].UpTo
	reasons = append(reasons, fmt.Sprintf("Adjusted gross income (%s) is above the top bracket breakpoint (%s).",
		money(adjustedGross), money(top)))
	return result(details, averageGross, averageNet, ceiling, decimal.Zero, MethodNoEligibility, reasons)
}

func evaluateFormula(category domain.ApplicantCategory, details domain.CalculationDetails, averageGross, averageNet, ceiling, addition decimal.Decimal, rules *domain.RuleSet) *domain.CalculationResult {
	var reasons []string

	adjustedNet := averageNet.Add(addition)
	details.AdjustedNet = adjustedNet
	if addition.IsPositive() {
		reasons = append(reasons, fmt.Sprintf("Savings above %s added %s to income for the calculation.",
			money(rules.SavingsThreshold), money(addition)))
	}

	if category.Formula() == domain.FormulaStudentFloor {
		floor := rules.StudentFloors[category]
		if adjustedNet.LessThanOrEqual(ceiling.Mul(floor)) {
			method := fmt.Sprintf("full eligibility (income at or below %s%% of the category ceiling)",
				floor.Mul(decimal.NewFromInt(100)))
			return result(details, averageGross, averageNet, ceiling, ceiling, method, reasons)
		}
	}

	deduction := adjustedNet.Sub(rules.CreditPoints).Mul(rules.ReductionFactor)
	details.Deduction = deduction

	amount := ceiling.Sub(deduction)
	if amount.GreaterThan(ceiling) {
		amount = ceiling
	}
	if amount.LessThan(decimal.Zero) {
		amount = decimal.Zero
	}
	if amount.IsZero() && deduction.GreaterThanOrEqual(ceiling) {
		reasons = append(reasons, fmt.Sprintf("The income-based deduction (%s) meets or exceeds the category ceiling.",
			money(deduction)))
	}
	return result(details, averageGross, averageNet, ceiling, amount, MethodStandardFormula, reasons)
}

func ineligible(details domain.CalculationDetails, averageGross, averageNet, ceiling decimal.Decimal, reason string) *domain.CalculationResult {
	return &domain.CalculationResult{
		Eligible:     false,
		Amount:       decimal.Zero,
		AverageGross: averageGross,
		AverageNet:   averageNet,
		Ceiling:      ceiling,
		Method:       MethodNoEligibility,
		Reasons:      []string{reason},
		Details:      details,
	}
}

func result(details domain.CalculationDetails, averageGross, averageNet, ceiling, amount decimal.Decimal, method string, reasons []string) *domain.CalculationResult {
	return &domain.CalculationResult{
		Eligible:     amount.IsPositive(),
		Amount:       amount.Round(0),
		AverageGross: averageGross,
		AverageNet:   averageNet,
		Ceiling:      ceiling,
		Method:       method,
		Reasons:      reasons,
		Details:      details,
	}
}

// money renders a whole-shekel amount with thousands separators for the
// audit-trail reasons.
func money(d decimal.Decimal) string {
	s := d.Round(0).String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	out := "₪" + b.String()
	if neg {
		out = "-" + out
	}
	return out
}
