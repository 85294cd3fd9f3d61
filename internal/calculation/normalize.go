package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ch8101040/tashmash/internal/domain"
)

// AverageIncome derives the single average-gross/average-net monthly figure
// the evaluator works from, according to the chosen income method.
//
// Payslips average gross and net (gross − deductions − one-time payments)
// across the slots that carry a gross figure; no filled slot yields {0, 0}.
// Manual entries are trusted when both figures are present; a missing figure
// is estimated through the rule set's net-estimate ratio, applied in both
// directions so the two estimates are approximate inverses. Not working is
// {0, 0} unconditionally.
func AverageIncome(st *domain.ApplicationState, rules *domain.RuleSet) (gross, net decimal.Decimal) {
	switch st.IncomeMethod {
	case domain.IncomePayslips:
		return averageFromSlips(st.Slips)
	case domain.IncomeManual:
		return normalizeManual(st.Manual, rules)
	default:
		// Not working, or no method chosen yet.
		return decimal.Zero, decimal.Zero
	}
}

func averageFromSlips(slips [domain.SlipCount]domain.SalarySlip) (gross, net decimal.Decimal) {
	totalGross := decimal.Zero
	totalNet := decimal.Zero
	validSlips := 0
	for _, slip := range slips {
		if !slip.HasGross() {
			continue
		}
		totalGross = totalGross.Add(*slip.Gross)
		totalNet = totalNet.Add(slip.Net())
		validSlips++
	}
	if validSlips == 0 {
		return decimal.Zero, decimal.Zero
	}
	count := decimal.NewFromInt(int64(validSlips))
	return totalGross.Div(count), totalNet.Div(count)
}

func normalizeManual(manual domain.ManualIncome, rules *domain.RuleSet) (gross, net decimal.Decimal) {
	switch {
	case manual.Gross != nil && manual.Net != nil:
		return *manual.Gross, *manual.Net
	case manual.Gross != nil:
		return *manual.Gross, EstimateNet(*manual.Gross, rules)
	case manual.Net != nil:
		return EstimateGross(*manual.Net, rules), *manual.Net
	default:
		return decimal.Zero, decimal.Zero
	}
}

// EstimateNet approximates net income from gross using the statutory-deduction
// ratio, rounded to a whole shekel.
func EstimateNet(gross decimal.Decimal, rules *domain.RuleSet) decimal.Decimal {
	return gross.Mul(rules.NetEstimateRatio).Round(0)
}

// EstimateGross approximates gross income from net by dividing through the
// same ratio, rounded to a whole shekel. Estimating net and re-estimating
// gross returns to within one shekel of the input figure.
func EstimateGross(net decimal.Decimal, rules *domain.RuleSet) decimal.Decimal {
	return net.Div(rules.NetEstimateRatio).Round(0)
}
