package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ch8101040/tashmash/internal/domain"
)

// SavingsAddition converts declared savings into the monthly income addition
// used by every formula: one shekel per full savings-factor unit above the
// threshold. Zero when savings are absent or at or below the threshold.
func SavingsAddition(savings *decimal.Decimal, rules *domain.RuleSet) decimal.Decimal {
	if savings == nil {
		return decimal.Zero
	}
	excess := savings.Sub(rules.SavingsThreshold)
	if excess.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return excess.Div(rules.SavingsFactor).Floor()
}
