package calculation

import (
	"github.com/ch8101040/tashmash/internal/domain"
)

// ComputeInterim produces the live estimate shown while the applicant is
// still mid-wizard. It runs the full evaluation but skips step validation,
// so partially entered figures flow through as-is. It returns nil until a
// category is chosen and some income signal exists; callers treat nil as
// "nothing to show yet".
func ComputeInterim(st *domain.ApplicationState, rules *domain.RuleSet) *domain.CalculationResult {
	if !st.Category.Valid() || !st.HasIncomeSignal() {
		return nil
	}
	return Evaluate(st, rules)
}
