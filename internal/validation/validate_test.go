package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ch8101040/tashmash/internal/domain"
)

func decp(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func TestValidateStepOneAndFourAlwaysPass(t *testing.T) {
	rules := domain.DefaultRules()
	st := domain.NewApplicationState()

	assert.True(t, ValidateStep(domain.StepCategory, st, rules).Empty())
	assert.True(t, ValidateStep(domain.StepResults, st, rules).Empty())
}

func TestValidateIncomeMethodRequired(t *testing.T) {
	st := domain.NewApplicationState()
	st.Category = domain.Pregnant14

	errs := ValidateStep(domain.StepIncome, st, domain.DefaultRules())
	require.Contains(t, errs, FieldIncomeMethod)
	assert.Equal(t, domain.MissingRequired, errs[FieldIncomeMethod].Kind)
}

func TestValidatePayslips(t *testing.T) {
	rules := domain.DefaultRules()

	t.Run("at least one slip required", func(t *testing.T) {
		st := domain.NewApplicationState()
		st.Category = domain.Pregnant14
		st.IncomeMethod = domain.IncomePayslips

		errs := ValidateStep(domain.StepIncome, st, rules)
		require.Contains(t, errs, FieldSlips)
		assert.Equal(t, domain.MissingRequired, errs[FieldSlips].Kind)
	})

	t.Run("one filled slip passes", func(t *testing.T) {
		st := domain.NewApplicationState()
		st.Category = domain.Pregnant14
		st.IncomeMethod = domain.IncomePayslips
		st.Slips[0] = domain.SalarySlip{Gross: decp(6000)}

		assert.True(t, ValidateStep(domain.StepIncome, st, rules).Empty())
	})

	t.Run("gross above the input cap is rejected", func(t *testing.T) {
		st := domain.NewApplicationState()
		st.Category = domain.Pregnant14
		st.IncomeMethod = domain.IncomePayslips
		st.Slips[1] = domain.SalarySlip{Gross: decp(150000)}

		errs := ValidateStep(domain.StepIncome, st, rules)
		require.Contains(t, errs, SlipGrossField(1))
		assert.Equal(t, domain.OutOfRange, errs[SlipGrossField(1)].Kind)
	})

	t.Run("deductions above gross are rejected", func(t *testing.T) {
		st := domain.NewApplicationState()
		st.Category = domain.Pregnant14
		st.IncomeMethod = domain.IncomePayslips
		st.Slips[0] = domain.SalarySlip{Gross: decp(5000), Deductions: decp(5500)}

		errs := ValidateStep(domain.StepIncome, st, rules)
		require.Contains(t, errs, SlipDeductionsField(0))
		assert.Equal(t, domain.OutOfRange, errs[SlipDeductionsField(0)].Kind)
	})

	t.Run("worker below the minimum income is flagged early", func(t *testing.T) {
		st := domain.NewApplicationState()
		st.Category = domain.Worker
		st.IncomeMethod = domain.IncomePayslips
		st.Slips[0] = domain.SalarySlip{Gross: decp(6000)}

		errs := ValidateStep(domain.StepIncome, st, rules)
		require.Contains(t, errs, FieldSlips)
		assert.Equal(t, domain.MinimumIncomeNotMet, errs[FieldSlips].Kind)
	})

	t.Run("worker minimum does not apply to other categories", func(t *testing.T) {
		st := domain.NewApplicationState()
		st.Category = domain.NewImmigrant
		st.IncomeMethod = domain.IncomePayslips
		st.Slips[0] = domain.SalarySlip{Gross: decp(6000)}

		assert.True(t, ValidateStep(domain.StepIncome, st, rules).Empty())
	})
}

func TestValidateManualIncome(t *testing.T) {
	rules := domain.DefaultRules()

	t.Run("at least one figure required", func(t *testing.T) {
		st := domain.NewApplicationState()
		st.Category = domain.Pregnant14
		st.IncomeMethod = domain.IncomeManual

		errs := ValidateStep(domain.StepIncome, st, rules)
		require.Contains(t, errs, FieldManualIncome)
		assert.Equal(t, domain.MissingRequired, errs[FieldManualIncome].Kind)
	})

	t.Run("gross below net is inconsistent", func(t *testing.T) {
		st := domain.NewApplicationState()
		st.Category = domain.Pregnant14
		st.IncomeMethod = domain.IncomeManual
		st.Manual = domain.ManualIncome{Gross: decp(5000), Net: decp(5500)}

		errs := ValidateStep(domain.StepIncome, st, rules)
		require.Contains(t, errs, FieldManualIncome)
		assert.Equal(t, domain.Inconsistent, errs[FieldManualIncome].Kind)
	})

	t.Run("net only is enough", func(t *testing.T) {
		st := domain.NewApplicationState()
		st.Category = domain.Pregnant14
		st.IncomeMethod = domain.IncomeManual
		st.Manual = domain.ManualIncome{Net: decp(5500)}

		assert.True(t, ValidateStep(domain.StepIncome, st, rules).Empty())
	})

	t.Run("worker minimum checked against the estimated gross", func(t *testing.T) {
		st := domain.NewApplicationState()
		st.Category = domain.Worker
		st.IncomeMethod = domain.IncomeManual
		// 5000 / 0.9573 ≈ 5223, well below the 6247 floor.
		st.Manual = domain.ManualIncome{Net: decp(5000)}

		errs := ValidateStep(domain.StepIncome, st, rules)
		require.Contains(t, errs, FieldManualGross)
		assert.Equal(t, domain.MinimumIncomeNotMet, errs[FieldManualGross].Kind)
	})
}

func TestValidateNotWorkingNeedsNothing(t *testing.T) {
	st := domain.NewApplicationState()
	st.Category = domain.Pregnant14
	st.IncomeMethod = domain.IncomeNotWork

	assert.True(t, ValidateStep(domain.StepIncome, st, domain.DefaultRules()).Empty())
}

func TestValidateExtras(t *testing.T) {
	rules := domain.DefaultRules()

	t.Run("empty extras pass", func(t *testing.T) {
		st := domain.NewApplicationState()
		assert.True(t, ValidateStep(domain.StepExtras, st, rules).Empty())
	})

	t.Run("savings above the cap are rejected", func(t *testing.T) {
		st := domain.NewApplicationState()
		st.Savings = decp(1500000)

		errs := ValidateStep(domain.StepExtras, st, rules)
		require.Contains(t, errs, FieldSavings)
		assert.Equal(t, domain.OutOfRange, errs[FieldSavings].Kind)
	})

	t.Run("vehicle ownership requires a value", func(t *testing.T) {
		st := domain.NewApplicationState()
		st.HasCar = true

		errs := ValidateStep(domain.StepExtras, st, rules)
		require.Contains(t, errs, FieldCarValue)
		assert.Equal(t, domain.MissingRequired, errs[FieldCarValue].Kind)
	})

	t.Run("disqualifying vehicle value is still valid input", func(t *testing.T) {
		st := domain.NewApplicationState()
		st.HasCar = true
		st.CarValue = decp(99000)

		assert.True(t, ValidateStep(domain.StepExtras, st, rules).Empty())
	})

	t.Run("negative vehicle value is rejected", func(t *testing.T) {
		st := domain.NewApplicationState()
		st.HasCar = true
		st.CarValue = decp(-1)

		errs := ValidateStep(domain.StepExtras, st, rules)
		require.Contains(t, errs, FieldCarValue)
		assert.Equal(t, domain.OutOfRange, errs[FieldCarValue].Kind)
	})
}
