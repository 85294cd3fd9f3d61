package wizard

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ch8101040/tashmash/internal/domain"
	"github.com/ch8101040/tashmash/internal/validation"
)

func decp(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func TestMachineHappyPath(t *testing.T) {
	m := New(domain.DefaultRules())
	require.Equal(t, domain.StepCategory, m.Step())

	m.SelectCategory(domain.Pregnant14)
	require.True(t, m.Advance())
	require.Equal(t, domain.StepIncome, m.Step())

	m.SetIncomeMethod(domain.IncomeManual)
	m.SetManualGross(decp(6000))
	m.SetManualNet(decp(5500))
	require.True(t, m.Advance())
	require.Equal(t, domain.StepExtras, m.Step())

	require.True(t, m.Advance())
	require.Equal(t, domain.StepResults, m.Step())

	result := m.Result()
	require.NotNil(t, result)
	assert.True(t, result.Eligible)
	assert.Equal(t, int64(1813), result.Amount.IntPart())
}

func TestMachineBlocksInvalidStep(t *testing.T) {
	m := New(domain.DefaultRules())
	m.SelectCategory(domain.Pregnant14)
	require.True(t, m.Advance())

	// No income method chosen yet.
	assert.False(t, m.Advance())
	assert.Equal(t, domain.StepIncome, m.Step())
	assert.Contains(t, m.State().Errors, validation.FieldIncomeMethod)

	m.SetIncomeMethod(domain.IncomeNotWork)
	assert.True(t, m.Advance())
}

func TestMachineCannotAdvancePastResults(t *testing.T) {
	m := New(domain.DefaultRules())
	m.SelectCategory(domain.Pregnant14)
	m.SetIncomeMethod(domain.IncomeNotWork)
	require.True(t, m.Advance())
	require.True(t, m.Advance())
	require.True(t, m.Advance())
	require.Equal(t, domain.StepResults, m.Step())

	assert.False(t, m.Advance())
	assert.Equal(t, domain.StepResults, m.Step())
}

func TestMachineBackAndGoTo(t *testing.T) {
	m := New(domain.DefaultRules())
	m.SelectCategory(domain.Pregnant14)
	m.SetIncomeMethod(domain.IncomeNotWork)
	require.True(t, m.Advance())
	require.True(t, m.Advance())
	require.Equal(t, domain.StepExtras, m.Step())

	m.Back()
	assert.Equal(t, domain.StepIncome, m.Step())

	// Forward jumps are refused, backward jumps allowed.
	assert.False(t, m.GoTo(domain.StepResults))
	assert.True(t, m.GoTo(domain.StepCategory))
	assert.Equal(t, domain.StepCategory, m.Step())

	m.Back()
	assert.Equal(t, domain.StepCategory, m.Step())
}

func TestMachineSwitchingMethodClearsOtherFields(t *testing.T) {
	m := New(domain.DefaultRules())
	m.SelectCategory(domain.Pregnant14)

	m.SetIncomeMethod(domain.IncomePayslips)
	m.SetSlip(0, domain.SalarySlip{Gross: decp(6000)})
	require.True(t, m.State().Slips[0].HasGross())

	m.SetIncomeMethod(domain.IncomeManual)
	assert.False(t, m.State().Slips[0].HasGross())

	m.SetManualGross(decp(6000))
	m.SetIncomeMethod(domain.IncomePayslips)
	assert.Nil(t, m.State().Manual.Gross)
}

func TestMachineDroppingCarClearsValue(t *testing.T) {
	m := New(domain.DefaultRules())
	m.SetHasCar(true)
	m.SetCarValue(decp(30000))
	require.NotNil(t, m.State().CarValue)

	m.SetHasCar(false)
	assert.Nil(t, m.State().CarValue)
}

func TestMachineInterimFollowsInput(t *testing.T) {
	m := New(domain.DefaultRules())
	assert.Nil(t, m.Interim())

	m.SelectCategory(domain.Pregnant14)
	assert.Nil(t, m.Interim(), "no income signal yet")

	m.SetIncomeMethod(domain.IncomeManual)
	assert.Nil(t, m.Interim(), "method alone is not a signal")

	m.SetManualNet(decp(5500))
	interim := m.Interim()
	require.NotNil(t, interim)
	assert.True(t, interim.Eligible)
}

func TestMachineMutationInvalidatesResult(t *testing.T) {
	m := New(domain.DefaultRules())
	m.SelectCategory(domain.Pregnant14)
	m.SetIncomeMethod(domain.IncomeManual)
	m.SetManualGross(decp(6000))
	m.SetManualNet(decp(5500))
	require.True(t, m.Advance())
	require.True(t, m.Advance())
	require.NotNil(t, m.Result())

	m.GoTo(domain.StepExtras)
	m.SetSavings(decp(50000))
	assert.Nil(t, m.Result())
}

func TestMachineResetStartsOver(t *testing.T) {
	m := New(domain.DefaultRules())
	m.SelectCategory(domain.Worker)
	m.SetIncomeMethod(domain.IncomeManual)
	m.SetManualGross(decp(6500))

	m.Reset()
	assert.Equal(t, domain.StepCategory, m.Step())
	assert.Equal(t, domain.ApplicantCategory(""), m.State().Category)
	assert.Nil(t, m.Interim())
}

func TestComputeFinalMatchesWizardResult(t *testing.T) {
	rules := domain.DefaultRules()

	m := New(rules)
	m.SelectCategory(domain.Worker)
	m.SetIncomeMethod(domain.IncomeManual)
	m.SetManualGross(decp(6500))
	m.SetManualNet(decp(5800))
	m.SetSavings(decp(49950))
	require.True(t, m.Advance())
	require.True(t, m.Advance())

	direct, errs := ComputeFinal(m.State(), rules)
	require.True(t, errs.Empty())
	assert.True(t, m.Result().Equal(direct))
}

func TestComputeFinalReportsErrorsFromBothSteps(t *testing.T) {
	rules := domain.DefaultRules()

	st := domain.NewApplicationState()
	st.Category = domain.Pregnant14
	st.HasCar = true

	result, errs := ComputeFinal(st, rules)
	assert.Nil(t, result)
	assert.Contains(t, errs, validation.FieldIncomeMethod)
	assert.Contains(t, errs, validation.FieldCarValue)
}
