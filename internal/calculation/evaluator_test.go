package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ch8101040/tashmash/internal/domain"
)

func manualState(c domain.ApplicantCategory, gross, net float64) *domain.ApplicationState {
	st := domain.NewApplicationState()
	st.Category = c
	st.IncomeMethod = domain.IncomeManual
	st.Manual = domain.ManualIncome{Gross: decp(gross), Net: decp(net)}
	return st
}

func notWorkingState(c domain.ApplicantCategory) *domain.ApplicationState {
	st := domain.NewApplicationState()
	st.Category = c
	st.IncomeMethod = domain.IncomeNotWork
	return st
}

func TestEvaluateBracketCategory(t *testing.T) {
	rules := domain.DefaultRules()

	tests := []struct {
		name           string
		gross          float64
		savings        float64
		expectEligible bool
		expectedAmount int64
	}{
		{"first bracket pays the full ceiling", 6000, 0, true, 6655},
		{"second bracket pays 66 percent", 7500, 0, true, 4392},
		{"third bracket pays half", 9000, 0, true, 3328},
		{"fourth bracket pays a third", 11000, 0, true, 2196},
		{"above the top breakpoint pays nothing", 12000, 0, false, 0},
		{"savings addition pushes gross into the next bracket", 6500, 192000, true, 4392},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := manualState(domain.MotherOrPregnant32, tt.gross, tt.gross*0.9)
			if tt.savings > 0 {
				st.Savings = decp(tt.savings)
			}
			result := Evaluate(st, rules)
			assert.Equal(t, tt.expectEligible, result.Eligible)
			assert.Equal(t, tt.expectedAmount, result.Amount.IntPart(),
				"expected %d, got %s", tt.expectedAmount, result.Amount)
		})
	}
}

// The bracket table replaces the general gross ceiling for its category:
// gross income above 6655 still pays a partial rate instead of dropping to
// zero the way every other category does.
func TestEvaluateBracketCategorySkipsGeneralCeiling(t *testing.T) {
	rules := domain.DefaultRules()

	mother := Evaluate(manualState(domain.MotherOrPregnant32, 7500, 6800), rules)
	assert.True(t, mother.Eligible)

	other := Evaluate(manualState(domain.Pregnant14, 7500, 6800), rules)
	assert.False(t, other.Eligible)
}

func TestEvaluateStandardFormula(t *testing.T) {
	rules := domain.DefaultRules()

	// (5500 - 484) * 0.7 = 3511.2; 5324 - 3511.2 = 1812.8 rounds to 1813.
	result := Evaluate(manualState(domain.Pregnant14, 6000, 5500), rules)
	assert.True(t, result.Eligible)
	assert.Equal(t, int64(1813), result.Amount.IntPart())
	assert.Equal(t, MethodStandardFormula, result.Method)
	assert.True(t, result.Details.Deduction.Equal(decimal.NewFromFloat(3511.2)))
}

func TestEvaluateStandardFormulaWithSavings(t *testing.T) {
	rules := domain.DefaultRules()

	// Savings 49950 add floor(7950/150) = 53 to net: 5800 + 53 = 5853.
	// (5853 - 484) * 0.7 = 3758.3; 5324 - 3758.3 = 1565.7 rounds to 1566.
	st := manualState(domain.Worker, 6500, 5800)
	st.Savings = decp(49950)
	result := Evaluate(st, rules)
	assert.True(t, result.Eligible)
	assert.Equal(t, int64(1566), result.Amount.IntPart())
	assert.True(t, result.Details.SavingsAddition.Equal(decimal.NewFromInt(53)))
	assert.NotEmpty(t, result.Reasons)
}

func TestEvaluateGrossCeiling(t *testing.T) {
	rules := domain.DefaultRules()

	t.Run("above the ceiling disqualifies", func(t *testing.T) {
		result := Evaluate(manualState(domain.Pregnant14, 7000, 6400), rules)
		assert.False(t, result.Eligible)
		assert.True(t, result.Amount.IsZero())
		require.Len(t, result.Reasons, 1)
	})

	t.Run("exactly at the ceiling qualifies", func(t *testing.T) {
		result := Evaluate(manualState(domain.Pregnant14, 6655, 5000), rules)
		assert.True(t, result.Eligible)
		assert.Equal(t, int64(2163), result.Amount.IntPart())
	})
}

func TestEvaluateWorkerMinimumIncome(t *testing.T) {
	rules := domain.DefaultRules()

	t.Run("below the minimum disqualifies", func(t *testing.T) {
		result := Evaluate(manualState(domain.Worker, 6000, 5500), rules)
		assert.False(t, result.Eligible)
		assert.Equal(t, MethodNoEligibility, result.Method)
	})

	t.Run("minimum applies only to the working track", func(t *testing.T) {
		result := Evaluate(manualState(domain.Pregnant14, 6000, 5500), rules)
		assert.True(t, result.Eligible)
	})
}

func TestEvaluateStudentFloors(t *testing.T) {
	rules := domain.DefaultRules()

	t.Run("income at the quarter floor grants the full ceiling", func(t *testing.T) {
		result := Evaluate(manualState(domain.Student30Plus, 1300, 1248), rules)
		assert.True(t, result.Eligible)
		assert.Equal(t, int64(4992), result.Amount.IntPart())
		assert.NotEqual(t, MethodStandardFormula, result.Method)
	})

	t.Run("one shekel over the floor falls back to the formula", func(t *testing.T) {
		result := Evaluate(manualState(domain.Student30Plus, 1300, 1249), rules)
		assert.True(t, result.Eligible)
		// (1249 - 484) * 0.7 = 535.5; 4992 - 535.5 = 4456.5 rounds to 4457.
		assert.Equal(t, int64(4457), result.Amount.IntPart())
		assert.Equal(t, MethodStandardFormula, result.Method)
	})

	t.Run("half floor for the lighter study load", func(t *testing.T) {
		result := Evaluate(manualState(domain.StudentUnder30, 1700, 1664), rules)
		assert.True(t, result.Eligible)
		assert.Equal(t, int64(3328), result.Amount.IntPart())
	})
}

func TestEvaluateStudentMarriageGate(t *testing.T) {
	rules := domain.DefaultRules()
	no := false
	yes := true

	t.Run("married before end of first year disqualifies", func(t *testing.T) {
		st := manualState(domain.Student30Plus, 1300, 1248)
		st.MarriedAfterFirstYear = &no
		result := Evaluate(st, rules)
		assert.False(t, result.Eligible)
	})

	t.Run("married after first year keeps eligibility", func(t *testing.T) {
		st := manualState(domain.Student30Plus, 1300, 1248)
		st.MarriedAfterFirstYear = &yes
		result := Evaluate(st, rules)
		assert.True(t, result.Eligible)
	})

	t.Run("unanswered does not disqualify", func(t *testing.T) {
		result := Evaluate(manualState(domain.Student30Plus, 1300, 1248), rules)
		assert.True(t, result.Eligible)
	})

	t.Run("answer is ignored outside the student tracks", func(t *testing.T) {
		st := manualState(domain.Pregnant14, 6000, 5500)
		st.MarriedAfterFirstYear = &no
		result := Evaluate(st, rules)
		assert.True(t, result.Eligible)
	})
}

func TestEvaluateVehicleGate(t *testing.T) {
	rules := domain.DefaultRules()

	t.Run("value over the cap disqualifies", func(t *testing.T) {
		st := manualState(domain.Pregnant14, 6000, 5500)
		st.HasCar = true
		st.CarValue = decp(50000)
		result := Evaluate(st, rules)
		assert.False(t, result.Eligible)
	})

	t.Run("value exactly at the cap qualifies", func(t *testing.T) {
		st := manualState(domain.Pregnant14, 6000, 5500)
		st.HasCar = true
		st.CarValue = decp(44611)
		result := Evaluate(st, rules)
		assert.True(t, result.Eligible)
	})

	t.Run("ownership without a declared value does not disqualify", func(t *testing.T) {
		st := manualState(domain.Pregnant14, 6000, 5500)
		st.HasCar = true
		result := Evaluate(st, rules)
		assert.True(t, result.Eligible)
	})
}

// Rules fire in a fixed order; the first applicable one supplies the reason.
func TestEvaluateGatePrecedence(t *testing.T) {
	rules := domain.DefaultRules()
	no := false

	t.Run("marriage gate fires before the vehicle gate", func(t *testing.T) {
		st := manualState(domain.Student30Plus, 1300, 1248)
		st.MarriedAfterFirstYear = &no
		st.HasCar = true
		st.CarValue = decp(50000)
		result := Evaluate(st, rules)
		assert.False(t, result.Eligible)
		require.Len(t, result.Reasons, 1)
		assert.Contains(t, result.Reasons[0], "study year")
	})

	t.Run("vehicle gate fires before the minimum income gate", func(t *testing.T) {
		st := manualState(domain.Worker, 6000, 5500)
		st.HasCar = true
		st.CarValue = decp(50000)
		result := Evaluate(st, rules)
		assert.False(t, result.Eligible)
		require.Len(t, result.Reasons, 1)
		assert.Contains(t, result.Reasons[0], "Vehicle")
	})
}

func TestEvaluateNotWorkingGetsFullCeiling(t *testing.T) {
	// Zero income makes the deduction negative; the amount clamps at the
	// category ceiling instead of exceeding it.
	result := Evaluate(notWorkingState(domain.Pregnant14), domain.DefaultRules())
	assert.True(t, result.Eligible)
	assert.Equal(t, int64(5324), result.Amount.IntPart())
}

func TestEvaluateDeductionSwallowsCeiling(t *testing.T) {
	// (8200 - 484) * 0.7 = 5401.2 exceeds the 5324 ceiling.
	result := Evaluate(manualState(domain.Pregnant14, 6000, 8200), domain.DefaultRules())
	assert.False(t, result.Eligible)
	assert.True(t, result.Amount.IsZero())
	assert.NotEmpty(t, result.Reasons)
}

func TestEvaluateWorkerWithSavingsScenario(t *testing.T) {
	// Addition floor((50000-42000)/150) = 53; adjusted net 5853;
	// (5853 - 484) * 0.7 = 3758.3; 5324 - 3758.3 = 1565.7 rounds to 1566.
	st := manualState(domain.Worker, 6300, 5800)
	st.Savings = decp(50000)
	result := Evaluate(st, domain.DefaultRules())
	assert.True(t, result.Eligible)
	assert.Equal(t, int64(1566), result.Amount.IntPart())
}

func TestEvaluateAmountWithinCeiling(t *testing.T) {
	rules := domain.DefaultRules()
	for _, c := range domain.AllCategories() {
		ceiling := rules.CeilingFor(c)
		for net := 0.0; net <= 9000; net += 750 {
			result := Evaluate(manualState(c, 6400, net), rules)
			assert.False(t, result.Amount.IsNegative(), "category %s net %v", c, net)
			assert.True(t, result.Amount.LessThanOrEqual(ceiling), "category %s net %v", c, net)
		}
	}
}

func TestEvaluateMoreSavingsNeverPaysMore(t *testing.T) {
	rules := domain.DefaultRules()
	prev := decimal.NewFromInt(1 << 30)
	for savings := 42000.0; savings <= 120000; savings += 6000 {
		st := manualState(domain.Pregnant14, 6000, 4000)
		st.Savings = decp(savings)
		result := Evaluate(st, rules)
		assert.True(t, result.Amount.LessThanOrEqual(prev),
			"amount rose to %s at savings %v", result.Amount, savings)
		prev = result.Amount
	}
}

func TestEvaluateAmountDecreasesWithNet(t *testing.T) {
	rules := domain.DefaultRules()
	prev := decimal.NewFromInt(1 << 30)
	for net := 1000.0; net <= 6500; net += 500 {
		result := Evaluate(manualState(domain.Pregnant14, 6500, net), rules)
		assert.True(t, result.Amount.LessThanOrEqual(prev),
			"amount rose from %s to %s at net %v", prev, result.Amount, net)
		prev = result.Amount
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	rules := domain.DefaultRules()
	st := manualState(domain.Worker, 6500, 5800)
	st.Savings = decp(49950)

	first := Evaluate(st, rules)
	second := Evaluate(st, rules)
	assert.True(t, first.Equal(second))
}
