package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ch8101040/tashmash/internal/domain"
)

func TestSavingsAddition(t *testing.T) {
	rules := domain.DefaultRules()

	tests := []struct {
		name     string
		savings  float64
		expected int64
	}{
		{"below threshold", 30000, 0},
		{"exactly at threshold", 42000, 0},
		{"excess below one factor unit floors to zero", 42149, 0},
		{"one full factor unit", 42150, 1},
		{"partial unit floored", 42449, 2},
		{"large savings", 192000, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SavingsAddition(decp(tt.savings), rules)
			assert.Equal(t, tt.expected, got.IntPart())
			assert.True(t, got.Equal(got.Floor()), "addition must be a whole number")
		})
	}
}

func TestSavingsAdditionNilSavings(t *testing.T) {
	assert.True(t, SavingsAddition(nil, domain.DefaultRules()).IsZero())
}
