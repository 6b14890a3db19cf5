package benefits

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliffscope/cliffscope/internal/config"
	"github.com/cliffscope/cliffscope/internal/domain"
)

func TestEvaluateMedicaid(t *testing.T) {
	rules := config.DefaultRules()
	fplFor := func(size int) decimal.Decimal {
		fpl, err := rules.PovertyLevel(2024, size)
		require.NoError(t, err)
		return fpl
	}

	tests := []struct {
		name            string
		input           domain.HouseholdInput
		expectEligible  bool
		expectedMonthly domain.Cents
	}{
		{
			name: "single adult under the expansion threshold",
			input: domain.HouseholdInput{
				Wages:  2000000, // 132.8% of the single-person FPL
				Adults: 1,
			},
			expectEligible:  true,
			expectedMonthly: 45000,
		},
		{
			name: "single adult just over the threshold",
			input: domain.HouseholdInput{
				Wages:  2100000, // 139.4% FPL
				Adults: 1,
			},
			expectEligible: false,
		},
		{
			name: "pregnancy raises the adult threshold",
			input: domain.HouseholdInput{
				Wages:      3100000, // 205.8% FPL, under the 213% pregnancy limit
				Adults:     1,
				IsPregnant: true,
			},
			expectEligible:  true,
			expectedMonthly: 45000,
		},
		{
			name: "children stay covered after adults drop off",
			input: domain.HouseholdInput{
				Wages:    6000000, // 192.3% of the four-person FPL
				Adults:   2,
				Children: 2,
			},
			expectEligible:  true,
			expectedMonthly: 90000, // two covered children
		},
		{
			name: "whole family covered at low income",
			input: domain.HouseholdInput{
				Wages:    2400000, // 76.9% of the four-person FPL
				Adults:   2,
				Children: 2,
			},
			expectEligible:  true,
			expectedMonthly: 180000,
		},
		{
			name: "everyone over the child threshold",
			input: domain.HouseholdInput{
				Wages:    7000000, // 224% of the four-person FPL
				Adults:   2,
				Children: 2,
			},
			expectEligible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := evaluateMedicaid(&tt.input, rules.Medicaid, fplFor(tt.input.Size()))

			assert.Equal(t, domain.ProgramMedicaid, result.Program)
			assert.Equal(t, tt.expectEligible, result.Eligible)
			assert.Equal(t, tt.expectedMonthly, result.MonthlyAmount)
			assert.Equal(t, tt.expectedMonthly.Annual(), result.AnnualAmount)
		})
	}
}

func TestEvaluateMedicaidZeroFPL(t *testing.T) {
	input := domain.HouseholdInput{Adults: 1}
	result := evaluateMedicaid(&input, config.DefaultRules().Medicaid, decimal.Zero)
	assert.False(t, result.Eligible, "a degenerate FPL table produces no determination")
}
