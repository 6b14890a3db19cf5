package benefits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliffscope/cliffscope/internal/config"
	"github.com/cliffscope/cliffscope/internal/domain"
)

func ssiRules2024(t *testing.T) domain.SSIRules {
	t.Helper()
	rules, err := config.DefaultRules().SSIForYear(2024)
	require.NoError(t, err)
	return rules
}

func TestEvaluateSSI(t *testing.T) {
	rules := ssiRules2024(t)

	tests := []struct {
		name            string
		input           domain.HouseholdInput
		expectEligible  bool
		expectedMonthly domain.Cents
	}{
		{
			name: "no elderly or disabled member",
			input: domain.HouseholdInput{
				Adults: 1,
			},
			expectEligible: false,
		},
		{
			name: "individual with no income",
			input: domain.HouseholdInput{
				Adults:               1,
				HasElderlyOrDisabled: true,
			},
			expectEligible:  true,
			expectedMonthly: 94300, // full federal benefit rate
		},
		{
			name: "couple with no income",
			input: domain.HouseholdInput{
				Adults:               2,
				HasElderlyOrDisabled: true,
			},
			expectEligible:  true,
			expectedMonthly: 141500,
		},
		{
			name: "earned income disregards",
			input: domain.HouseholdInput{
				Wages:                1302000, // $1,085/mo
				Adults:               1,
				HasElderlyOrDisabled: true,
			},
			// Countable: (1085 - 20 general - 65 earned) / 2 = $500.
			expectEligible:  true,
			expectedMonthly: 44300,
		},
		{
			name: "unearned income uses the general disregard first",
			input: domain.HouseholdInput{
				UnearnedIncome:       624000, // $520/mo
				Adults:               1,
				HasElderlyOrDisabled: true,
			},
			// Countable: 520 - 20 = $500.
			expectEligible:  true,
			expectedMonthly: 44300,
		},
		{
			name: "assets over the individual limit",
			input: domain.HouseholdInput{
				Adults:               1,
				HasElderlyOrDisabled: true,
				AssetValue:           250000, // $2,500 against a $2,000 limit
			},
			expectEligible: false,
		},
		{
			name: "couple asset limit is higher",
			input: domain.HouseholdInput{
				Adults:               2,
				HasElderlyOrDisabled: true,
				AssetValue:           250000, // under the $3,000 couple limit
			},
			expectEligible:  true,
			expectedMonthly: 141500,
		},
		{
			name: "income fully offsets the benefit",
			input: domain.HouseholdInput{
				Wages:                2400000, // $2,000/mo, countable $957.50
				UnearnedIncome:       1200000, // $1,000/mo, countable $980
				Adults:               1,
				HasElderlyOrDisabled: true,
			},
			expectEligible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := evaluateSSI(&tt.input, rules)

			assert.Equal(t, domain.ProgramSSI, result.Program)
			assert.Equal(t, tt.expectEligible, result.Eligible)
			if tt.expectEligible {
				assert.Equal(t, tt.expectedMonthly, result.MonthlyAmount)
			} else {
				assert.Equal(t, domain.Cents(0), result.MonthlyAmount)
				assert.Equal(t, domain.Cents(0), result.AnnualAmount)
			}
		})
	}
}
