package compare

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliffscope/cliffscope/internal/config"
	"github.com/cliffscope/cliffscope/internal/domain"
)

func singleParentHousehold(wages domain.Cents) *domain.HouseholdInput {
	return &domain.HouseholdInput{
		Wages:              wages,
		Adults:             1,
		Children:           1,
		QualifyingChildren: 1,
		MonthlyShelterCost: 80000,
		MonthlyUtilityCost: 20000,
		FilingStatus:       domain.FilingHeadOfHousehold,
		TaxYear:            2024,
		StateCode:          "PA",
	}
}

func TestCompareIdenticalScenarios(t *testing.T) {
	engine := NewEngine(config.DefaultRules())

	input := singleParentHousehold(2400000)
	cmp, err := engine.Compare(context.Background(), input, input)
	require.NoError(t, err)

	assert.Equal(t, domain.Cents(0), cmp.WageIncrease)
	assert.Equal(t, domain.Cents(0), cmp.NetIncomeChange)
	assert.False(t, cmp.IsCliff)
	assert.Equal(t, SeverityNone, cmp.Severity)
	assert.Empty(t, cmp.Warnings)
	assert.Empty(t, cmp.Recommendations)
	for _, impact := range cmp.ProgramImpacts {
		assert.Equal(t, domain.Cents(0), impact.Delta,
			"%s: identical scenarios have no delta", impact.Program)
	}
}

func TestCompareDetectsBenefitCliff(t *testing.T) {
	engine := NewEngine(config.DefaultRules())

	// A $6,000 raise pushes the adult past the Medicaid expansion
	// threshold and shrinks SNAP; the combined loss exceeds the gain.
	current := singleParentHousehold(2400000)  // $24,000
	proposed := singleParentHousehold(3000000) // $30,000

	cmp, err := engine.Compare(context.Background(), current, proposed)
	require.NoError(t, err)

	assert.Equal(t, domain.Cents(600000), cmp.WageIncrease)
	assert.True(t, cmp.WageIncreasePercent.Equal(domain.MustDecimal("25")))
	assert.Equal(t, domain.Cents(-156000), cmp.NetIncomeChange,
		"the household ends up $1,560 behind")
	assert.True(t, cmp.IsCliff)
	assert.Equal(t, SeverityModerate, cmp.Severity,
		"a $1,560 loss on a $6,000 raise grades moderate")

	impactFor := func(id domain.Program) ProgramImpact {
		for _, impact := range cmp.ProgramImpacts {
			if impact.Program == id {
				return impact
			}
		}
		t.Fatalf("no impact row for %s", id)
		return ProgramImpact{}
	}

	snap := impactFor(domain.ProgramSNAP)
	assert.Equal(t, domain.Cents(20800), snap.CurrentMonthly)
	assert.Equal(t, domain.Cents(2800), snap.ProposedMonthly)
	assert.Equal(t, domain.Cents(-18000), snap.Delta)

	medicaid := impactFor(domain.ProgramMedicaid)
	assert.Equal(t, domain.Cents(90000), medicaid.CurrentMonthly)
	assert.Equal(t, domain.Cents(45000), medicaid.ProposedMonthly,
		"the child stays covered after the adult drops off")

	assert.Contains(t, cmp.Warnings, warningMessages[TriggerMedicaidReduced])
	assert.Contains(t, cmp.Warnings, warningMessages[TriggerSNAPReduced])
	assert.Contains(t, cmp.Warnings, warningMessages[TriggerEITCReduced])
	assert.Contains(t, cmp.Warnings, warningMessages[TriggerNetLoss])
	assert.Contains(t, cmp.Recommendations, recommendationMessages[TriggerNetLoss])
}

func TestCompareNetGain(t *testing.T) {
	engine := NewEngine(config.DefaultRules())

	current := &domain.HouseholdInput{
		Wages:        10000000, // $100,000, past every benefit program
		Adults:       1,
		FilingStatus: domain.FilingSingle,
		TaxYear:      2024,
		StateCode:    "PA",
	}
	proposed := &domain.HouseholdInput{
		Wages:        11000000,
		Adults:       1,
		FilingStatus: domain.FilingSingle,
		TaxYear:      2024,
		StateCode:    "PA",
	}

	cmp, err := engine.Compare(context.Background(), current, proposed)
	require.NoError(t, err)

	assert.Greater(t, cmp.NetIncomeChange, domain.Cents(0))
	assert.False(t, cmp.IsCliff)
	assert.Equal(t, SeverityNone, cmp.Severity)
	assert.Empty(t, cmp.Warnings)
	assert.Contains(t, cmp.Recommendations, recommendationMessages[TriggerNetGain])
}

func TestComparePropagatesEvaluationErrors(t *testing.T) {
	engine := NewEngine(config.DefaultRules())

	current := singleParentHousehold(2400000)
	proposed := singleParentHousehold(3000000)
	proposed.StateCode = "TX"

	_, err := engine.Compare(context.Background(), current, proposed)
	assert.True(t, domain.IsCode(err, domain.ErrCodeUnsupportedState), "got %v", err)
}

func TestClassifySeverity(t *testing.T) {
	engine := NewEngine(config.DefaultRules())

	tests := []struct {
		name         string
		wageIncrease domain.Cents
		netChange    domain.Cents
		expected     Severity
	}{
		{"net gain", 600000, 50000, SeverityNone},
		{"break even", 600000, 0, SeverityNone},
		{"small loss relative to the raise", 1000000, -50000, SeverityMinor},
		{"moderate loss", 600000, -120000, SeverityModerate},
		{"loss ratio above the moderate cutoff", 500000, -250000, SeveritySevere},
		{"absolute loss above the severe floor", 5000000, -350000, SeveritySevere},
		{"loss with no wage gain", 0, -50000, SeverityModerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.classifySeverity(tt.wageIncrease, tt.netChange)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClassifySeverityIsMonotonicInLoss(t *testing.T) {
	engine := NewEngine(config.DefaultRules())

	rank := map[Severity]int{
		SeverityNone:     0,
		SeverityMinor:    1,
		SeverityModerate: 2,
		SeveritySevere:   3,
	}

	wage := domain.Cents(600000)
	prev := SeverityNone
	for loss := domain.Cents(0); loss <= 400000; loss += 10000 {
		got := engine.classifySeverity(wage, -loss)
		assert.GreaterOrEqual(t, rank[got], rank[prev],
			"severity must not decrease as the loss grows (at %s)", loss)
		prev = got
	}
}

func TestDetectTriggersEligibilityFlips(t *testing.T) {
	eligible := func(p domain.Program, monthly domain.Cents) domain.ProgramEligibility {
		return domain.ProgramEligibility{Program: p, Eligible: true, MonthlyAmount: monthly, AnnualAmount: monthly.Annual()}
	}
	ineligible := func(p domain.Program) domain.ProgramEligibility {
		return domain.ProgramEligibility{Program: p}
	}

	cmp := &CliffComparison{
		Current: ScenarioResult{
			Tax: &domain.TaxResult{EITC: 200000},
			Programs: []domain.ProgramEligibility{
				eligible(domain.ProgramSNAP, 20000),
				eligible(domain.ProgramTANF, 15000),
				eligible(domain.ProgramSSI, 50000),
				eligible(domain.ProgramMedicaid, 45000),
			},
		},
		Proposed: ScenarioResult{
			Tax: &domain.TaxResult{EITC: 0},
			Programs: []domain.ProgramEligibility{
				ineligible(domain.ProgramSNAP),
				ineligible(domain.ProgramTANF),
				eligible(domain.ProgramSSI, 30000),
				ineligible(domain.ProgramMedicaid),
			},
		},
		WageIncrease:    600000,
		NetIncomeChange: -500000,
	}

	fired := detectTriggers(cmp)

	assert.Contains(t, fired, TriggerMedicaidLost)
	assert.Contains(t, fired, TriggerSNAPZeroed)
	assert.Contains(t, fired, TriggerTANFLost)
	assert.Contains(t, fired, TriggerSSIReduced)
	assert.Contains(t, fired, TriggerEITCPhasedOut)
	assert.Contains(t, fired, TriggerNetLoss)
	assert.NotContains(t, fired, TriggerSNAPReduced,
		"a zeroed benefit is not also reported as reduced")
	assert.NotContains(t, fired, TriggerNetGain)

	warnings, recommendations := renderMessages(fired)
	assert.Len(t, warnings, 6)
	assert.Contains(t, recommendations, recommendationMessages[TriggerMedicaidLost])
	assert.Contains(t, recommendations, recommendationMessages[TriggerSNAPZeroed])
}
