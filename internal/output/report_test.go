package output

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliffscope/cliffscope/internal/compare"
	"github.com/cliffscope/cliffscope/internal/config"
	"github.com/cliffscope/cliffscope/internal/domain"
)

func sampleComparison(t *testing.T) *compare.CliffComparison {
	t.Helper()
	engine := compare.NewEngine(config.DefaultRules())

	household := func(wages domain.Cents) *domain.HouseholdInput {
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
	cmp, err := engine.Compare(context.Background(), household(2400000), household(3000000))
	require.NoError(t, err)
	return cmp
}

func TestJSONFormatter(t *testing.T) {
	cmp := sampleComparison(t)

	compact, err := (&JSONFormatter{}).Format(cmp)
	require.NoError(t, err)
	pretty, err := (&JSONFormatter{Pretty: true}).Format(cmp)
	require.NoError(t, err)

	assert.Greater(t, len(pretty), len(compact))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(compact), &decoded))
	assert.Contains(t, decoded, "isCliff")
	assert.Contains(t, decoded, "programImpacts")
	assert.Equal(t, true, decoded["isCliff"])
}

func TestTableFormatterTaxResult(t *testing.T) {
	cmp := sampleComparison(t)

	out := (&TableFormatter{}).FormatTaxResult(cmp.Current.Tax)

	assert.Contains(t, out, "FEDERAL TAX SUMMARY")
	assert.Contains(t, out, "Tax year: 2024")
	assert.Contains(t, out, "head_of_household")
	assert.Contains(t, out, "EITC")
	assert.Contains(t, out, "Refund")
}

func TestTableFormatterPrograms(t *testing.T) {
	cmp := sampleComparison(t)

	out := (&TableFormatter{}).FormatPrograms(cmp.Current.Programs)

	assert.Contains(t, out, "BENEFIT DETERMINATIONS")
	assert.Contains(t, out, "SNAP")
	assert.Contains(t, out, "MEDICAID")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "no")
}

func TestTableFormatterComparison(t *testing.T) {
	cmp := sampleComparison(t)

	out := (&TableFormatter{}).FormatComparison(cmp)

	assert.Contains(t, out, "BENEFIT CLIFF COMPARISON")
	assert.Contains(t, out, "Cliff detected:    true  Severity: moderate")
	assert.Contains(t, out, "PROGRAM IMPACTS")
	assert.Contains(t, out, "WARNINGS")
	assert.Contains(t, out, "RECOMMENDATIONS")
}
