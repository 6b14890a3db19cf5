package calculation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliffscope/cliffscope/internal/config"
	"github.com/cliffscope/cliffscope/internal/domain"
)

func TestEvaluateTaxSingleWageEarner(t *testing.T) {
	engine := NewEngine(config.DefaultRules())

	input := &domain.HouseholdInput{
		Wages:              4500000, // $45,000
		FederalWithholding: 400000,  // $4,000
		Adults:             1,
		FilingStatus:       domain.FilingSingle,
		TaxYear:            2024,
		StateCode:          "PA",
	}

	result, err := engine.EvaluateTax(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, domain.Cents(4500000), result.TotalIncome)
	assert.Equal(t, domain.Cents(4500000), result.AGI)
	assert.Equal(t, domain.Cents(1460000), result.Deduction)
	assert.Equal(t, domain.DeductionStandard, result.DeductionKind)
	assert.Equal(t, domain.Cents(3040000), result.TaxableIncome)
	assert.Equal(t, domain.Cents(341600), result.TaxBeforeCredits,
		"tax before credits should be $3,416.00")
	assert.True(t, result.MarginalRate.Equal(decimal.RequireFromString("0.12")))
	assert.Equal(t, domain.Cents(0), result.EITC, "45k single childless is past the EITC ceiling")
	assert.Equal(t, domain.Cents(0), result.CTC)
	assert.Equal(t, domain.Cents(341600), result.TotalTax)
	assert.Equal(t, domain.Cents(400000-341600), result.RefundOrOwed,
		"withholding above liability should produce a refund")
}

func TestEvaluateTaxJointFamilyWithChildren(t *testing.T) {
	engine := NewEngine(config.DefaultRules())

	input := &domain.HouseholdInput{
		Wages:              4000000, // $40,000
		Adults:             2,
		Children:           2,
		QualifyingChildren: 2,
		FilingStatus:       domain.FilingMarriedFilingJointly,
		TaxYear:            2024,
		StateCode:          "PA",
	}

	result, err := engine.EvaluateTax(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, domain.Cents(1080000), result.TaxableIncome)
	assert.Equal(t, domain.Cents(108000), result.TaxBeforeCredits)
	assert.Equal(t, domain.Cents(477818), result.EITC, "EITC in phase-out should be $4,778.18")
	assert.Equal(t, domain.Cents(400000), result.CTC)
	assert.Equal(t, domain.Cents(292000), result.AdditionalCTC,
		"the liability absorbs $1,080; the rest is refundable")
	assert.Equal(t, domain.Cents(0), result.TotalTax,
		"the nonrefundable CTC share wipes out the bracket tax")
	assert.Equal(t, domain.Cents(477818+292000), result.RefundOrOwed)
	assert.Equal(t, result.EITC+result.AdditionalCTC+result.EducationCredits.Refundable,
		result.RefundableCredits())
}

func TestEvaluateTaxSelfEmployment(t *testing.T) {
	engine := NewEngine(config.DefaultRules())

	input := &domain.HouseholdInput{
		SelfEmploymentGross: 3000000, // $30,000
		BusinessExpenses:    1000000, // $10,000
		Adults:              1,
		FilingStatus:        domain.FilingSingle,
		TaxYear:             2024,
		StateCode:           "PA",
	}

	result, err := engine.EvaluateTax(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, domain.Cents(2000000), result.SelfEmployment.NetProfit)
	assert.Equal(t, domain.Cents(1847000), result.SelfEmployment.NetEarnings,
		"net earnings should be 92.35 percent of profit")
	assert.Equal(t, domain.Cents(282591), result.SelfEmployment.Tax)
	assert.Equal(t, domain.Cents(141296), result.SelfEmployment.DeductiblePortion)
	assert.Equal(t, domain.Cents(1858704), result.AGI,
		"AGI is profit minus half the SE tax")
	assert.Equal(t, domain.Cents(398704), result.TaxableIncome)
	assert.Equal(t, domain.Cents(39870), result.TaxBeforeCredits)
	assert.Equal(t, domain.Cents(39870+282591), result.TotalTax,
		"total tax includes the SE tax")
}

func TestEvaluateTaxBusinessLossReducesTotalIncome(t *testing.T) {
	engine := NewEngine(config.DefaultRules())

	input := &domain.HouseholdInput{
		Wages:               3000000,
		SelfEmploymentGross: 500000,
		BusinessExpenses:    900000,
		Adults:              1,
		FilingStatus:        domain.FilingSingle,
		TaxYear:             2024,
		StateCode:           "PA",
	}

	result, err := engine.EvaluateTax(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, domain.Cents(2600000), result.TotalIncome,
		"the Schedule C loss offsets wages")
	assert.Equal(t, domain.Cents(0), result.SelfEmployment.Tax)
	assert.Equal(t, result.TotalIncome, result.AGI)
}

func TestEvaluateTaxItemizedDeduction(t *testing.T) {
	engine := NewEngine(config.DefaultRules())

	input := &domain.HouseholdInput{
		Wages:              4500000,
		ItemizedDeductions: 1600000,
		Adults:             1,
		FilingStatus:       domain.FilingSingle,
		TaxYear:            2024,
		StateCode:          "PA",
	}

	result, err := engine.EvaluateTax(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, domain.Cents(1600000), result.Deduction)
	assert.Equal(t, domain.DeductionItemized, result.DeductionKind)
}

func TestEvaluateTaxDeductionNeverDrivesTaxableBelowZero(t *testing.T) {
	engine := NewEngine(config.DefaultRules())

	input := &domain.HouseholdInput{
		Wages:        800000, // $8,000, below the standard deduction
		Adults:       1,
		FilingStatus: domain.FilingSingle,
		TaxYear:      2024,
		StateCode:    "PA",
	}

	result, err := engine.EvaluateTax(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, domain.Cents(0), result.TaxableIncome)
	assert.Equal(t, domain.Cents(0), result.TaxBeforeCredits)
	assert.True(t, result.MarginalRate.IsZero())
}

func TestEvaluateTaxErrors(t *testing.T) {
	engine := NewEngine(config.DefaultRules())

	base := func() *domain.HouseholdInput {
		return &domain.HouseholdInput{
			Wages:        4500000,
			Adults:       1,
			FilingStatus: domain.FilingSingle,
			TaxYear:      2024,
			StateCode:    "PA",
		}
	}

	t.Run("negative wages", func(t *testing.T) {
		input := base()
		input.Wages = -1
		_, err := engine.EvaluateTax(context.Background(), input)
		assert.True(t, domain.IsCode(err, domain.ErrCodeInvalidInput), "got %v", err)
	})

	t.Run("empty household", func(t *testing.T) {
		input := base()
		input.Adults = 0
		_, err := engine.EvaluateTax(context.Background(), input)
		assert.True(t, domain.IsCode(err, domain.ErrCodeInvalidInput), "got %v", err)
	})

	t.Run("unsupported tax year", func(t *testing.T) {
		input := base()
		input.TaxYear = 2031
		_, err := engine.EvaluateTax(context.Background(), input)
		assert.True(t, domain.IsCode(err, domain.ErrCodeUnsupportedYear), "got %v", err)
	})

	t.Run("expired deadline maps to computation timeout", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), -time.Millisecond)
		defer cancel()
		_, err := engine.EvaluateTax(ctx, base())
		assert.True(t, domain.IsCode(err, domain.ErrCodeComputationTimeout), "got %v", err)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})

	t.Run("cancellation passes through untyped", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := engine.EvaluateTax(ctx, base())
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	})
}
