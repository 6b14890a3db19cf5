package benefits

import (
	"github.com/shopspring/decimal"

	"github.com/cliffscope/cliffscope/internal/domain"
)

// evaluateTANF compares countable income, after the state's earned-income
// disregard, against the state payment standard for the household size.
func evaluateTANF(input *domain.HouseholdInput, rules domain.TANFRules) domain.ProgramEligibility {
	// Categorical requirement: a child in the home or a pregnancy.
	if input.Children == 0 && !input.IsPregnant {
		return determination(domain.ProgramTANF, false, decimal.Zero)
	}
	if input.AssetValue.Dollars().GreaterThan(rules.AssetLimit) {
		return determination(domain.ProgramTANF, false, decimal.Zero)
	}

	earnedMonthly := monthly(input.EarnedIncome())
	unearnedMonthly := monthly(input.UnearnedIncome)
	one := decimal.NewFromInt(1)
	countable := unearnedMonthly.Add(earnedMonthly.Mul(one.Sub(rules.EarnedIncomeDisregard)))

	standard := rules.PaymentStandardForSize(input.Size())
	benefit := decimal.Max(standard.Sub(countable), decimal.Zero)
	if benefit.IsZero() {
		return determination(domain.ProgramTANF, false, decimal.Zero)
	}
	return determination(domain.ProgramTANF, true, benefit.Round(2))
}
