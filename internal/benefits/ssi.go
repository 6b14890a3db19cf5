package benefits

import (
	"github.com/shopspring/decimal"

	"github.com/cliffscope/cliffscope/internal/domain"
)

// evaluateSSI computes the federal SSI payment: the benefit rate minus
// countable income after the $20 general disregard (unearned first, the
// remainder against earned) and the $65 + 50%-of-remainder earned-income
// disregard.
func evaluateSSI(input *domain.HouseholdInput, rules domain.SSIRules) domain.ProgramEligibility {
	if !input.HasElderlyOrDisabled {
		return determination(domain.ProgramSSI, false, decimal.Zero)
	}

	couple := input.Adults >= 2
	fbr := rules.IndividualFBR
	assetLimit := rules.AssetLimitIndividual
	if couple {
		fbr = rules.CoupleFBR
		assetLimit = rules.AssetLimitCouple
	}
	if input.AssetValue.Dollars().GreaterThan(assetLimit) {
		return determination(domain.ProgramSSI, false, decimal.Zero)
	}

	earnedMonthly := monthly(input.EarnedIncome())
	unearnedMonthly := monthly(input.UnearnedIncome)

	countableUnearned := decimal.Max(unearnedMonthly.Sub(rules.GeneralDisregard), decimal.Zero)
	generalLeft := decimal.Max(rules.GeneralDisregard.Sub(unearnedMonthly), decimal.Zero)
	earnedAfterDisregards := decimal.Max(earnedMonthly.Sub(generalLeft).Sub(rules.EarnedDisregard), decimal.Zero)
	countableEarned := earnedAfterDisregards.Mul(rules.EarnedRemainderFraction)

	benefit := decimal.Max(fbr.Sub(countableUnearned).Sub(countableEarned), decimal.Zero)
	if benefit.IsZero() {
		return determination(domain.ProgramSSI, false, decimal.Zero)
	}
	return determination(domain.ProgramSSI, true, benefit.Round(2))
}
