package benefits

import (
	"github.com/shopspring/decimal"

	"github.com/cliffscope/cliffscope/internal/domain"
)

// evaluateMedicaid runs the MAGI-to-FPL percentage tests per member
// category. The determination itself is boolean; the monthly amount is the
// injected coverage valuation for each covered member, which lets the cliff
// engine monetize a coverage loss without changing the eligibility
// semantics.
func evaluateMedicaid(input *domain.HouseholdInput, rules domain.MedicaidRules, fpl decimal.Decimal) domain.ProgramEligibility {
	if fpl.LessThanOrEqual(decimal.Zero) {
		return determination(domain.ProgramMedicaid, false, decimal.Zero)
	}
	magiFraction := input.GrossIncome().Dollars().Div(fpl)

	adultLimit := rules.AdultFPL
	if input.IsPregnant && rules.PregnantFPL.GreaterThan(adultLimit) {
		adultLimit = rules.PregnantFPL
	}

	covered := 0
	if magiFraction.LessThanOrEqual(adultLimit) {
		covered += input.Adults
	}
	if magiFraction.LessThanOrEqual(rules.ChildFPL) {
		covered += input.Children
	}
	if covered == 0 {
		return determination(domain.ProgramMedicaid, false, decimal.Zero)
	}
	value := rules.MonthlyValuePerPerson.Mul(decimal.NewFromInt(int64(covered)))
	return determination(domain.ProgramMedicaid, true, value)
}
