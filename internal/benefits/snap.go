package benefits

import (
	"github.com/shopspring/decimal"

	"github.com/cliffscope/cliffscope/internal/domain"
)

// evaluateSNAP runs the SNAP gross-income, net-income, and allotment
// computation for one household against one year's parameters. fpl is the
// annual Federal Poverty Level in dollars for the household size.
func evaluateSNAP(input *domain.HouseholdInput, rules domain.SNAPRules, fpl decimal.Decimal) domain.ProgramEligibility {
	size := input.Size()
	fplMonthly := fpl.Div(twelve)
	grossMonthly := monthly(input.GrossIncome())
	earnedMonthly := monthly(input.EarnedIncome())

	// SSI or TANF receipt confers categorical eligibility, which waives
	// both income tests. Elderly/disabled households skip only the gross
	// test.
	categoricallyEligible := input.ReceivesSSI || input.ReceivesTANF

	if !categoricallyEligible && !input.HasElderlyOrDisabled {
		grossLimit := fplMonthly.Mul(rules.GrossIncomeLimitFPL)
		if grossMonthly.GreaterThan(grossLimit) {
			return determination(domain.ProgramSNAP, false, decimal.Zero)
		}
	}

	// Net income: gross minus the standard deduction, the earned-income
	// deduction, dependent care, medical costs above the floor for
	// elderly/disabled members, then the excess shelter deduction.
	adjusted := grossMonthly.
		Sub(rules.StandardDeductionForSize(size)).
		Sub(earnedMonthly.Mul(rules.EarnedIncomeDeduction)).
		Sub(input.MonthlyChildcareCost.Dollars())
	if input.HasElderlyOrDisabled {
		medical := decimal.Max(input.MonthlyMedicalCost.Dollars().Sub(rules.MedicalDeductionFloor), decimal.Zero)
		adjusted = adjusted.Sub(medical)
	}
	adjusted = decimal.Max(adjusted, decimal.Zero)

	shelterCost := input.MonthlyShelterCost.Dollars().Add(input.MonthlyUtilityCost.Dollars())
	excessShelter := decimal.Max(shelterCost.Sub(adjusted.Mul(rules.ShelterIncomeShare)), decimal.Zero)
	if !input.HasElderlyOrDisabled {
		excessShelter = decimal.Min(excessShelter, rules.ShelterDeductionCap)
	}
	netMonthly := decimal.Max(adjusted.Sub(excessShelter), decimal.Zero)

	if !categoricallyEligible {
		netLimit := fplMonthly.Mul(rules.NetIncomeLimitFPL)
		if netMonthly.GreaterThan(netLimit) {
			return determination(domain.ProgramSNAP, false, decimal.Zero)
		}
	}

	benefit := rules.MaxAllotmentForSize(size).Sub(netMonthly.Mul(rules.BenefitReductionRate).Round(0))
	if size <= rules.MinimumBenefitMaxSize {
		benefit = decimal.Max(benefit, rules.MinimumBenefit)
	}
	if benefit.LessThanOrEqual(decimal.Zero) {
		return determination(domain.ProgramSNAP, false, decimal.Zero)
	}
	return determination(domain.ProgramSNAP, true, benefit)
}
