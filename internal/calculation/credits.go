package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/cliffscope/cliffscope/internal/domain"
)

// eitcInput carries everything the EITC schedule needs.
type eitcInput struct {
	EarnedIncome     decimal.Decimal
	AGI              decimal.Decimal
	InvestmentIncome decimal.Decimal
	FilingStatus     domain.FilingStatus
	Children         int
	AllAdultsElderly bool
}

// CalculateEITC applies the phase-in/plateau/phase-out schedule. The
// phase-in runs on earned income; the phase-out runs on the greater of
// earned income and AGI, so whichever yields the lower credit governs.
// Negative intermediate values clamp to zero rather than propagating.
func (ftc *FederalTaxCalculator) CalculateEITC(in eitcInput) decimal.Decimal {
	if in.EarnedIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	rules := ftc.Rules.EITC
	if in.InvestmentIncome.GreaterThan(rules.InvestmentIncomeLimit) {
		return decimal.Zero
	}
	// Childless claimants must include a working-age adult.
	if in.Children == 0 && in.AllAdultsElderly {
		return decimal.Zero
	}
	row, ok := rules.RowFor(in.Children)
	if !ok {
		return decimal.Zero
	}

	base := decimal.Min(in.EarnedIncome, row.EarnedIncomeAmount).Mul(row.PhaseInRate)
	base = decimal.Min(base, row.MaxCredit)

	start := row.PhaseoutStart
	if in.FilingStatus.IsJoint() {
		start = row.PhaseoutStartJoint
	}
	phaseoutIncome := decimal.Max(in.EarnedIncome, in.AGI)
	if phaseoutIncome.GreaterThan(start) {
		base = base.Sub(phaseoutIncome.Sub(start).Mul(row.PhaseoutRate))
	}
	if base.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return base.Round(2)
}

// ctcResult splits the Child Tax Credit into its total and refundable parts.
type ctcResult struct {
	Total      decimal.Decimal // after phase-out, before liability limit
	Additional decimal.Decimal // refundable share
}

// CalculateCTC computes the Child Tax Credit, reducing it by the per-step
// amount for every step (or fraction of one) of AGI above the filing-status
// threshold, then derives the refundable Additional CTC from the share the
// nonrefundable liability could not absorb.
//
// remainingLiability is tax-before-credits minus the nonrefundable credits
// applied ahead of the CTC.
func (ftc *FederalTaxCalculator) CalculateCTC(agi, earnedIncome, remainingLiability decimal.Decimal, status domain.FilingStatus, children int) ctcResult {
	if children <= 0 {
		return ctcResult{Total: decimal.Zero, Additional: decimal.Zero}
	}
	rules := ftc.Rules.CTC
	kids := decimal.NewFromInt(int64(children))
	credit := rules.PerChild.Mul(kids)

	threshold := rules.PhaseoutThresholds[status]
	if agi.GreaterThan(threshold) {
		steps := agi.Sub(threshold).Div(rules.PhaseoutStep).Ceil()
		credit = credit.Sub(rules.PhaseoutPerStep.Mul(steps))
		if credit.LessThan(decimal.Zero) {
			credit = decimal.Zero
		}
	}

	used := decimal.Min(credit, decimal.Max(remainingLiability, decimal.Zero))
	unused := credit.Sub(used)

	earnedOverFloor := decimal.Max(earnedIncome.Sub(rules.RefundableEarnedFloor), decimal.Zero)
	additional := decimal.Min(unused, earnedOverFloor.Mul(rules.RefundableRate))
	additional = decimal.Min(additional, rules.RefundableCapPerChild.Mul(kids))
	if additional.LessThan(decimal.Zero) {
		additional = decimal.Zero
	}

	return ctcResult{Total: credit.Round(2), Additional: additional.Round(2)}
}

// CalculateCDCC computes the Child and Dependent Care Credit: qualifying
// expenses capped by dependent count, multiplied by a rate that slides from
// the maximum down to the minimum as AGI rises above the floor.
func (ftc *FederalTaxCalculator) CalculateCDCC(agi, careExpenses decimal.Decimal, dependents int) decimal.Decimal {
	if dependents <= 0 || careExpenses.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	rules := ftc.Rules.CDCC
	cap := rules.ExpenseCapOneDependent
	if dependents >= 2 {
		cap = rules.ExpenseCapTwoPlus
	}
	qualified := decimal.Min(careExpenses, cap)

	rate := rules.MaxRate
	if agi.GreaterThan(rules.AGIFloor) {
		steps := agi.Sub(rules.AGIFloor).Div(rules.RateStepIncome).Ceil()
		rate = rate.Sub(rules.RateStep.Mul(steps))
	}
	rate = decimal.Max(rate, rules.MinRate)

	return qualified.Mul(rate).Round(2)
}

// educationResult splits the Form 8863 credits.
type educationResult struct {
	AmericanOpportunity decimal.Decimal
	LifetimeLearning    decimal.Decimal
	Refundable          decimal.Decimal
	Nonrefundable       decimal.Decimal
}

// CalculateEducationCredits computes the American Opportunity Credit per
// student and the Lifetime Learning Credit on expenses not claimed under
// the AOC, then applies the shared linear MAGI phase-out. The phase-out
// fraction is clamped to [0,1]; at or above the upper threshold the credits
// are exactly zero.
func (ftc *FederalTaxCalculator) CalculateEducationCredits(magi, expenses decimal.Decimal, students int, status domain.FilingStatus) educationResult {
	if students <= 0 || expenses.LessThanOrEqual(decimal.Zero) {
		return educationResult{}
	}
	rules := ftc.Rules.Education

	perStudent := expenses.Div(decimal.NewFromInt(int64(students)))
	aocFirst := decimal.Min(perStudent, rules.AOCFullAmount)
	aocSecond := decimal.Min(decimal.Max(perStudent.Sub(rules.AOCFullAmount), decimal.Zero), rules.AOCPartialAmount)
	aocPerStudent := aocFirst.Add(aocSecond.Mul(rules.AOCPartialRate))
	aoc := aocPerStudent.Mul(decimal.NewFromInt(int64(students)))

	// Expenses above the AOC base go to the Lifetime Learning Credit.
	aocClaimedExpense := aocFirst.Add(aocSecond).Mul(decimal.NewFromInt(int64(students)))
	llcExpenses := decimal.Min(decimal.Max(expenses.Sub(aocClaimedExpense), decimal.Zero), rules.LLCExpenseCap)
	llc := llcExpenses.Mul(rules.LLCRate)

	lower, upper := rules.PhaseoutLower, rules.PhaseoutUpper
	if status.IsJoint() {
		lower, upper = rules.PhaseoutLowerJoint, rules.PhaseoutUpperJoint
	}
	fraction := phaseoutFraction(magi, lower, upper)
	aoc = aoc.Mul(fraction).Round(2)
	llc = llc.Mul(fraction).Round(2)

	refundable := aoc.Mul(rules.AOCRefundableFraction).Round(2)
	return educationResult{
		AmericanOpportunity: aoc,
		LifetimeLearning:    llc,
		Refundable:          refundable,
		Nonrefundable:       aoc.Sub(refundable).Add(llc),
	}
}

// phaseoutFraction is the linear credit retention factor
// (upper - magi) / (upper - lower), clamped to [0,1].
func phaseoutFraction(magi, lower, upper decimal.Decimal) decimal.Decimal {
	width := upper.Sub(lower)
	if width.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	fraction := upper.Sub(magi).Div(width)
	if fraction.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if fraction.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return fraction
}
