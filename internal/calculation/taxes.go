package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/cliffscope/cliffscope/internal/domain"
)

// FederalTaxCalculator evaluates one tax year's bracket, deduction, and
// self-employment rules. It is constructed from an injectable rule table so
// the same code serves any supported year.
type FederalTaxCalculator struct {
	Year  int
	Rules domain.TaxYearRules
}

// NewFederalTaxCalculator creates a calculator for one year's tables.
func NewFederalTaxCalculator(year int, rules domain.TaxYearRules) *FederalTaxCalculator {
	return &FederalTaxCalculator{Year: year, Rules: rules}
}

// StandardDeduction returns the standard deduction for a filing status.
func (ftc *FederalTaxCalculator) StandardDeduction(status domain.FilingStatus) decimal.Decimal {
	return ftc.Rules.StandardDeduction[status]
}

// SelfEmploymentResult is the Schedule SE outcome in decimal dollars.
type SelfEmploymentResult struct {
	NetProfit         decimal.Decimal
	NetEarnings       decimal.Decimal
	Tax               decimal.Decimal
	DeductiblePortion decimal.Decimal
}

// CalculateSelfEmployment computes self-employment tax from gross business
// income and expenses. A net loss produces no tax and no deduction, but the
// (negative) profit still flows into total income.
func (ftc *FederalTaxCalculator) CalculateSelfEmployment(gross, expenses decimal.Decimal) SelfEmploymentResult {
	se := ftc.Rules.SelfEmployment
	result := SelfEmploymentResult{NetProfit: gross.Sub(expenses)}
	if result.NetProfit.LessThanOrEqual(decimal.Zero) {
		return result
	}
	result.NetEarnings = result.NetProfit.Mul(se.NetEarningsFactor).Round(2)
	result.Tax = result.NetEarnings.Mul(se.TaxRate).Round(2)
	result.DeductiblePortion = result.Tax.Mul(se.DeductibleFraction).Round(2)
	return result
}

// BracketTax walks the progressive bracket table for a filing status and
// returns the tax before credits plus the marginal rate of the last bracket
// touched. A zero taxable income touches no bracket and yields a zero
// marginal rate.
func (ftc *FederalTaxCalculator) BracketTax(taxableIncome decimal.Decimal, status domain.FilingStatus) (tax, marginalRate decimal.Decimal) {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero
	}
	for _, bracket := range ftc.Rules.Brackets[status] {
		ceiling := bracket.Max
		unbounded := ceiling.IsZero()
		top := taxableIncome
		if !unbounded {
			top = decimal.Min(taxableIncome, ceiling)
		}
		incomeInBracket := top.Sub(bracket.Min)
		if incomeInBracket.LessThanOrEqual(decimal.Zero) {
			break
		}
		tax = tax.Add(incomeInBracket.Mul(bracket.Rate))
		marginalRate = bracket.Rate
		if !unbounded && taxableIncome.LessThanOrEqual(ceiling) {
			break
		}
	}
	return tax.Round(2), marginalRate
}

// SelectDeduction compares the standard deduction against the household's
// itemized total and returns the larger, recording which one was used.
func (ftc *FederalTaxCalculator) SelectDeduction(status domain.FilingStatus, itemized decimal.Decimal) (decimal.Decimal, domain.DeductionKind) {
	standard := ftc.StandardDeduction(status)
	if itemized.GreaterThan(standard) {
		return itemized, domain.DeductionItemized
	}
	return standard, domain.DeductionStandard
}
