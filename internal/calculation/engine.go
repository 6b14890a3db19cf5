// Package calculation implements the federal Form-1040-style tax
// computation: AGI, deduction selection, progressive bracket tax,
// self-employment tax, and the EITC, CTC/ACTC, CDCC, and education credits.
// Every function here is pure; callers inject the rule tables.
package calculation

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/cliffscope/cliffscope/internal/domain"
)

// Engine evaluates federal tax liability against an injected rule set.
type Engine struct {
	Rules *domain.RuleSet
}

// NewEngine creates a tax engine over a rule set.
func NewEngine(rules *domain.RuleSet) *Engine {
	return &Engine{Rules: rules}
}

// EvaluateTax produces the complete federal liability breakdown for one
// household, or a typed error. The result is never partially populated.
func (e *Engine) EvaluateTax(ctx context.Context, input *domain.HouseholdInput) (*domain.TaxResult, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	yearRules, err := e.Rules.TaxYear(input.TaxYear)
	if err != nil {
		return nil, err
	}
	ftc := NewFederalTaxCalculator(input.TaxYear, yearRules)

	wages := input.Wages.Dollars()
	unearned := input.UnearnedIncome.Dollars()

	se := ftc.CalculateSelfEmployment(input.SelfEmploymentGross.Dollars(), input.BusinessExpenses.Dollars())

	// Schedule C losses reduce total income; only positive profit is
	// earned income for credit purposes.
	totalIncome := wages.Add(se.NetProfit).Add(unearned)
	agi := totalIncome.Sub(se.DeductiblePortion)

	deduction, deductionKind := ftc.SelectDeduction(input.FilingStatus, input.ItemizedDeductions.Dollars())
	taxableIncome := decimal.Max(agi.Sub(deduction), decimal.Zero)

	taxBeforeCredits, marginalRate := ftc.BracketTax(taxableIncome, input.FilingStatus)

	earnedIncome := wages
	if se.NetProfit.GreaterThan(decimal.Zero) {
		earnedIncome = earnedIncome.Add(se.NetProfit)
	}

	eitc := ftc.CalculateEITC(eitcInput{
		EarnedIncome:     earnedIncome,
		AGI:              agi,
		InvestmentIncome: unearned,
		FilingStatus:     input.FilingStatus,
		Children:         input.QualifyingChildren,
		AllAdultsElderly: input.AllAdultsElderly,
	})

	cdcc := ftc.CalculateCDCC(agi, input.ChildcareExpenses.Dollars(), input.QualifyingChildren)
	education := ftc.CalculateEducationCredits(agi, input.EducationExpenses.Dollars(), input.Students, input.FilingStatus)

	// Nonrefundable credits ahead of the CTC limit how much of it the
	// liability can absorb; the refundable remainder becomes the ACTC.
	remainingLiability := taxBeforeCredits.Sub(cdcc).Sub(education.Nonrefundable)
	ctc := ftc.CalculateCTC(agi, earnedIncome, remainingLiability, input.FilingStatus, input.QualifyingChildren)

	nonrefundable := cdcc.Add(education.Nonrefundable).Add(ctc.Total.Sub(ctc.Additional))
	incomeTax := decimal.Max(taxBeforeCredits.Sub(nonrefundable), decimal.Zero)
	totalTax := incomeTax.Add(se.Tax)

	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	result := &domain.TaxResult{
		TaxYear:          input.TaxYear,
		FilingStatus:     input.FilingStatus,
		TotalIncome:      domain.CentsFromDollars(totalIncome),
		AGI:              domain.CentsFromDollars(agi),
		Deduction:        domain.CentsFromDollars(deduction),
		DeductionKind:    deductionKind,
		TaxableIncome:    domain.CentsFromDollars(taxableIncome),
		TaxBeforeCredits: domain.CentsFromDollars(taxBeforeCredits),
		MarginalRate:     marginalRate,
		SelfEmployment: domain.SelfEmploymentDetail{
			NetProfit:         domain.CentsFromDollars(se.NetProfit),
			NetEarnings:       domain.CentsFromDollars(se.NetEarnings),
			Tax:               domain.CentsFromDollars(se.Tax),
			DeductiblePortion: domain.CentsFromDollars(se.DeductiblePortion),
		},
		EITC:          domain.CentsFromDollars(eitc),
		CTC:           domain.CentsFromDollars(ctc.Total),
		AdditionalCTC: domain.CentsFromDollars(ctc.Additional),
		CDCC:          domain.CentsFromDollars(cdcc),
		EducationCredits: domain.EducationCreditDetail{
			AmericanOpportunity: domain.CentsFromDollars(education.AmericanOpportunity),
			LifetimeLearning:    domain.CentsFromDollars(education.LifetimeLearning),
			Refundable:          domain.CentsFromDollars(education.Refundable),
			Nonrefundable:       domain.CentsFromDollars(education.Nonrefundable),
		},
		TotalTax:    domain.CentsFromDollars(totalTax),
		Withholding: input.FederalWithholding,
	}
	result.RefundOrOwed = result.Withholding + result.RefundableCredits() - result.TotalTax
	return result, nil
}

// ctxErr maps context cancellation onto the engine error taxonomy.
func ctxErr(ctx context.Context) error {
	err := ctx.Err()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return domain.NewComputationTimeout(err)
	default:
		return err
	}
}
