// Package benefits evaluates means-tested program eligibility: SNAP, TANF,
// SSI, and Medicaid. Each program is an independent pure function of the
// household input plus the injected state/year parameter tables; no
// evaluator reads or writes shared state.
package benefits

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/cliffscope/cliffscope/internal/domain"
)

var twelve = decimal.NewFromInt(12)

// Evaluator runs the per-program determinations against a rule set.
type Evaluator struct {
	Rules *domain.RuleSet
}

// NewEvaluator creates a benefit evaluator over a rule set.
func NewEvaluator(rules *domain.RuleSet) *Evaluator {
	return &Evaluator{Rules: rules}
}

// Evaluate runs every program for one household. The (year, state)
// combination is checked against the rule tables before any program runs,
// so an unsupported configuration is rejected up front with a typed error.
func (ev *Evaluator) Evaluate(ctx context.Context, input *domain.HouseholdInput) ([]domain.ProgramEligibility, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	snapRules, err := ev.Rules.SNAPForYear(input.TaxYear)
	if err != nil {
		return nil, err
	}
	tanfRules, err := ev.Rules.TANFForState(input.StateCode)
	if err != nil {
		return nil, err
	}
	ssiRules, err := ev.Rules.SSIForYear(input.TaxYear)
	if err != nil {
		return nil, err
	}
	fpl, err := ev.Rules.PovertyLevel(input.TaxYear, input.Size())
	if err != nil {
		return nil, err
	}

	results := []domain.ProgramEligibility{
		evaluateSNAP(input, snapRules, fpl),
		evaluateTANF(input, tanfRules),
		evaluateSSI(input, ssiRules),
		evaluateMedicaid(input, ev.Rules.Medicaid, fpl),
	}
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	return results, nil
}

// monthly converts an annual cents amount to decimal dollars per month.
func monthly(c domain.Cents) decimal.Decimal {
	return c.Dollars().Div(twelve)
}

// determination builds the eligibility row, enforcing the invariant that
// amounts are zero whenever the household is ineligible.
func determination(program domain.Program, eligible bool, monthlyAmount decimal.Decimal) domain.ProgramEligibility {
	if !eligible || monthlyAmount.LessThan(decimal.Zero) {
		return domain.ProgramEligibility{Program: program}
	}
	m := domain.CentsFromDollars(monthlyAmount)
	return domain.ProgramEligibility{
		Program:       program,
		Eligible:      true,
		MonthlyAmount: m,
		AnnualAmount:  m.Annual(),
	}
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
