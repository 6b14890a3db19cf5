// Package compare runs the tax and benefit modules on two household
// scenarios and classifies the result: whether a wage increase nets the
// household less total income (a benefit cliff), how severe the loss is,
// and which programs drive it.
package compare

import (
	"context"

	"github.com/cliffscope/cliffscope/internal/benefits"
	"github.com/cliffscope/cliffscope/internal/calculation"
	"github.com/cliffscope/cliffscope/internal/domain"
)

// Engine orchestrates the two-scenario evaluation.
type Engine struct {
	TaxEngine  *calculation.Engine
	Benefits   *benefits.Evaluator
	Thresholds domain.CliffThresholds
}

// NewEngine creates a comparison engine sharing one rule set across the tax
// and benefit modules.
func NewEngine(rules *domain.RuleSet) *Engine {
	return &Engine{
		TaxEngine:  calculation.NewEngine(rules),
		Benefits:   benefits.NewEvaluator(rules),
		Thresholds: rules.Cliff,
	}
}

// Evaluate runs tax plus benefits for a single household scenario.
func (e *Engine) Evaluate(ctx context.Context, input *domain.HouseholdInput) (*ScenarioResult, error) {
	tax, err := e.TaxEngine.EvaluateTax(ctx, input)
	if err != nil {
		return nil, err
	}
	programs, err := e.Benefits.Evaluate(ctx, input)
	if err != nil {
		return nil, err
	}
	return &ScenarioResult{Tax: tax, Programs: programs}, nil
}

// Compare evaluates the current and proposed scenarios and produces the
// cliff determination with per-program impacts and the enumerated
// warnings/recommendations.
func (e *Engine) Compare(ctx context.Context, current, proposed *domain.HouseholdInput) (*CliffComparison, error) {
	currentResult, err := e.Evaluate(ctx, current)
	if err != nil {
		return nil, err
	}
	proposedResult, err := e.Evaluate(ctx, proposed)
	if err != nil {
		return nil, err
	}

	cmp := &CliffComparison{
		Current:  *currentResult,
		Proposed: *proposedResult,
	}

	cmp.WageIncrease = proposed.Wages - current.Wages
	if current.Wages > 0 {
		cmp.WageIncreasePercent = domain.FractionToPercent(
			cmp.WageIncrease.Dollars().Div(current.Wages.Dollars())).Round(2)
	}

	currentNet := netIncome(current, currentResult)
	proposedNet := netIncome(proposed, proposedResult)
	cmp.NetIncomeChange = proposedNet - currentNet
	if currentNet != 0 {
		cmp.NetIncomeChangePercent = domain.FractionToPercent(
			cmp.NetIncomeChange.Dollars().Div(currentNet.Dollars().Abs())).Round(2)
	}

	cmp.IsCliff = cmp.WageIncrease > 0 && cmp.NetIncomeChange < 0
	cmp.Severity = e.classifySeverity(cmp.WageIncrease, cmp.NetIncomeChange)
	cmp.ProgramImpacts = programImpacts(currentResult.Programs, proposedResult.Programs)
	cmp.Warnings, cmp.Recommendations = renderMessages(detectTriggers(cmp))

	return cmp, nil
}

// classifySeverity grades the net loss against the wage increase using the
// versioned thresholds. Severity is monotonically non-decreasing in the
// magnitude of the loss relative to the wage gain.
func (e *Engine) classifySeverity(wageIncrease, netChange domain.Cents) Severity {
	if netChange >= 0 {
		return SeverityNone
	}
	loss := netChange.Dollars().Neg()
	if loss.GreaterThan(e.Thresholds.SevereAbsoluteLoss) {
		return SeveritySevere
	}
	if wageIncrease <= 0 {
		// A loss with no wage gain has no meaningful ratio; grade on the
		// absolute floor alone.
		return SeverityModerate
	}
	ratio := loss.Div(wageIncrease.Dollars())
	switch {
	case ratio.LessThan(e.Thresholds.MinorLossFraction):
		return SeverityMinor
	case ratio.LessThanOrEqual(e.Thresholds.ModerateLossFraction):
		return SeverityModerate
	default:
		return SeveritySevere
	}
}

// programImpacts lists per-program monthly deltas in stable program order.
func programImpacts(current, proposed []domain.ProgramEligibility) []ProgramImpact {
	find := func(programs []domain.ProgramEligibility, id domain.Program) domain.Cents {
		for _, p := range programs {
			if p.Program == id {
				return p.MonthlyAmount
			}
		}
		return 0
	}
	impacts := make([]ProgramImpact, 0, len(domain.AllPrograms))
	for _, id := range domain.AllPrograms {
		cur := find(current, id)
		prop := find(proposed, id)
		impacts = append(impacts, ProgramImpact{
			Program:         id,
			CurrentMonthly:  cur,
			ProposedMonthly: prop,
			Delta:           prop - cur,
		})
	}
	return impacts
}
