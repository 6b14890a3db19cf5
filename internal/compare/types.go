package compare

import (
	"github.com/shopspring/decimal"

	"github.com/cliffscope/cliffscope/internal/domain"
)

// Severity classifies how badly a wage increase backfires.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// ScenarioResult bundles one scenario's tax and benefit outcomes.
type ScenarioResult struct {
	Tax      *domain.TaxResult           `json:"tax"`
	Programs []domain.ProgramEligibility `json:"programs"`
}

// TotalAnnualBenefits sums the scenario's program amounts.
func (sr *ScenarioResult) TotalAnnualBenefits() domain.Cents {
	return domain.TotalAnnualBenefits(sr.Programs)
}

// ProgramImpact is the per-program monthly delta between scenarios.
type ProgramImpact struct {
	Program         domain.Program `json:"program"`
	CurrentMonthly  domain.Cents   `json:"currentMonthly"`
	ProposedMonthly domain.Cents   `json:"proposedMonthly"`
	Delta           domain.Cents   `json:"delta"`
}

// CliffComparison is the full outcome of comparing a current household
// against a proposed one. Percent fields are boundary values on the 0-100
// scale; everything monetary is annual cents unless named Monthly.
type CliffComparison struct {
	Current  ScenarioResult `json:"current"`
	Proposed ScenarioResult `json:"proposed"`

	WageIncrease        domain.Cents    `json:"wageIncrease"`
	WageIncreasePercent decimal.Decimal `json:"wageIncreasePercent"`

	NetIncomeChange        domain.Cents    `json:"netIncomeChange"`
	NetIncomeChangePercent decimal.Decimal `json:"netIncomeChangePercent"`

	IsCliff  bool     `json:"isCliff"`
	Severity Severity `json:"severity"`

	ProgramImpacts  []ProgramImpact `json:"programImpacts"`
	Warnings        []string        `json:"warnings"`
	Recommendations []string        `json:"recommendations"`
}

// netIncome is wages minus total tax plus total benefits: the resource
// figure the cliff determination runs on.
func netIncome(input *domain.HouseholdInput, result *ScenarioResult) domain.Cents {
	return input.Wages - result.Tax.TotalTax + result.TotalAnnualBenefits()
}
