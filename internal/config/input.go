// Package config loads and validates the YAML rule tables and household
// input files consumed by the engine, and resolves runtime settings for the
// radar service.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cliffscope/cliffscope/internal/domain"
)

// InputParser handles parsing of rule and household input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadRules loads a rule dataset from a YAML file and validates it.
func (ip *InputParser) LoadRules(filename string) (*domain.RuleSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var rules domain.RuleSet
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("rule validation failed: %w", err)
	}

	return &rules, nil
}

// LoadHousehold loads a household input from a YAML file and validates it.
func (ip *InputParser) LoadHousehold(filename string) (*domain.HouseholdInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input domain.HouseholdInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("household validation failed: %w", err)
	}

	return &input, nil
}

// ValidateRules validates a loaded rule dataset.
func (ip *InputParser) ValidateRules(rules *domain.RuleSet) error {
	if len(rules.TaxYears) == 0 {
		return fmt.Errorf("at least one tax year is required")
	}
	for year, ty := range rules.TaxYears {
		if err := ip.validateTaxYear(&ty); err != nil {
			return fmt.Errorf("tax year %d validation failed: %w", year, err)
		}
	}
	for year, fpl := range rules.FPL {
		if fpl.Base.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("FPL %d: base must be positive", year)
		}
		if fpl.PerPerson.LessThan(decimal.Zero) {
			return fmt.Errorf("FPL %d: per-person increment cannot be negative", year)
		}
	}
	for year, snap := range rules.SNAP {
		if err := ip.validateSNAP(&snap); err != nil {
			return fmt.Errorf("SNAP %d validation failed: %w", year, err)
		}
	}
	for state, tanf := range rules.TANF {
		if len(tanf.PaymentStandards) == 0 {
			return fmt.Errorf("TANF %s: payment standards are required", state)
		}
		if tanf.EarnedIncomeDisregard.LessThan(decimal.Zero) || tanf.EarnedIncomeDisregard.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("TANF %s: earned income disregard must be between 0 and 1", state)
		}
	}
	for year, ssi := range rules.SSI {
		if ssi.IndividualFBR.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("SSI %d: individual FBR must be positive", year)
		}
		if ssi.EarnedRemainderFraction.LessThan(decimal.Zero) || ssi.EarnedRemainderFraction.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("SSI %d: earned remainder fraction must be between 0 and 1", year)
		}
	}
	if err := ip.validateCliff(&rules.Cliff); err != nil {
		return fmt.Errorf("cliff threshold validation failed: %w", err)
	}
	return nil
}

// validateTaxYear validates one year's federal tables.
func (ip *InputParser) validateTaxYear(ty *domain.TaxYearRules) error {
	if len(ty.Brackets) == 0 {
		return fmt.Errorf("bracket tables are required")
	}
	for status, brackets := range ty.Brackets {
		if len(brackets) == 0 {
			return fmt.Errorf("bracket table for %s is empty", status)
		}
		prev := decimal.Zero
		for i, b := range brackets {
			if b.Rate.LessThan(decimal.Zero) || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
				return fmt.Errorf("bracket %d for %s: rate must be between 0 and 1", i, status)
			}
			if !b.Min.Equal(prev) {
				return fmt.Errorf("bracket %d for %s: floor %s does not continue from previous ceiling %s", i, status, b.Min, prev)
			}
			if i < len(brackets)-1 && b.Max.LessThanOrEqual(b.Min) {
				return fmt.Errorf("bracket %d for %s: ceiling must exceed floor", i, status)
			}
			prev = b.Max
		}
		if sd, ok := ty.StandardDeduction[status]; !ok || sd.LessThan(decimal.Zero) {
			return fmt.Errorf("standard deduction for %s is missing or negative", status)
		}
	}
	for i, row := range ty.EITC.Rows {
		if row.PhaseInRate.LessThan(decimal.Zero) || row.PhaseoutRate.LessThan(decimal.Zero) {
			return fmt.Errorf("EITC row %d: rates cannot be negative", i)
		}
		if row.MaxCredit.LessThan(decimal.Zero) {
			return fmt.Errorf("EITC row %d: max credit cannot be negative", i)
		}
	}
	if ty.Education.PhaseoutUpper.LessThanOrEqual(ty.Education.PhaseoutLower) {
		return fmt.Errorf("education credit phase-out band is empty")
	}
	if ty.Education.PhaseoutUpperJoint.LessThanOrEqual(ty.Education.PhaseoutLowerJoint) {
		return fmt.Errorf("education credit joint phase-out band is empty")
	}
	return nil
}

// validateSNAP validates one year's SNAP parameters.
func (ip *InputParser) validateSNAP(snap *domain.SNAPRules) error {
	if len(snap.MaxAllotments) == 0 {
		return fmt.Errorf("max allotments are required")
	}
	if snap.EarnedIncomeDeduction.LessThan(decimal.Zero) || snap.EarnedIncomeDeduction.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("earned income deduction must be between 0 and 1")
	}
	if snap.BenefitReductionRate.LessThan(decimal.Zero) || snap.BenefitReductionRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("benefit reduction rate must be between 0 and 1")
	}
	if snap.GrossIncomeLimitFPL.LessThanOrEqual(decimal.Zero) || snap.NetIncomeLimitFPL.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("income limits must be positive FPL multiples")
	}
	return nil
}

// validateCliff validates severity cutoffs.
func (ip *InputParser) validateCliff(c *domain.CliffThresholds) error {
	if c.MinorLossFraction.LessThan(decimal.Zero) {
		return fmt.Errorf("minor loss fraction cannot be negative")
	}
	if c.ModerateLossFraction.LessThanOrEqual(c.MinorLossFraction) {
		return fmt.Errorf("moderate loss fraction must exceed minor loss fraction")
	}
	if c.MaterialityMonthly.LessThan(decimal.Zero) {
		return fmt.Errorf("materiality threshold cannot be negative")
	}
	return nil
}
