package domain

import "github.com/shopspring/decimal"

// RuleSet bundles every versioned parameter table the engine consumes:
// federal tax tables by year, poverty levels by year, benefit program
// parameters by year or state, and the cliff classification thresholds.
// The engine never hardcodes these figures; callers load them from YAML or
// use the built-in dataset, so the same code can be tested against multiple
// tax years and jurisdictions. All dollar figures in rule tables are whole
// decimal dollars, not cents.
type RuleSet struct {
	Metadata RulesMetadata        `yaml:"metadata" json:"metadata"`
	TaxYears map[int]TaxYearRules `yaml:"tax_years" json:"tax_years"`
	FPL      map[int]FPLTable     `yaml:"federal_poverty_levels" json:"federal_poverty_levels"`
	SNAP     map[int]SNAPRules    `yaml:"snap" json:"snap"`
	TANF     map[string]TANFRules `yaml:"tanf" json:"tanf"`
	SSI      map[int]SSIRules     `yaml:"ssi" json:"ssi"`
	Medicaid MedicaidRules        `yaml:"medicaid" json:"medicaid"`
	Cliff    CliffThresholds      `yaml:"cliff" json:"cliff"`
}

// RulesMetadata describes the provenance of a rule dataset.
type RulesMetadata struct {
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description" json:"description"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
}

// TaxYear returns the federal tax tables for a year, or UnsupportedYear.
func (rs *RuleSet) TaxYear(year int) (TaxYearRules, error) {
	ty, ok := rs.TaxYears[year]
	if !ok {
		return TaxYearRules{}, NewUnsupportedYear(year)
	}
	return ty, nil
}

// PovertyLevel returns the annual FPL in dollars for a household size.
func (rs *RuleSet) PovertyLevel(year, size int) (decimal.Decimal, error) {
	table, ok := rs.FPL[year]
	if !ok {
		return decimal.Decimal{}, NewUnsupportedYear(year)
	}
	return table.ForSize(size), nil
}

// SNAPForYear returns SNAP parameters, or UnsupportedYear.
func (rs *RuleSet) SNAPForYear(year int) (SNAPRules, error) {
	r, ok := rs.SNAP[year]
	if !ok {
		return SNAPRules{}, NewUnsupportedYear(year)
	}
	return r, nil
}

// TANFForState returns state TANF parameters, or UnsupportedState.
func (rs *RuleSet) TANFForState(state string) (TANFRules, error) {
	r, ok := rs.TANF[state]
	if !ok {
		return TANFRules{}, NewUnsupportedState(state)
	}
	return r, nil
}

// SSIForYear returns SSI parameters, or UnsupportedYear.
func (rs *RuleSet) SSIForYear(year int) (SSIRules, error) {
	r, ok := rs.SSI[year]
	if !ok {
		return SSIRules{}, NewUnsupportedYear(year)
	}
	return r, nil
}

// TaxBracket is one row of a progressive bracket table. A zero Max marks
// the unbounded top bracket.
type TaxBracket struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// TaxYearRules holds every federal parameter for one tax year.
type TaxYearRules struct {
	StandardDeduction map[FilingStatus]decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	Brackets          map[FilingStatus][]TaxBracket    `yaml:"brackets" json:"brackets"`
	SelfEmployment    SelfEmploymentRules              `yaml:"self_employment" json:"self_employment"`
	EITC              EITCRules                        `yaml:"eitc" json:"eitc"`
	CTC               CTCRules                         `yaml:"ctc" json:"ctc"`
	CDCC              CDCCRules                        `yaml:"cdcc" json:"cdcc"`
	Education         EducationCreditRules             `yaml:"education" json:"education"`
}

// SelfEmploymentRules parameterizes the Schedule SE computation.
type SelfEmploymentRules struct {
	NetEarningsFactor  decimal.Decimal `yaml:"net_earnings_factor" json:"net_earnings_factor"`
	TaxRate            decimal.Decimal `yaml:"tax_rate" json:"tax_rate"`
	DeductibleFraction decimal.Decimal `yaml:"deductible_fraction" json:"deductible_fraction"`
}

// EITCRow is the phase-in/plateau/phase-out shape for one qualifying-child
// count. PhaseoutStart is for unmarried filers; joint filers use
// PhaseoutStartJoint.
type EITCRow struct {
	Children           int             `yaml:"children" json:"children"`
	PhaseInRate        decimal.Decimal `yaml:"phase_in_rate" json:"phase_in_rate"`
	EarnedIncomeAmount decimal.Decimal `yaml:"earned_income_amount" json:"earned_income_amount"`
	MaxCredit          decimal.Decimal `yaml:"max_credit" json:"max_credit"`
	PhaseoutRate       decimal.Decimal `yaml:"phaseout_rate" json:"phaseout_rate"`
	PhaseoutStart      decimal.Decimal `yaml:"phaseout_start" json:"phaseout_start"`
	PhaseoutStartJoint decimal.Decimal `yaml:"phaseout_start_joint" json:"phaseout_start_joint"`
}

// EITCRules holds the credit schedule plus the investment income ceiling.
type EITCRules struct {
	Rows                  []EITCRow       `yaml:"rows" json:"rows"`
	InvestmentIncomeLimit decimal.Decimal `yaml:"investment_income_limit" json:"investment_income_limit"`
}

// RowFor returns the schedule row for a children count, using the highest
// row for larger families.
func (r EITCRules) RowFor(children int) (EITCRow, bool) {
	var best EITCRow
	found := false
	for _, row := range r.Rows {
		if row.Children <= children && (!found || row.Children > best.Children) {
			best = row
			found = true
		}
	}
	return best, found
}

// CTCRules parameterizes the Child Tax Credit and its refundable portion.
type CTCRules struct {
	PerChild              decimal.Decimal                  `yaml:"per_child" json:"per_child"`
	PhaseoutThresholds    map[FilingStatus]decimal.Decimal `yaml:"phaseout_thresholds" json:"phaseout_thresholds"`
	PhaseoutStep          decimal.Decimal                  `yaml:"phaseout_step" json:"phaseout_step"`
	PhaseoutPerStep       decimal.Decimal                  `yaml:"phaseout_per_step" json:"phaseout_per_step"`
	RefundableCapPerChild decimal.Decimal                  `yaml:"refundable_cap_per_child" json:"refundable_cap_per_child"`
	RefundableEarnedFloor decimal.Decimal                  `yaml:"refundable_earned_floor" json:"refundable_earned_floor"`
	RefundableRate        decimal.Decimal                  `yaml:"refundable_rate" json:"refundable_rate"`
}

// CDCCRules parameterizes the Child and Dependent Care Credit sliding rate.
type CDCCRules struct {
	ExpenseCapOneDependent decimal.Decimal `yaml:"expense_cap_one_dependent" json:"expense_cap_one_dependent"`
	ExpenseCapTwoPlus      decimal.Decimal `yaml:"expense_cap_two_plus" json:"expense_cap_two_plus"`
	MaxRate                decimal.Decimal `yaml:"max_rate" json:"max_rate"`
	MinRate                decimal.Decimal `yaml:"min_rate" json:"min_rate"`
	AGIFloor               decimal.Decimal `yaml:"agi_floor" json:"agi_floor"`
	RateStepIncome         decimal.Decimal `yaml:"rate_step_income" json:"rate_step_income"`
	RateStep               decimal.Decimal `yaml:"rate_step" json:"rate_step"`
}

// EducationCreditRules parameterizes the AOC and LLC with their shared MAGI
// phase-out band.
type EducationCreditRules struct {
	AOCFullAmount         decimal.Decimal `yaml:"aoc_full_amount" json:"aoc_full_amount"`
	AOCPartialAmount      decimal.Decimal `yaml:"aoc_partial_amount" json:"aoc_partial_amount"`
	AOCPartialRate        decimal.Decimal `yaml:"aoc_partial_rate" json:"aoc_partial_rate"`
	AOCRefundableFraction decimal.Decimal `yaml:"aoc_refundable_fraction" json:"aoc_refundable_fraction"`
	LLCRate               decimal.Decimal `yaml:"llc_rate" json:"llc_rate"`
	LLCExpenseCap         decimal.Decimal `yaml:"llc_expense_cap" json:"llc_expense_cap"`
	PhaseoutLower         decimal.Decimal `yaml:"phaseout_lower" json:"phaseout_lower"`
	PhaseoutUpper         decimal.Decimal `yaml:"phaseout_upper" json:"phaseout_upper"`
	PhaseoutLowerJoint    decimal.Decimal `yaml:"phaseout_lower_joint" json:"phaseout_lower_joint"`
	PhaseoutUpperJoint    decimal.Decimal `yaml:"phaseout_upper_joint" json:"phaseout_upper_joint"`
}

// FPLTable gives the annual Federal Poverty Level by household size as a
// base amount plus a per-additional-person increment.
type FPLTable struct {
	Base      decimal.Decimal `yaml:"base" json:"base"`
	PerPerson decimal.Decimal `yaml:"per_person" json:"per_person"`
}

// ForSize returns the annual FPL in dollars for a household size.
func (t FPLTable) ForSize(size int) decimal.Decimal {
	if size < 1 {
		size = 1
	}
	extra := decimal.NewFromInt(int64(size - 1))
	return t.Base.Add(t.PerPerson.Mul(extra))
}

// SizedAmount is a dollar amount that applies up to a household size;
// tables are evaluated smallest MaxSize first.
type SizedAmount struct {
	MaxSize int             `yaml:"max_size" json:"max_size"`
	Amount  decimal.Decimal `yaml:"amount" json:"amount"`
}

// amountForSize resolves a SizedAmount table, falling back to the largest
// bucket for oversized households.
func amountForSize(table []SizedAmount, size int) decimal.Decimal {
	var last decimal.Decimal
	for _, row := range table {
		last = row.Amount
		if size <= row.MaxSize {
			return row.Amount
		}
	}
	return last
}

// SNAPRules holds the SNAP deduction, allotment, and test parameters for
// one federal fiscal year.
type SNAPRules struct {
	GrossIncomeLimitFPL    decimal.Decimal `yaml:"gross_income_limit_fpl" json:"gross_income_limit_fpl"`
	NetIncomeLimitFPL      decimal.Decimal `yaml:"net_income_limit_fpl" json:"net_income_limit_fpl"`
	EarnedIncomeDeduction  decimal.Decimal `yaml:"earned_income_deduction" json:"earned_income_deduction"`
	StandardDeductions     []SizedAmount   `yaml:"standard_deductions" json:"standard_deductions"`
	ShelterIncomeShare     decimal.Decimal `yaml:"shelter_income_share" json:"shelter_income_share"`
	ShelterDeductionCap    decimal.Decimal `yaml:"shelter_deduction_cap" json:"shelter_deduction_cap"`
	MedicalDeductionFloor  decimal.Decimal `yaml:"medical_deduction_floor" json:"medical_deduction_floor"`
	MaxAllotments          []SizedAmount   `yaml:"max_allotments" json:"max_allotments"`
	AllotmentPerExtra      decimal.Decimal `yaml:"allotment_per_extra" json:"allotment_per_extra"`
	BenefitReductionRate   decimal.Decimal `yaml:"benefit_reduction_rate" json:"benefit_reduction_rate"`
	MinimumBenefit         decimal.Decimal `yaml:"minimum_benefit" json:"minimum_benefit"`
	MinimumBenefitMaxSize  int             `yaml:"minimum_benefit_max_size" json:"minimum_benefit_max_size"`
}

// StandardDeductionForSize resolves the size-banded standard deduction.
func (r SNAPRules) StandardDeductionForSize(size int) decimal.Decimal {
	return amountForSize(r.StandardDeductions, size)
}

// MaxAllotmentForSize resolves the monthly maximum allotment, extending the
// table by the per-extra-person increment for large households.
func (r SNAPRules) MaxAllotmentForSize(size int) decimal.Decimal {
	if len(r.MaxAllotments) == 0 {
		return decimal.Zero
	}
	top := r.MaxAllotments[len(r.MaxAllotments)-1]
	if size <= top.MaxSize {
		return amountForSize(r.MaxAllotments, size)
	}
	extra := decimal.NewFromInt(int64(size - top.MaxSize))
	return top.Amount.Add(r.AllotmentPerExtra.Mul(extra))
}

// TANFRules holds one state's TANF parameters.
type TANFRules struct {
	PaymentStandards      []SizedAmount   `yaml:"payment_standards" json:"payment_standards"`
	StandardPerExtra      decimal.Decimal `yaml:"standard_per_extra" json:"standard_per_extra"`
	EarnedIncomeDisregard decimal.Decimal `yaml:"earned_income_disregard" json:"earned_income_disregard"`
	AssetLimit            decimal.Decimal `yaml:"asset_limit" json:"asset_limit"`
}

// PaymentStandardForSize resolves the monthly payment standard.
func (r TANFRules) PaymentStandardForSize(size int) decimal.Decimal {
	if len(r.PaymentStandards) == 0 {
		return decimal.Zero
	}
	top := r.PaymentStandards[len(r.PaymentStandards)-1]
	if size <= top.MaxSize {
		return amountForSize(r.PaymentStandards, size)
	}
	extra := decimal.NewFromInt(int64(size - top.MaxSize))
	return top.Amount.Add(r.StandardPerExtra.Mul(extra))
}

// SSIRules holds the federal benefit rate and disregards for one year.
type SSIRules struct {
	IndividualFBR           decimal.Decimal `yaml:"individual_fbr" json:"individual_fbr"`
	CoupleFBR               decimal.Decimal `yaml:"couple_fbr" json:"couple_fbr"`
	GeneralDisregard        decimal.Decimal `yaml:"general_disregard" json:"general_disregard"`
	EarnedDisregard         decimal.Decimal `yaml:"earned_disregard" json:"earned_disregard"`
	EarnedRemainderFraction decimal.Decimal `yaml:"earned_remainder_fraction" json:"earned_remainder_fraction"`
	AssetLimitIndividual    decimal.Decimal `yaml:"asset_limit_individual" json:"asset_limit_individual"`
	AssetLimitCouple        decimal.Decimal `yaml:"asset_limit_couple" json:"asset_limit_couple"`
}

// MedicaidRules holds MAGI-to-FPL thresholds (0-1 fractions of FPL, so 1.38
// means 138%) by category plus the monthly coverage valuation used when the
// cliff engine monetizes a coverage loss.
type MedicaidRules struct {
	AdultFPL              decimal.Decimal `yaml:"adult_fpl" json:"adult_fpl"`
	ChildFPL              decimal.Decimal `yaml:"child_fpl" json:"child_fpl"`
	PregnantFPL           decimal.Decimal `yaml:"pregnant_fpl" json:"pregnant_fpl"`
	MonthlyValuePerPerson decimal.Decimal `yaml:"monthly_value_per_person" json:"monthly_value_per_person"`
}

// CliffThresholds versions the severity cutoffs used by the comparison
// engine. Loss fractions are relative to the wage increase; the absolute
// floor is annual dollars.
type CliffThresholds struct {
	MinorLossFraction    decimal.Decimal `yaml:"minor_loss_fraction" json:"minor_loss_fraction"`
	ModerateLossFraction decimal.Decimal `yaml:"moderate_loss_fraction" json:"moderate_loss_fraction"`
	SevereAbsoluteLoss   decimal.Decimal `yaml:"severe_absolute_loss" json:"severe_absolute_loss"`
	MaterialityMonthly   decimal.Decimal `yaml:"materiality_monthly" json:"materiality_monthly"`
}
