package domain

// FilingStatus is a federal income tax filing status.
type FilingStatus string

const (
	FilingSingle                FilingStatus = "single"
	FilingMarriedFilingJointly  FilingStatus = "married_filing_jointly"
	FilingMarriedFilingSeparate FilingStatus = "married_filing_separately"
	FilingHeadOfHousehold       FilingStatus = "head_of_household"
)

// ValidFilingStatuses lists the recognized filing statuses in display order.
var ValidFilingStatuses = []FilingStatus{
	FilingSingle,
	FilingMarriedFilingJointly,
	FilingMarriedFilingSeparate,
	FilingHeadOfHousehold,
}

func (fs FilingStatus) Valid() bool {
	for _, v := range ValidFilingStatuses {
		if fs == v {
			return true
		}
	}
	return false
}

// IsJoint reports whether the status covers a married couple filing together.
func (fs FilingStatus) IsJoint() bool { return fs == FilingMarriedFilingJointly }

// HouseholdInput is one household's financial and demographic picture for a
// single evaluation. It is created per request and never mutated after
// construction; all monetary fields are annual integer cents unless the
// field name says Monthly.
type HouseholdInput struct {
	// Income
	Wages               Cents `yaml:"wages" json:"wages"`
	SelfEmploymentGross Cents `yaml:"self_employment_gross" json:"selfEmploymentGross"`
	BusinessExpenses    Cents `yaml:"business_expenses" json:"businessExpenses"`
	UnearnedIncome      Cents `yaml:"unearned_income" json:"unearnedIncome"`
	FederalWithholding  Cents `yaml:"federal_withholding" json:"federalWithholding"`

	// Assets
	AssetValue Cents `yaml:"asset_value" json:"assetValue"`

	// Composition
	Adults                int  `yaml:"adults" json:"adults"`
	Children              int  `yaml:"children" json:"children"`
	QualifyingChildren    int  `yaml:"qualifying_children" json:"qualifyingChildren"`
	HasElderlyOrDisabled  bool `yaml:"has_elderly_or_disabled" json:"hasElderlyOrDisabled"`
	AllAdultsElderly      bool `yaml:"all_adults_elderly" json:"allAdultsElderly"`
	IsPregnant            bool `yaml:"is_pregnant" json:"isPregnant"`
	ReceivesSSI           bool `yaml:"receives_ssi" json:"receivesSSI"`
	ReceivesTANF          bool `yaml:"receives_tanf" json:"receivesTANF"`

	// Monthly expenses used by the benefit evaluators
	MonthlyShelterCost   Cents `yaml:"monthly_shelter_cost" json:"monthlyShelterCost"`
	MonthlyUtilityCost   Cents `yaml:"monthly_utility_cost" json:"monthlyUtilityCost"`
	MonthlyMedicalCost   Cents `yaml:"monthly_medical_cost" json:"monthlyMedicalCost"`
	MonthlyChildcareCost Cents `yaml:"monthly_childcare_cost" json:"monthlyChildcareCost"`

	// Tax-specific inputs
	FilingStatus       FilingStatus `yaml:"filing_status" json:"filingStatus"`
	ItemizedDeductions Cents        `yaml:"itemized_deductions" json:"itemizedDeductions"`
	ChildcareExpenses  Cents        `yaml:"childcare_expenses" json:"childcareExpenses"`
	EducationExpenses  Cents        `yaml:"education_expenses" json:"educationExpenses"`
	Students           int          `yaml:"students" json:"students"`

	// Table selection
	TaxYear   int    `yaml:"tax_year" json:"taxYear"`
	StateCode string `yaml:"state_code" json:"stateCode"`
}

// Size is the number of household members.
func (h *HouseholdInput) Size() int { return h.Adults + h.Children }

// EarnedIncome is wages plus positive self-employment profit, the base for
// the EITC and the SNAP earned-income deduction. Schedule C losses do not
// reduce earned income here; they reduce total income in the tax module.
func (h *HouseholdInput) EarnedIncome() Cents {
	earned := h.Wages
	if profit := h.SelfEmploymentGross - h.BusinessExpenses; profit > 0 {
		earned += profit
	}
	return earned
}

// GrossIncome is the household's total annual cash income before any
// deductions, used by the benefit gross-income tests.
func (h *HouseholdInput) GrossIncome() Cents {
	gross := h.Wages + h.UnearnedIncome
	if profit := h.SelfEmploymentGross - h.BusinessExpenses; profit > 0 {
		gross += profit
	}
	return gross
}

// Validate rejects malformed inputs before any computation proceeds.
func (h *HouseholdInput) Validate() error {
	type moneyField struct {
		name  string
		value Cents
	}
	for _, f := range []moneyField{
		{"wages", h.Wages},
		{"self_employment_gross", h.SelfEmploymentGross},
		{"business_expenses", h.BusinessExpenses},
		{"unearned_income", h.UnearnedIncome},
		{"federal_withholding", h.FederalWithholding},
		{"asset_value", h.AssetValue},
		{"monthly_shelter_cost", h.MonthlyShelterCost},
		{"monthly_utility_cost", h.MonthlyUtilityCost},
		{"monthly_medical_cost", h.MonthlyMedicalCost},
		{"monthly_childcare_cost", h.MonthlyChildcareCost},
		{"itemized_deductions", h.ItemizedDeductions},
		{"childcare_expenses", h.ChildcareExpenses},
		{"education_expenses", h.EducationExpenses},
	} {
		if f.value.IsNegative() {
			return NewInvalidInput("%s cannot be negative", f.name)
		}
	}
	if h.Adults < 0 || h.Children < 0 {
		return NewInvalidInput("household member counts cannot be negative")
	}
	if h.Size() < 1 {
		return NewInvalidInput("household size must be at least 1")
	}
	if h.QualifyingChildren < 0 || h.QualifyingChildren > h.Children {
		return NewInvalidInput("qualifying children must be between 0 and the number of children")
	}
	if h.Students < 0 || h.Students > h.Size() {
		return NewInvalidInput("students must be between 0 and household size")
	}
	if !h.FilingStatus.Valid() {
		return NewInvalidInput("unrecognized filing status %q", h.FilingStatus)
	}
	if h.TaxYear < 2000 || h.TaxYear > 2100 {
		return NewInvalidInput("tax year %d out of range", h.TaxYear)
	}
	return nil
}
