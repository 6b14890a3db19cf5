package domain

import "github.com/shopspring/decimal"

// DeductionKind says which deduction won the standard-vs-itemized comparison.
type DeductionKind string

const (
	DeductionStandard DeductionKind = "standard"
	DeductionItemized DeductionKind = "itemized"
)

// SelfEmploymentDetail breaks out the Schedule SE computation.
type SelfEmploymentDetail struct {
	NetProfit         Cents `json:"netProfit"`
	NetEarnings       Cents `json:"netEarnings"`
	Tax               Cents `json:"tax"`
	DeductiblePortion Cents `json:"deductiblePortion"`
}

// EducationCreditDetail breaks out the Form 8863 computation.
type EducationCreditDetail struct {
	AmericanOpportunity Cents `json:"americanOpportunity"`
	LifetimeLearning    Cents `json:"lifetimeLearning"`
	Refundable          Cents `json:"refundable"`
	Nonrefundable       Cents `json:"nonrefundable"`
}

// TaxResult is the complete federal liability breakdown for one household.
// Either every field is populated or the evaluation fails with a typed
// error; callers never see a partial result.
type TaxResult struct {
	TaxYear      int          `json:"taxYear"`
	FilingStatus FilingStatus `json:"filingStatus"`

	TotalIncome      Cents         `json:"totalIncome"`
	AGI              Cents         `json:"agi"`
	Deduction        Cents         `json:"deduction"`
	DeductionKind    DeductionKind `json:"deductionKind"`
	TaxableIncome    Cents         `json:"taxableIncome"`
	TaxBeforeCredits Cents         `json:"taxBeforeCredits"`
	// MarginalRate is the rate of the last bracket touched, as a 0-1
	// fraction.
	MarginalRate decimal.Decimal `json:"marginalRate"`

	SelfEmployment SelfEmploymentDetail `json:"selfEmployment"`

	EITC             Cents                 `json:"eitc"`
	CTC              Cents                 `json:"ctc"`
	AdditionalCTC    Cents                 `json:"additionalCTC"`
	CDCC             Cents                 `json:"cdcc"`
	EducationCredits EducationCreditDetail `json:"educationCredits"`

	TotalTax     Cents `json:"totalTax"`
	Withholding  Cents `json:"withholding"`
	RefundOrOwed Cents `json:"refundOrOwed"`
}

// RefundableCredits sums the credits paid out regardless of liability.
func (tr *TaxResult) RefundableCredits() Cents {
	return tr.EITC + tr.AdditionalCTC + tr.EducationCredits.Refundable
}

// Program identifies a means-tested benefit program.
type Program string

const (
	ProgramSNAP     Program = "snap"
	ProgramTANF     Program = "tanf"
	ProgramSSI      Program = "ssi"
	ProgramMedicaid Program = "medicaid"
)

// AllPrograms lists evaluated programs in stable output order.
var AllPrograms = []Program{ProgramSNAP, ProgramTANF, ProgramSSI, ProgramMedicaid}

// ProgramEligibility is one program's determination. MonthlyAmount and
// AnnualAmount are always zero when Eligible is false.
type ProgramEligibility struct {
	Program       Program `json:"program"`
	Eligible      bool    `json:"eligible"`
	MonthlyAmount Cents   `json:"monthlyAmount"`
	AnnualAmount  Cents   `json:"annualAmount"`
}

// TotalAnnualBenefits sums annual amounts across program determinations.
func TotalAnnualBenefits(programs []ProgramEligibility) Cents {
	var total Cents
	for _, p := range programs {
		total += p.AnnualAmount
	}
	return total
}
