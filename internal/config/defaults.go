package config

import (
	"github.com/shopspring/decimal"

	"github.com/cliffscope/cliffscope/internal/domain"
)

func dec(s string) decimal.Decimal { return domain.MustDecimal(s) }

// DefaultRules returns the built-in 2024 rule dataset: federal tax tables,
// 2024 poverty guidelines, FY2025 SNAP parameters, 2024 SSI rates, sample
// state TANF standards, and the default cliff thresholds. A YAML rules file
// loaded with LoadRules replaces any of these wholesale.
func DefaultRules() *domain.RuleSet {
	return &domain.RuleSet{
		Metadata: domain.RulesMetadata{
			Version:     "2024.1",
			Description: "Built-in 2024 federal tax and benefit parameters",
			LastUpdated: "2024-11-01",
		},
		TaxYears: map[int]domain.TaxYearRules{
			2024: taxYear2024(),
		},
		FPL: map[int]domain.FPLTable{
			2024: {Base: dec("15060"), PerPerson: dec("5380")},
		},
		SNAP: map[int]domain.SNAPRules{
			2024: snap2024(),
		},
		TANF: map[string]domain.TANFRules{
			"PA": {
				PaymentStandards: []domain.SizedAmount{
					{MaxSize: 1, Amount: dec("215")},
					{MaxSize: 2, Amount: dec("330")},
					{MaxSize: 3, Amount: dec("403")},
					{MaxSize: 4, Amount: dec("497")},
					{MaxSize: 5, Amount: dec("589")},
				},
				StandardPerExtra:      dec("90"),
				EarnedIncomeDisregard: dec("0.5"),
				AssetLimit:            dec("1000"),
			},
			"CA": {
				PaymentStandards: []domain.SizedAmount{
					{MaxSize: 1, Amount: dec("548")},
					{MaxSize: 2, Amount: dec("696")},
					{MaxSize: 3, Amount: dec("878")},
					{MaxSize: 4, Amount: dec("1060")},
					{MaxSize: 5, Amount: dec("1243")},
				},
				StandardPerExtra:      dec("150"),
				EarnedIncomeDisregard: dec("0.5"),
				AssetLimit:            dec("10000"),
			},
		},
		SSI: map[int]domain.SSIRules{
			2024: {
				IndividualFBR:           dec("943"),
				CoupleFBR:               dec("1415"),
				GeneralDisregard:        dec("20"),
				EarnedDisregard:         dec("65"),
				EarnedRemainderFraction: dec("0.5"),
				AssetLimitIndividual:    dec("2000"),
				AssetLimitCouple:        dec("3000"),
			},
		},
		Medicaid: domain.MedicaidRules{
			AdultFPL:              dec("1.38"),
			ChildFPL:              dec("2.00"),
			PregnantFPL:           dec("2.13"),
			MonthlyValuePerPerson: dec("450"),
		},
		Cliff: domain.CliffThresholds{
			MinorLossFraction:    dec("0.10"),
			ModerateLossFraction: dec("0.40"),
			SevereAbsoluteLoss:   dec("3000"),
			MaterialityMonthly:   dec("5"),
		},
	}
}

func taxYear2024() domain.TaxYearRules {
	return domain.TaxYearRules{
		StandardDeduction: map[domain.FilingStatus]decimal.Decimal{
			domain.FilingSingle:                dec("14600"),
			domain.FilingMarriedFilingJointly:  dec("29200"),
			domain.FilingMarriedFilingSeparate: dec("14600"),
			domain.FilingHeadOfHousehold:       dec("21900"),
		},
		Brackets: map[domain.FilingStatus][]domain.TaxBracket{
			domain.FilingSingle: {
				{Min: dec("0"), Max: dec("11600"), Rate: dec("0.10")},
				{Min: dec("11600"), Max: dec("47150"), Rate: dec("0.12")},
				{Min: dec("47150"), Max: dec("100525"), Rate: dec("0.22")},
				{Min: dec("100525"), Max: dec("191950"), Rate: dec("0.24")},
				{Min: dec("191950"), Max: dec("243725"), Rate: dec("0.32")},
				{Min: dec("243725"), Max: dec("609350"), Rate: dec("0.35")},
				{Min: dec("609350"), Max: decimal.Zero, Rate: dec("0.37")},
			},
			domain.FilingMarriedFilingJointly: {
				{Min: dec("0"), Max: dec("23200"), Rate: dec("0.10")},
				{Min: dec("23200"), Max: dec("94300"), Rate: dec("0.12")},
				{Min: dec("94300"), Max: dec("201050"), Rate: dec("0.22")},
				{Min: dec("201050"), Max: dec("383900"), Rate: dec("0.24")},
				{Min: dec("383900"), Max: dec("487450"), Rate: dec("0.32")},
				{Min: dec("487450"), Max: dec("731200"), Rate: dec("0.35")},
				{Min: dec("731200"), Max: decimal.Zero, Rate: dec("0.37")},
			},
			domain.FilingMarriedFilingSeparate: {
				{Min: dec("0"), Max: dec("11600"), Rate: dec("0.10")},
				{Min: dec("11600"), Max: dec("47150"), Rate: dec("0.12")},
				{Min: dec("47150"), Max: dec("100525"), Rate: dec("0.22")},
				{Min: dec("100525"), Max: dec("191950"), Rate: dec("0.24")},
				{Min: dec("191950"), Max: dec("243725"), Rate: dec("0.32")},
				{Min: dec("243725"), Max: dec("365600"), Rate: dec("0.35")},
				{Min: dec("365600"), Max: decimal.Zero, Rate: dec("0.37")},
			},
			domain.FilingHeadOfHousehold: {
				{Min: dec("0"), Max: dec("16550"), Rate: dec("0.10")},
				{Min: dec("16550"), Max: dec("63100"), Rate: dec("0.12")},
				{Min: dec("63100"), Max: dec("100500"), Rate: dec("0.22")},
				{Min: dec("100500"), Max: dec("191950"), Rate: dec("0.24")},
				{Min: dec("191950"), Max: dec("243700"), Rate: dec("0.32")},
				{Min: dec("243700"), Max: dec("609350"), Rate: dec("0.35")},
				{Min: dec("609350"), Max: decimal.Zero, Rate: dec("0.37")},
			},
		},
		SelfEmployment: domain.SelfEmploymentRules{
			NetEarningsFactor:  dec("0.9235"),
			TaxRate:            dec("0.153"),
			DeductibleFraction: dec("0.5"),
		},
		EITC: domain.EITCRules{
			InvestmentIncomeLimit: dec("11600"),
			Rows: []domain.EITCRow{
				{Children: 0, PhaseInRate: dec("0.0765"), EarnedIncomeAmount: dec("8260"), MaxCredit: dec("632"), PhaseoutRate: dec("0.0765"), PhaseoutStart: dec("10330"), PhaseoutStartJoint: dec("17250")},
				{Children: 1, PhaseInRate: dec("0.34"), EarnedIncomeAmount: dec("12390"), MaxCredit: dec("4213"), PhaseoutRate: dec("0.1598"), PhaseoutStart: dec("22720"), PhaseoutStartJoint: dec("29640")},
				{Children: 2, PhaseInRate: dec("0.40"), EarnedIncomeAmount: dec("17400"), MaxCredit: dec("6960"), PhaseoutRate: dec("0.2106"), PhaseoutStart: dec("22720"), PhaseoutStartJoint: dec("29640")},
				{Children: 3, PhaseInRate: dec("0.45"), EarnedIncomeAmount: dec("17400"), MaxCredit: dec("7830"), PhaseoutRate: dec("0.2106"), PhaseoutStart: dec("22720"), PhaseoutStartJoint: dec("29640")},
			},
		},
		CTC: domain.CTCRules{
			PerChild: dec("2000"),
			PhaseoutThresholds: map[domain.FilingStatus]decimal.Decimal{
				domain.FilingSingle:                dec("200000"),
				domain.FilingMarriedFilingJointly:  dec("400000"),
				domain.FilingMarriedFilingSeparate: dec("200000"),
				domain.FilingHeadOfHousehold:       dec("200000"),
			},
			PhaseoutStep:          dec("1000"),
			PhaseoutPerStep:       dec("50"),
			RefundableCapPerChild: dec("1700"),
			RefundableEarnedFloor: dec("2500"),
			RefundableRate:        dec("0.15"),
		},
		CDCC: domain.CDCCRules{
			ExpenseCapOneDependent: dec("3000"),
			ExpenseCapTwoPlus:      dec("6000"),
			MaxRate:                dec("0.35"),
			MinRate:                dec("0.20"),
			AGIFloor:               dec("15000"),
			RateStepIncome:         dec("2000"),
			RateStep:               dec("0.01"),
		},
		Education: domain.EducationCreditRules{
			AOCFullAmount:         dec("2000"),
			AOCPartialAmount:      dec("2000"),
			AOCPartialRate:        dec("0.25"),
			AOCRefundableFraction: dec("0.40"),
			LLCRate:               dec("0.20"),
			LLCExpenseCap:         dec("10000"),
			PhaseoutLower:         dec("80000"),
			PhaseoutUpper:         dec("90000"),
			PhaseoutLowerJoint:    dec("160000"),
			PhaseoutUpperJoint:    dec("180000"),
		},
	}
}

func snap2024() domain.SNAPRules {
	return domain.SNAPRules{
		GrossIncomeLimitFPL:   dec("1.30"),
		NetIncomeLimitFPL:     dec("1.00"),
		EarnedIncomeDeduction: dec("0.20"),
		StandardDeductions: []domain.SizedAmount{
			{MaxSize: 3, Amount: dec("204")},
			{MaxSize: 4, Amount: dec("217")},
			{MaxSize: 5, Amount: dec("254")},
			{MaxSize: 6, Amount: dec("291")},
		},
		ShelterIncomeShare:    dec("0.5"),
		ShelterDeductionCap:   dec("712"),
		MedicalDeductionFloor: dec("35"),
		MaxAllotments: []domain.SizedAmount{
			{MaxSize: 1, Amount: dec("292")},
			{MaxSize: 2, Amount: dec("536")},
			{MaxSize: 3, Amount: dec("768")},
			{MaxSize: 4, Amount: dec("975")},
			{MaxSize: 5, Amount: dec("1158")},
			{MaxSize: 6, Amount: dec("1390")},
			{MaxSize: 7, Amount: dec("1536")},
			{MaxSize: 8, Amount: dec("1756")},
		},
		AllotmentPerExtra:     dec("220"),
		BenefitReductionRate:  dec("0.3"),
		MinimumBenefit:        dec("23"),
		MinimumBenefitMaxSize: 2,
	}
}
