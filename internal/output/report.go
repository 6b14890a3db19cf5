// Package output renders engine results for the CLI: a console table view
// and a JSON view. Percentages leave the engine as 0-1 fractions and are
// converted to the 0-100 scale here, at the boundary.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cliffscope/cliffscope/internal/compare"
	"github.com/cliffscope/cliffscope/internal/domain"
)

// JSONFormatter renders results as JSON.
type JSONFormatter struct {
	Pretty bool
}

// Format marshals any result value.
func (jf *JSONFormatter) Format(v any) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// TableFormatter renders results as console tables.
type TableFormatter struct{}

// FormatTaxResult generates the liability breakdown table.
func (tf *TableFormatter) FormatTaxResult(tr *domain.TaxResult) string {
	var sb strings.Builder
	sb.WriteString("FEDERAL TAX SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n")
	sb.WriteString(fmt.Sprintf("Tax year: %d  Filing status: %s\n\n", tr.TaxYear, tr.FilingStatus))

	row := func(label string, amount domain.Cents) {
		sb.WriteString(fmt.Sprintf("%-30s %15s\n", label, amount))
	}
	row("Total income", tr.TotalIncome)
	row("AGI", tr.AGI)
	row(fmt.Sprintf("Deduction (%s)", tr.DeductionKind), tr.Deduction)
	row("Taxable income", tr.TaxableIncome)
	row("Tax before credits", tr.TaxBeforeCredits)
	sb.WriteString(fmt.Sprintf("%-30s %14s%%\n", "Marginal rate",
		domain.FractionToPercent(tr.MarginalRate).StringFixed(0)))
	if tr.SelfEmployment.Tax > 0 {
		row("Self-employment tax", tr.SelfEmployment.Tax)
	}

	sb.WriteString("\nCREDITS\n")
	sb.WriteString(strings.Repeat("-", 50) + "\n")
	row("EITC", tr.EITC)
	row("Child Tax Credit", tr.CTC)
	row("Additional CTC (refundable)", tr.AdditionalCTC)
	row("Child & Dependent Care", tr.CDCC)
	row("American Opportunity", tr.EducationCredits.AmericanOpportunity)
	row("Lifetime Learning", tr.EducationCredits.LifetimeLearning)

	sb.WriteString(strings.Repeat("-", 50) + "\n")
	row("Total tax", tr.TotalTax)
	row("Withholding", tr.Withholding)
	if tr.RefundOrOwed >= 0 {
		row("Refund", tr.RefundOrOwed)
	} else {
		row("Amount owed", -tr.RefundOrOwed)
	}
	return sb.String()
}

// FormatPrograms generates the benefit determination table.
func (tf *TableFormatter) FormatPrograms(programs []domain.ProgramEligibility) string {
	var sb strings.Builder
	sb.WriteString("BENEFIT DETERMINATIONS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("%-12s %-10s %15s %15s\n", "Program", "Eligible", "Monthly", "Annual"))
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for _, p := range programs {
		eligible := "no"
		if p.Eligible {
			eligible = "yes"
		}
		sb.WriteString(fmt.Sprintf("%-12s %-10s %15s %15s\n",
			strings.ToUpper(string(p.Program)), eligible, p.MonthlyAmount, p.AnnualAmount))
	}
	return sb.String()
}

// FormatComparison generates the cliff comparison report.
func (tf *TableFormatter) FormatComparison(cmp *compare.CliffComparison) string {
	var sb strings.Builder
	sb.WriteString("BENEFIT CLIFF COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 70) + "\n")
	sb.WriteString(fmt.Sprintf("Wage change:       %s (%s%%)\n",
		cmp.WageIncrease, cmp.WageIncreasePercent.StringFixed(1)))
	sb.WriteString(fmt.Sprintf("Net income change: %s (%s%%)\n",
		cmp.NetIncomeChange, cmp.NetIncomeChangePercent.StringFixed(1)))
	sb.WriteString(fmt.Sprintf("Cliff detected:    %v  Severity: %s\n", cmp.IsCliff, cmp.Severity))

	sb.WriteString("\nPROGRAM IMPACTS (monthly)\n")
	sb.WriteString(strings.Repeat("-", 70) + "\n")
	sb.WriteString(fmt.Sprintf("%-12s %15s %15s %15s\n", "Program", "Current", "Proposed", "Delta"))
	for _, impact := range cmp.ProgramImpacts {
		sb.WriteString(fmt.Sprintf("%-12s %15s %15s %15s\n",
			strings.ToUpper(string(impact.Program)),
			impact.CurrentMonthly, impact.ProposedMonthly, impact.Delta))
	}

	if len(cmp.Warnings) > 0 {
		sb.WriteString("\nWARNINGS\n")
		sb.WriteString(strings.Repeat("-", 70) + "\n")
		for _, w := range cmp.Warnings {
			sb.WriteString("  ! " + w + "\n")
		}
	}
	if len(cmp.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 70) + "\n")
		for _, r := range cmp.Recommendations {
			sb.WriteString("  * " + r + "\n")
		}
	}
	return sb.String()
}
