package compare

import "github.com/cliffscope/cliffscope/internal/domain"

// Trigger is one condition in the closed warning/recommendation set. The
// engine emits only these fixed messages, never synthesized text, so the
// comparison output stays deterministic and testable.
type Trigger string

const (
	TriggerMedicaidLost    Trigger = "medicaid_lost"
	TriggerMedicaidReduced Trigger = "medicaid_reduced"
	TriggerSNAPZeroed      Trigger = "snap_zeroed"
	TriggerSNAPReduced     Trigger = "snap_reduced"
	TriggerTANFLost        Trigger = "tanf_lost"
	TriggerSSIReduced      Trigger = "ssi_reduced"
	TriggerEITCPhasedOut   Trigger = "eitc_phased_out"
	TriggerEITCReduced     Trigger = "eitc_reduced"
	TriggerCTCReduced      Trigger = "ctc_reduced"
	TriggerNetLoss         Trigger = "net_loss"
	TriggerNetGain         Trigger = "net_gain"
)

// warningMessages maps loss triggers to their fixed warning text.
var warningMessages = map[Trigger]string{
	TriggerMedicaidLost:    "Medicaid eligibility lost at the proposed income",
	TriggerMedicaidReduced: "Medicaid coverage reduced: some household members lose eligibility at the proposed income",
	TriggerSNAPZeroed:      "SNAP benefit reduced to zero at the proposed income",
	TriggerSNAPReduced:   "SNAP benefit reduced at the proposed income",
	TriggerTANFLost:      "TANF eligibility lost at the proposed income",
	TriggerSSIReduced:    "SSI payment reduced at the proposed income",
	TriggerEITCPhasedOut: "EITC fully phased out at the proposed income",
	TriggerEITCReduced:   "EITC reduced at the proposed income",
	TriggerCTCReduced:    "Child Tax Credit reduced at the proposed income",
	TriggerNetLoss:       "Proposed wage increase leaves the household with less total income",
}

// recommendationMessages maps triggers to their fixed templated advice.
var recommendationMessages = map[Trigger]string{
	TriggerMedicaidLost: "Review marketplace coverage options before accepting the wage change",
	TriggerSNAPZeroed:   "Recheck SNAP deductions (shelter, childcare, medical) that may restore eligibility",
	TriggerNetLoss:      "Consider a smaller raise, phased increase, or employer benefits to offset the cliff",
	TriggerNetGain:      "Proposed change increases total household resources",
}

// detectTriggers inspects the two scenario results and returns the
// conditions that fired, in stable order.
func detectTriggers(cmp *CliffComparison) []Trigger {
	var fired []Trigger

	byProgram := func(programs []domain.ProgramEligibility, id domain.Program) domain.ProgramEligibility {
		for _, p := range programs {
			if p.Program == id {
				return p
			}
		}
		return domain.ProgramEligibility{Program: id}
	}

	curSNAP := byProgram(cmp.Current.Programs, domain.ProgramSNAP)
	propSNAP := byProgram(cmp.Proposed.Programs, domain.ProgramSNAP)
	curMedicaid := byProgram(cmp.Current.Programs, domain.ProgramMedicaid)
	propMedicaid := byProgram(cmp.Proposed.Programs, domain.ProgramMedicaid)
	curTANF := byProgram(cmp.Current.Programs, domain.ProgramTANF)
	propTANF := byProgram(cmp.Proposed.Programs, domain.ProgramTANF)
	curSSI := byProgram(cmp.Current.Programs, domain.ProgramSSI)
	propSSI := byProgram(cmp.Proposed.Programs, domain.ProgramSSI)

	switch {
	case curMedicaid.Eligible && !propMedicaid.Eligible:
		fired = append(fired, TriggerMedicaidLost)
	case curMedicaid.MonthlyAmount > propMedicaid.MonthlyAmount:
		fired = append(fired, TriggerMedicaidReduced)
	}
	switch {
	case curSNAP.Eligible && !propSNAP.Eligible:
		fired = append(fired, TriggerSNAPZeroed)
	case curSNAP.MonthlyAmount > propSNAP.MonthlyAmount:
		fired = append(fired, TriggerSNAPReduced)
	}
	if curTANF.Eligible && !propTANF.Eligible {
		fired = append(fired, TriggerTANFLost)
	}
	if curSSI.MonthlyAmount > propSSI.MonthlyAmount {
		fired = append(fired, TriggerSSIReduced)
	}
	switch {
	case cmp.Current.Tax.EITC > 0 && cmp.Proposed.Tax.EITC == 0:
		fired = append(fired, TriggerEITCPhasedOut)
	case cmp.Current.Tax.EITC > cmp.Proposed.Tax.EITC:
		fired = append(fired, TriggerEITCReduced)
	}
	if cmp.Current.Tax.CTC+cmp.Current.Tax.AdditionalCTC > cmp.Proposed.Tax.CTC+cmp.Proposed.Tax.AdditionalCTC {
		fired = append(fired, TriggerCTCReduced)
	}
	if cmp.NetIncomeChange < 0 {
		fired = append(fired, TriggerNetLoss)
	} else if cmp.WageIncrease > 0 {
		fired = append(fired, TriggerNetGain)
	}

	return fired
}

// renderMessages splits fired triggers into warning and recommendation
// strings using the fixed message tables.
func renderMessages(fired []Trigger) (warnings, recommendations []string) {
	for _, t := range fired {
		if msg, ok := warningMessages[t]; ok {
			warnings = append(warnings, msg)
		}
		if msg, ok := recommendationMessages[t]; ok {
			recommendations = append(recommendations, msg)
		}
	}
	return warnings, recommendations
}
