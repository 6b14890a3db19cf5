package radar

import (
	"fmt"

	"github.com/cliffscope/cliffscope/internal/domain"
)

// AlertKind tags a change alert for presentation.
type AlertKind string

const (
	AlertSuccess     AlertKind = "success"
	AlertWarning     AlertKind = "warning"
	AlertOpportunity AlertKind = "opportunity"
	AlertInfo        AlertKind = "info"
)

// Alert reports one program whose eligibility flipped or whose monthly
// amount moved past the materiality threshold since the previous snapshot.
// Messages come from fixed templates keyed by the change kind.
type Alert struct {
	Program          domain.Program `json:"program"`
	Kind             AlertKind      `json:"kind"`
	Message          string         `json:"message"`
	PreviousMonthly  domain.Cents   `json:"previousMonthly"`
	CurrentMonthly   domain.Cents   `json:"currentMonthly"`
	EligibilityFlip  bool           `json:"eligibilityFlip"`
}

// programState is the per-program slice of a snapshot.
type programState struct {
	Eligible bool
	Monthly  domain.Cents
}

// Snapshot is the per-session record of the last accepted evaluation, used
// only as the delta baseline. It is replaced wholesale on every accepted
// (non-stale) evaluation and never partially mutated.
type Snapshot struct {
	Seq      uint64
	Programs map[domain.Program]programState
	TotalTax domain.Cents
}

// newSnapshot builds a snapshot from an accepted evaluation.
func newSnapshot(seq uint64, tax *domain.TaxResult, programs []domain.ProgramEligibility) *Snapshot {
	snap := &Snapshot{
		Seq:      seq,
		Programs: make(map[domain.Program]programState, len(programs)),
		TotalTax: tax.TotalTax,
	}
	for _, p := range programs {
		snap.Programs[p.Program] = programState{Eligible: p.Eligible, Monthly: p.MonthlyAmount}
	}
	return snap
}

// diffAlerts compares a new evaluation against the previous snapshot. A nil
// previous snapshot is the session's first evaluation: each eligible
// program produces an informational baseline alert instead of a change
// alert.
func diffAlerts(prev *Snapshot, programs []domain.ProgramEligibility, materiality domain.Cents) []Alert {
	var alerts []Alert
	for _, p := range programs {
		if prev == nil {
			if p.Eligible {
				alerts = append(alerts, Alert{
					Program:        p.Program,
					Kind:           AlertInfo,
					Message:        fmt.Sprintf("%s: eligible for %s/month", p.Program, p.MonthlyAmount),
					CurrentMonthly: p.MonthlyAmount,
				})
			}
			continue
		}
		before := prev.Programs[p.Program]
		switch {
		case !before.Eligible && p.Eligible:
			alerts = append(alerts, Alert{
				Program:         p.Program,
				Kind:            AlertSuccess,
				Message:         fmt.Sprintf("%s: eligibility gained (%s/month)", p.Program, p.MonthlyAmount),
				PreviousMonthly: before.Monthly,
				CurrentMonthly:  p.MonthlyAmount,
				EligibilityFlip: true,
			})
		case before.Eligible && !p.Eligible:
			alerts = append(alerts, Alert{
				Program:         p.Program,
				Kind:            AlertWarning,
				Message:         fmt.Sprintf("%s: eligibility lost", p.Program),
				PreviousMonthly: before.Monthly,
				EligibilityFlip: true,
			})
		case p.MonthlyAmount-before.Monthly > materiality:
			alerts = append(alerts, Alert{
				Program:         p.Program,
				Kind:            AlertOpportunity,
				Message:         fmt.Sprintf("%s: monthly amount increased from %s to %s", p.Program, before.Monthly, p.MonthlyAmount),
				PreviousMonthly: before.Monthly,
				CurrentMonthly:  p.MonthlyAmount,
			})
		case before.Monthly-p.MonthlyAmount > materiality:
			alerts = append(alerts, Alert{
				Program:         p.Program,
				Kind:            AlertWarning,
				Message:         fmt.Sprintf("%s: monthly amount decreased from %s to %s", p.Program, before.Monthly, p.MonthlyAmount),
				PreviousMonthly: before.Monthly,
				CurrentMonthly:  p.MonthlyAmount,
			})
		}
	}
	return alerts
}
