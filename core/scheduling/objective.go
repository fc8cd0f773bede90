package scheduling

import (
	"github.com/mishkahtherapy/brain/core/ports"
)

// ObjectiveMode selects which quantity the solver minimizes (spec.md §4.5).
type ObjectiveMode string

const (
	// ObjectiveGaps minimizes the sum of gap indicators plus the sum of
	// every client's first-slot start time. This is the default policy.
	ObjectiveGaps ObjectiveMode = "GAPS"
	// ObjectiveMakespan minimizes the latest end time across all clients.
	ObjectiveMakespan ObjectiveMode = "MAKESPAN"
)

// CompileObjective implements C7: it assembles the minimization goal from
// the gap indicators collected during transfer compilation (for GAPS) or
// from a makespan variable equal to the latest End across every client's
// slots (for MAKESPAN).
func CompileObjective(model ports.SolverModel, vars *VariableSet, transfers *TransferResult, mode ObjectiveMode) {
	switch mode {
	case ObjectiveMakespan:
		compileMakespanObjective(model, vars)
	default:
		compileGapsObjective(model, vars, transfers)
	}
}

func compileGapsObjective(model ports.SolverModel, vars *VariableSet, transfers *TransferResult) {
	var terms []ports.Term
	for _, g := range transfers.Gaps {
		terms = append(terms, ports.Term{Var: ports.VarHandle(g), Coeff: 1})
	}
	for _, cv := range vars.Clients {
		if len(cv.Slots) == 0 {
			continue
		}
		terms = append(terms, ports.Term{Var: cv.Slots[0].Start, Coeff: 1})
	}
	model.Minimize(terms)
}

// compileMakespanObjective minimizes the latest end time across every
// client's slots. A client's own last-executed slot is whichever one the
// successor circuit places last, not necessarily the slot with the highest
// array index, so the max is taken over every End variable directly: the
// overall maximum is unaffected by folding per-client first.
func compileMakespanObjective(model ports.SolverModel, vars *VariableSet) {
	makespan := model.NewIntVar(0, int64(vars.Horizon), "makespan")
	var allEnds []ports.VarHandle
	for _, cv := range vars.Clients {
		for _, slot := range cv.Slots {
			allEnds = append(allEnds, slot.End)
		}
	}
	model.AddMaxEquality(makespan, allEnds)
	model.Minimize([]ports.Term{{Var: makespan, Coeff: 1}})
}
