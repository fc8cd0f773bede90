package scheduling

import (
	"fmt"

	sched "github.com/mishkahtherapy/brain/core/domain/scheduling"
	"github.com/mishkahtherapy/brain/core/ports"
)

// TransferResult carries the per-ordered-pair artifacts the objective
// builder (C7) needs: the gap-indicator Booleans collected across every
// client (spec.md §4.4.3).
type TransferResult struct {
	Gaps []ports.BoolHandle
}

// CompileTransferConstraints implements the successor circuit, transfer
// intervals, gap indicators, and MRI separation policy of spec.md §4.4.2,
// §4.4.3 and §4.4.5.
func CompileTransferConstraints(model ports.SolverModel, skeletons *SkeletonSet, vars *VariableSet, scenario sched.ScenarioAction) (*TransferResult, error) {
	result := &TransferResult{}
	var allTransferIntervals []ports.IntervalHandle

	for clientIdx, cs := range skeletons.Clients {
		gaps, transferIntervals, err := compileClientCircuit(model, cs, vars.Clients[clientIdx], vars.Horizon, scenario)
		if err != nil {
			return nil, err
		}
		result.Gaps = append(result.Gaps, gaps...)
		allTransferIntervals = append(allTransferIntervals, transferIntervals...)
	}

	if !scenario.AllowSimultaneousTransfers && len(allTransferIntervals) > 0 {
		model.AddNoOverlap(allTransferIntervals...)
	}

	compileMRISeparation(model, skeletons, vars)

	return result, nil
}

// compileClientCircuit builds one client's successor circuit: a Hamiltonian
// cycle through all of the client's slots plus a synthetic node 0, with
// per-ordered-pair transfer intervals and gap indicators hung off the
// precedes Booleans the circuit selects.
func compileClientCircuit(model ports.SolverModel, cs ClientSkeleton, cv ClientVars, horizon int, scenario sched.ScenarioAction) ([]ports.BoolHandle, []ports.IntervalHandle, error) {
	n := len(cv.Slots)
	if n == 0 {
		return nil, nil, sched.NewInvalidInputError(fmt.Sprintf("client %d has no slots", cs.Client.ClientNumber))
	}

	firstLit := make([]ports.BoolHandle, n)
	lastLit := make([]ports.BoolHandle, n)
	precedes := make(map[[2]int]ports.BoolHandle)

	var arcs []ports.Arc
	for i := 0; i < n; i++ {
		firstLit[i] = model.NewBoolVar(fmt.Sprintf("c%d_first_%d", cs.Client.ClientNumber, i))
		lastLit[i] = model.NewBoolVar(fmt.Sprintf("c%d_last_%d", cs.Client.ClientNumber, i))
		arcs = append(arcs, ports.Arc{Tail: 0, Head: i + 1, Literal: firstLit[i]})
		arcs = append(arcs, ports.Arc{Tail: i + 1, Head: 0, Literal: lastLit[i]})
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			lit := model.NewBoolVar(fmt.Sprintf("c%d_precedes_%d_%d", cs.Client.ClientNumber, i, j))
			precedes[[2]int{i, j}] = lit
			arcs = append(arcs, ports.Arc{Tail: i + 1, Head: j + 1, Literal: lit})
		}
	}
	model.AddCircuit(arcs)

	gapFrom, gapTo, hasGapException := couplesCheckInBloodsPair(cs)

	var gaps []ports.BoolHandle
	var transferIntervals []ports.IntervalHandle

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			lit := precedes[[2]int{i, j}]
			slotI, slotJ := cv.Slots[i], cv.Slots[j]

			model.AddLinearLessOrEqual([]ports.Term{
				{Var: slotI.Order, Coeff: 1}, {Var: slotJ.Order, Coeff: -1},
			}, -1, lit)

			diffFloor := model.NewIsLinearNotEqualVar([]ports.Term{
				{Var: slotI.Floor, Coeff: 1}, {Var: slotJ.Floor, Coeff: -1},
			}, 0, fmt.Sprintf("c%d_difffloor_%d_%d", cs.Client.ClientNumber, i, j))

			crossFloor := reifyAnd(model, fmt.Sprintf("c%d_cross_%d_%d", cs.Client.ClientNumber, i, j), lit, diffFloor)
			sameFloor := reifyAnd(model, fmt.Sprintf("c%d_same_%d_%d", cs.Client.ClientNumber, i, j), lit, model.Not(diffFloor))

			tstart := model.NewIntVar(0, int64(horizon), fmt.Sprintf("c%d_tstart_%d_%d", cs.Client.ClientNumber, i, j))
			tend := model.NewIntVar(0, int64(horizon), fmt.Sprintf("c%d_tend_%d_%d", cs.Client.ClientNumber, i, j))
			model.AddModuloEquality(tstart, TimeMaxInterval)
			transferInterval := model.NewOptionalInterval(tstart, model.NewConstant(TimeMaxInterval), tend, crossFloor,
				fmt.Sprintf("c%d_transfer_%d_%d", cs.Client.ClientNumber, i, j))
			transferIntervals = append(transferIntervals, transferInterval)

			model.AddLinearEquality([]ports.Term{{Var: tstart, Coeff: 1}, {Var: slotI.End, Coeff: -1}}, 0, crossFloor)
			model.AddLinearEquality([]ports.Term{{Var: tend, Coeff: 1}, {Var: slotJ.Start, Coeff: -1}}, 0, crossFloor)

			if hasGapException && i == gapFrom && j == gapTo {
				model.AddLinearLessOrEqual([]ports.Term{{Var: slotI.End, Coeff: 1}, {Var: slotJ.Start, Coeff: -1}}, 0, sameFloor)
				model.AddLinearLessOrEqual([]ports.Term{
					{Var: slotJ.Start, Coeff: 1}, {Var: slotI.End, Coeff: -1},
				}, int64(scenario.MaxGapMinutes), sameFloor)
			} else {
				model.AddLinearEquality([]ports.Term{{Var: slotJ.Start, Coeff: 1}, {Var: slotI.End, Coeff: -1}}, 0, sameFloor)
			}

			consecOrders := model.NewIsLinearLessOrEqualVar([]ports.Term{
				{Var: slotJ.Start, Coeff: 1}, {Var: slotI.End, Coeff: -1},
			}, int64(scenario.MaxGapMinutes), fmt.Sprintf("c%d_consec_%d_%d", cs.Client.ClientNumber, i, j))
			nonzeroDiff := model.NewIsLinearNotEqualVar([]ports.Term{
				{Var: slotJ.Start, Coeff: 1}, {Var: slotI.End, Coeff: -1},
			}, 0, fmt.Sprintf("c%d_nonzero_%d_%d", cs.Client.ClientNumber, i, j))
			existingGap := reifyAnd(model, fmt.Sprintf("c%d_gap_%d_%d", cs.Client.ClientNumber, i, j), sameFloor, consecOrders, nonzeroDiff)
			gaps = append(gaps, existingGap)
		}
	}

	return gaps, transferIntervals, nil
}

// couplesCheckInBloodsPair locates the (check-in, bloods) slot index pair
// the zero-gap rule exempts for couples (spec.md §4.4.2). Returns ok=false
// when the client is not a couple or the pair cannot be found.
func couplesCheckInBloodsPair(cs ClientSkeleton) (from, to int, ok bool) {
	if !cs.Client.IsCoupled() {
		return 0, 0, false
	}
	from, ok1 := findSlotByActivityName(cs, "check-in")
	to, ok2 := findSlotByActivityName(cs, "bloods")
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return from, to, true
}

// reifyAnd introduces a Boolean equivalent to the conjunction of lits.
func reifyAnd(model ports.SolverModel, name string, lits ...ports.BoolHandle) ports.BoolHandle {
	c := model.NewBoolVar(name)
	for _, l := range lits {
		model.AddImplication(c, l)
	}
	negations := make([]ports.BoolHandle, 0, len(lits)+1)
	for _, l := range lits {
		negations = append(negations, model.Not(l))
	}
	negations = append(negations, c)
	model.AddBoolOr(negations...)
	return c
}

// compileMRISeparation implements spec.md §4.4.5: no two MRI slots across
// clients may start, or end, at the same instant.
func compileMRISeparation(model ports.SolverModel, skeletons *SkeletonSet, vars *VariableSet) {
	var mriSlots []SlotVars
	for clientIdx, cs := range skeletons.Clients {
		for slotIdx, slot := range cs.Slots {
			if !slotHasMRIMode(slot) {
				continue
			}
			mriSlots = append(mriSlots, vars.Clients[clientIdx].Slots[slotIdx])
		}
	}
	for i := 0; i < len(mriSlots); i++ {
		for j := i + 1; j < len(mriSlots); j++ {
			model.AddLinearNotEqual([]ports.Term{
				{Var: mriSlots[i].Start, Coeff: 1}, {Var: mriSlots[j].Start, Coeff: -1},
			}, 0)
			model.AddLinearNotEqual([]ports.Term{
				{Var: mriSlots[i].End, Coeff: 1}, {Var: mriSlots[j].End, Coeff: -1},
			}, 0)
		}
	}
}

func slotHasMRIMode(slot Slot) bool {
	for _, m := range slot.Modes {
		if m.RoomType.IsMRI() {
			return true
		}
	}
	return false
}
