package scheduling

import (
	"strings"

	sched "github.com/mishkahtherapy/brain/core/domain/scheduling"
	"github.com/mishkahtherapy/brain/core/ports"
)

// CompileGeneralConstraints implements the per-client and per-room rules of
// spec.md §4.4.1: no-overlap, check-in/lunch/checkout and first/final
// consultation room equality, couple co-location, and room capacity caps.
func CompileGeneralConstraints(model ports.SolverModel, norm *NormalizedInput, skeletons *SkeletonSet, vars *VariableSet) error {
	for clientIdx, cv := range vars.Clients {
		model.AddNoOverlap(vars.IntervalsByClient[clientIdx]...)
		if err := compileSameRoomPairs(model, skeletons.Clients[clientIdx], cv); err != nil {
			return err
		}
	}

	if err := compileCoupleCoLocation(model, skeletons, vars); err != nil {
		return err
	}

	compileRoomNoOverlap(model, norm, vars)
	compileRoomCapacityCaps(model, norm, skeletons, vars)

	return nil
}

// compileSameRoomPairs ties check-in to lunch and checkout, and first
// consultation to final consultation, by requiring the chosen room-Boolean
// to match across the pair for every candidate room.
func compileSameRoomPairs(model ports.SolverModel, skeleton ClientSkeleton, cv ClientVars) error {
	pairs := [][2]string{
		{"check-in", "lunch"},
		{"check-in", "checkout"},
		{"first consult", "final consult"},
	}
	for _, pair := range pairs {
		aIdx, aOK := findSlotByActivityName(skeleton, pair[0])
		bIdx, bOK := findSlotByActivityName(skeleton, pair[1])
		if !aOK || !bOK {
			continue
		}
		linkSameRoom(model, cv.Slots[aIdx], cv.Slots[bIdx])
	}
	return nil
}

// findSlotByActivityName locates the slot index whose modes include an
// activity whose name contains needle (case-insensitive), the same fuzzy
// matching the normalizer itself uses to group assessment variants.
func findSlotByActivityName(skeleton ClientSkeleton, needle string) (int, bool) {
	for i, slot := range skeleton.Slots {
		for _, m := range slot.Modes {
			if strings.Contains(strings.ToLower(m.ActivityName), needle) {
				return i, true
			}
		}
	}
	return 0, false
}

// linkSameRoom requires that, for every room common to both slots, the two
// chosen-Booleans agree.
func linkSameRoom(model ports.SolverModel, a, b SlotVars) {
	byRoom := make(map[sched.RoomID]ports.BoolHandle, len(b.Modes))
	for _, m := range b.Modes {
		byRoom[m.Mode.RoomID] = m.Chosen
	}
	for _, m := range a.Modes {
		other, ok := byRoom[m.Mode.RoomID]
		if !ok {
			continue
		}
		model.AddLinearEquality([]ports.Term{{Var: boolAsVar(m.Chosen), Coeff: 1}, {Var: boolAsVar(other), Coeff: -1}}, 0)
	}
}

// boolAsVar is a narrowing shim: BoolHandle and VarHandle share the same
// underlying arena in every SolverModel implementation (a Boolean is a
// 0/1 IntVar), so a Boolean's handle doubles as a Term's Var when building
// Boolean-equality linear constraints.
func boolAsVar(b ports.BoolHandle) ports.VarHandle {
	return ports.VarHandle(b)
}

// compileCoupleCoLocation requires a couple's two partners to share the same
// check-in room and to start check-in simultaneously (spec.md §4.4.1).
func compileCoupleCoLocation(model ports.SolverModel, skeletons *SkeletonSet, vars *VariableSet) error {
	byCoupleNo := map[int][]int{}
	for idx, cs := range skeletons.Clients {
		if cs.Client.CoupleClientNo == nil {
			continue
		}
		byCoupleNo[*cs.Client.CoupleClientNo] = append(byCoupleNo[*cs.Client.CoupleClientNo], idx)
	}
	for _, members := range byCoupleNo {
		if len(members) != 2 {
			continue
		}
		aIdx, bIdx := members[0], members[1]
		aCheckIn, aOK := findSlotByActivityName(skeletons.Clients[aIdx], "check-in")
		bCheckIn, bOK := findSlotByActivityName(skeletons.Clients[bIdx], "check-in")
		if !aOK || !bOK {
			continue
		}
		a := vars.Clients[aIdx].Slots[aCheckIn]
		b := vars.Clients[bIdx].Slots[bCheckIn]
		linkSameRoom(model, a, b)
		model.AddLinearEquality([]ports.Term{{Var: a.Start, Coeff: 1}, {Var: b.Start, Coeff: -1}}, 0)
	}
	return nil
}

// compileRoomNoOverlap enforces capacity-1 rooms are never double-booked.
// Doctor rooms are left to the cap-3 rule in compileRoomCapacityCaps.
func compileRoomNoOverlap(model ports.SolverModel, norm *NormalizedInput, vars *VariableSet) {
	for roomID, intervals := range vars.IntervalsByRoom {
		room, ok := norm.RoomsByID[roomID]
		if !ok || room.RoomType.BaseCapacity() > 1 || room.RoomType == sched.RoomTypeDoctor {
			continue
		}
		model.AddNoOverlap(intervals...)
	}
}

// compileRoomCapacityCaps applies the per-activity capacity ceilings of
// spec.md §4.4.1: every (slot-uid, client room) pair caps at the room's own
// base capacity (plus, in rooms of capacity 2, an at-most-one cap over single
// clients for that same pair), and doctor-room bookings cap at three
// concurrent clients.
func compileRoomCapacityCaps(model ports.SolverModel, norm *NormalizedInput, skeletons *SkeletonSet, vars *VariableSet) {
	singleByUIDRoom := make(map[roomUIDKey][]ports.BoolHandle)
	for clientIdx, cs := range skeletons.Clients {
		if cs.Client.IsCoupled() {
			continue
		}
		for slotIdx, slot := range cs.Slots {
			for _, m := range vars.Clients[clientIdx].Slots[slotIdx].Modes {
				room, ok := norm.RoomsByID[m.Mode.RoomID]
				if !ok || room.ResourceType != sched.ResourceTypeClient {
					continue
				}
				key := roomUIDKey{UID: slot.UID, RoomID: m.Mode.RoomID}
				singleByUIDRoom[key] = append(singleByUIDRoom[key], m.Chosen)
			}
		}
	}

	for key, lits := range vars.ChosenByUIDRoom {
		room, ok := norm.RoomsByID[key.RoomID]
		if !ok {
			continue
		}
		switch {
		case room.ResourceType == sched.ResourceTypeClient:
			cap := room.RoomType.BaseCapacity()
			if cap <= 0 {
				cap = 1
			}
			model.AddLinearLessOrEqual(boolTerms(lits), int64(cap))
			// A room of capacity 2 may host one couple's two partners, but
			// never two unrelated single clients at once.
			if singles := singleByUIDRoom[key]; cap > 1 && len(singles) > 1 {
				model.AddAtMostOne(singles...)
			}
		case room.RoomType == sched.RoomTypeDoctor:
			model.AddLinearLessOrEqual(boolTerms(lits), 3)
		}
	}
}

func boolTerms(lits []ports.BoolHandle) []ports.Term {
	terms := make([]ports.Term, len(lits))
	for i, l := range lits {
		terms[i] = ports.Term{Var: boolAsVar(l), Coeff: 1}
	}
	return terms
}
