package scheduling

import (
	"fmt"

	sched "github.com/mishkahtherapy/brain/core/domain/scheduling"
	"github.com/mishkahtherapy/brain/core/ports"
)

// TimeMaxInterval is the tick granularity every start/end is congruent to
// (spec.md §3 invariant 1). Five minutes, matching the facility's slotting
// policy.
const TimeMaxInterval = 5

// TimeEndMinutes is the fixed day-end wall-clock bound, 18:00 expressed in
// minutes from midnight (spec.md §9 note 3 supersedes an older 23:59:59
// draft).
const TimeEndMinutes = 18 * 60

// ModeVars is the per-mode optional interval a slot's chosen-Boolean guards.
type ModeVars struct {
	Mode     Mode
	Chosen   ports.BoolHandle
	Interval ports.IntervalHandle
}

// SlotVars is the master variable set for one (client, slot) pair.
type SlotVars struct {
	UID      sched.UID
	Start    ports.VarHandle
	End      ports.VarHandle
	Duration ports.VarHandle
	Floor    ports.VarHandle
	Order    ports.VarHandle
	Interval ports.IntervalHandle
	Modes    []ModeVars
}

// ClientVars is the full slot list of variables for one materialized client.
type ClientVars struct {
	Client sched.ClientScenario
	Slots  []SlotVars
}

// roomUIDKey indexes chosen-Booleans sharing a slot-uid and a room, for
// cross-assessment room capacity constraints (spec.md §4.3).
type roomUIDKey struct {
	UID    sched.UID
	RoomID sched.RoomID
}

// clientUIDRoomKey indexes one client's chosen-Boolean for a given
// (slot-uid, room), for the couple-same-room constraint (spec.md §4.4.1).
type clientUIDRoomKey struct {
	ClientNumber int
	UID          sched.UID
	RoomID       sched.RoomID
}

// VariableSet is the output of C5: every variable the constraint compiler
// (C6) and objective builder (C7) consume.
type VariableSet struct {
	Clients []ClientVars

	Horizon          int
	TimeStartMinutes int
	NumFloors        int
	SlotsPerClient   int

	ChosenByUIDRoom       map[roomUIDKey][]ports.BoolHandle
	IntervalsByRoom       map[sched.RoomID][]ports.IntervalHandle
	IntervalsByClient     [][]ports.IntervalHandle
	ChosenByClientUIDRoom map[clientUIDRoomKey]ports.BoolHandle
}

// BuildVariables implements C5: it creates the master and per-mode variables
// for every client and slot in the skeleton, and indexes the chosen-Booleans
// the compiler needs for room capacity, no-overlap, and couple constraints.
func BuildVariables(model ports.SolverModel, norm *NormalizedInput, skeletons *SkeletonSet, scenario sched.ScenarioAction) (*VariableSet, error) {
	timeStart, err := sched.ParseTime24h(string(scenario.FirstClientArrivalTime))
	if err != nil {
		return nil, sched.NewConfigurationError(fmt.Sprintf("invalid arrival time %q: %v", scenario.FirstClientArrivalTime, err))
	}
	horizon := TimeEndMinutes - timeStart
	if horizon <= 0 {
		return nil, sched.NewConfigurationError(fmt.Sprintf("arrival time %q leaves no horizon before 18:00", scenario.FirstClientArrivalTime))
	}

	numFloors := 0
	for _, r := range norm.RoomsByID {
		if r.Floor > numFloors {
			numFloors = r.Floor
		}
	}

	vs := &VariableSet{
		Horizon:               horizon,
		TimeStartMinutes:      timeStart,
		NumFloors:             numFloors,
		SlotsPerClient:        skeletons.SlotsPerClient,
		ChosenByUIDRoom:       make(map[roomUIDKey][]ports.BoolHandle),
		IntervalsByRoom:       make(map[sched.RoomID][]ports.IntervalHandle),
		IntervalsByClient:     make([][]ports.IntervalHandle, len(skeletons.Clients)),
		ChosenByClientUIDRoom: make(map[clientUIDRoomKey]ports.BoolHandle),
	}

	for clientIdx, cs := range skeletons.Clients {
		cv := ClientVars{Client: cs.Client}
		for slotIdx, slot := range cs.Slots {
			sv, err := buildSlotVars(model, vs, cs.Client, slotIdx, slot, horizon, numFloors)
			if err != nil {
				return nil, err
			}
			cv.Slots = append(cv.Slots, sv)
			vs.IntervalsByClient[clientIdx] = append(vs.IntervalsByClient[clientIdx], sv.Interval)
		}
		vs.Clients = append(vs.Clients, cv)
	}

	return vs, nil
}

func buildSlotVars(model ports.SolverModel, vs *VariableSet, client sched.ClientScenario, slotIdx int, slot Slot, horizon, numFloors int) (SlotVars, error) {
	minDur, maxDur := modeDurationRange(slot.Modes)
	name := fmt.Sprintf("c%d_s%d", client.ClientNumber, slotIdx)

	sv := SlotVars{
		UID:      slot.UID,
		Start:    model.NewIntVar(0, int64(horizon), name+"_start"),
		End:      model.NewIntVar(0, int64(horizon), name+"_end"),
		Duration: model.NewIntVar(int64(minDur), int64(maxDur), name+"_dur"),
		Floor:    model.NewIntVar(0, int64(numFloors), name+"_floor"),
		Order:    model.NewIntVar(0, int64(vs.SlotsPerClient-1), name+"_order"),
	}
	model.AddModuloEquality(sv.Start, TimeMaxInterval)
	model.AddModuloEquality(sv.End, TimeMaxInterval)
	sv.Interval = model.NewInterval(sv.Start, sv.Duration, sv.End, name+"_iv")

	var chosenLits []ports.BoolHandle
	for _, mode := range slot.Modes {
		floorConst := model.NewConstant(int64(mode.Floor))
		chosen := model.NewBoolVar(fmt.Sprintf("%s_m_%s_%s", name, mode.ActivityID, mode.RoomID))

		model.AddLinearEquality([]ports.Term{{Var: sv.Duration, Coeff: 1}}, int64(mode.Duration), chosen)
		model.AddLinearEquality([]ports.Term{{Var: sv.Floor, Coeff: 1}, {Var: floorConst, Coeff: -1}}, 0, chosen)

		modeInterval := model.NewOptionalInterval(sv.Start, sv.Duration, sv.End, chosen, fmt.Sprintf("%s_%s_%s_iv", name, mode.ActivityID, mode.RoomID))

		sv.Modes = append(sv.Modes, ModeVars{Mode: mode, Chosen: chosen, Interval: modeInterval})
		chosenLits = append(chosenLits, chosen)

		key := roomUIDKey{UID: slot.UID, RoomID: mode.RoomID}
		vs.ChosenByUIDRoom[key] = append(vs.ChosenByUIDRoom[key], chosen)
		vs.IntervalsByRoom[mode.RoomID] = append(vs.IntervalsByRoom[mode.RoomID], modeInterval)
		vs.ChosenByClientUIDRoom[clientUIDRoomKey{ClientNumber: client.ClientNumber, UID: slot.UID, RoomID: mode.RoomID}] = chosen
	}
	if len(chosenLits) == 0 {
		return SlotVars{}, sched.NewInvalidInputError(fmt.Sprintf("slot %d for client %d has no modes", slotIdx, client.ClientNumber))
	}
	model.AddExactlyOne(chosenLits...)

	return sv, nil
}

func modeDurationRange(modes []Mode) (min, max int) {
	if len(modes) == 0 {
		return 0, 0
	}
	min, max = modes[0].Duration, modes[0].Duration
	for _, m := range modes[1:] {
		if m.Duration < min {
			min = m.Duration
		}
		if m.Duration > max {
			max = m.Duration
		}
	}
	return min, max
}
