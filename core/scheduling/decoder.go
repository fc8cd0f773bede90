package scheduling

import (
	"sort"

	sched "github.com/mishkahtherapy/brain/core/domain/scheduling"
	"github.com/mishkahtherapy/brain/core/ports"
)

// Decode implements C9: it reads the solved assignment back into a
// per-client ordered activity list, inserting synthetic transfer entries
// between consecutive cross-floor activities (spec.md §4.7).
func Decode(model ports.SolverModel, skeletons *SkeletonSet, vars *VariableSet) ([]sched.ClientResult, error) {
	results := make([]sched.ClientResult, 0, len(skeletons.Clients))
	for clientIdx, cs := range skeletons.Clients {
		result, err := decodeClient(model, cs, vars.Clients[clientIdx])
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func decodeClient(model ports.SolverModel, cs ClientSkeleton, cv ClientVars) (sched.ClientResult, error) {
	n := len(cv.Slots)
	type decodedSlot struct {
		start int
		entry sched.ScenarioActivity
	}
	decoded := make([]decodedSlot, 0, n)

	for _, sv := range cv.Slots {
		mode, ok := chosenMode(model, sv)
		if !ok {
			return sched.ClientResult{}, sched.NewInfeasibleScheduleError("no chosen mode decoded for a slot")
		}
		start := int(model.Value(sv.Start))
		decoded = append(decoded, decodedSlot{
			start: start,
			entry: sched.ScenarioActivity{
				ActivityID:   mode.Mode.ActivityID,
				ActivityName: mode.Mode.ActivityName,
				AssignedRoom: mode.Mode.RoomID,
				AssignedTime: start / TimeMaxInterval,
				Movable:      false,
			},
		})
	}

	floors := make([]int, n)
	ends := make([]int, n)
	for i, sv := range cv.Slots {
		floors[i] = int(model.Value(sv.Floor))
		ends[i] = int(model.Value(sv.End))
	}

	entries := make([]sched.ActivityEntry, 0, n)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return decoded[order[a]].start < decoded[order[b]].start })

	for pos, idx := range order {
		entries = append(entries, decoded[idx].entry)
		if pos+1 < len(order) {
			nextIdx := order[pos+1]
			if floors[idx] != floors[nextIdx] {
				tstart := ends[idx]
				entries = append(entries, sched.TransferActivity{
					AssignedTime: tstart / TimeMaxInterval,
					DefaultTime:  TimeMaxInterval,
					Movable:      false,
				})
			}
		}
	}

	checkInIdx, hasCheckIn := findSlotByActivityName(cs, "check-in")
	clientRoom := sched.RoomID("")
	startTime := 0
	if hasCheckIn {
		if mode, ok := chosenMode(model, cv.Slots[checkInIdx]); ok {
			clientRoom = mode.Mode.RoomID
		}
		startTime = int(model.Value(cv.Slots[checkInIdx].Start)) / TimeMaxInterval
	}

	return sched.ClientResult{
		ClientNumber:   cs.Client.ClientNumber,
		ClientType:     cs.Client.Priority,
		MaritalType:    cs.Client.MaritalType,
		Sex:            cs.Client.Sex,
		SingleClientNo: cs.Client.SingleClientNo,
		CoupleClientNo: cs.Client.CoupleClientNo,
		ClientRoom:     clientRoom,
		StartTime:      startTime,
		Activities:     entries,
	}, nil
}

func chosenMode(model ports.SolverModel, sv SlotVars) (ModeVars, bool) {
	for _, m := range sv.Modes {
		if model.BoolValue(m.Chosen) {
			return m, true
		}
	}
	return ModeVars{}, false
}
