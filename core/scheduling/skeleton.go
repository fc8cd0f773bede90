package scheduling

import (
	"fmt"
	"sort"

	sched "github.com/mishkahtherapy/brain/core/domain/scheduling"
)

// Mode is one concrete (activity, room, duration) choice for a slot.
type Mode struct {
	ActivityID   sched.ActivityID
	ActivityName string
	RoomType     sched.RoomType
	RoomID       sched.RoomID
	Floor        int
	Duration     int
}

// Slot is one position in a client's ordered activity sequence.
type Slot struct {
	UID        sched.UID
	Activities []sched.ActivityID
	Modes      []Mode
}

// ClientSkeleton is the full slot list for one materialized client.
type ClientSkeleton struct {
	Client sched.ClientScenario
	Slots  []Slot
}

// SkeletonSet is the output of C4.
type SkeletonSet struct {
	Clients        []ClientSkeleton
	ActivityToUID  map[sched.ActivityID]sched.UID
	SlotsPerClient int
}

// BuildSkeletons implements C4: for every client, enumerate the ordered
// slot list and, for every slot, the eligible (activity, room, duration)
// modes.
func BuildSkeletons(norm *NormalizedInput, clients []sched.ClientScenario, scenario sched.ScenarioAction) (*SkeletonSet, error) {
	n, err := commonSlotCount(norm, clients)
	if err != nil {
		return nil, err
	}

	activityToUID := make(map[sched.ActivityID]sched.UID)
	for i := 0; i < n; i++ {
		assignUIDForPosition(norm, clients, i, activityToUID)
	}

	set := &SkeletonSet{ActivityToUID: activityToUID, SlotsPerClient: n}
	for _, client := range clients {
		skeleton, err := buildClientSkeleton(norm, client, scenario, activityToUID, n)
		if err != nil {
			return nil, err
		}
		set.Clients = append(set.Clients, skeleton)
	}
	return set, nil
}

// commonSlotCount validates the "all assessments have the same activities"
// assumption: every enabled
// assessment with at least one requested client must offer the same number
// of logical slot positions.
func commonSlotCount(norm *NormalizedInput, clients []sched.ClientScenario) (int, error) {
	seen := map[sched.AssessmentID]bool{}
	n := -1
	for _, c := range clients {
		if seen[c.AssessmentID] {
			continue
		}
		seen[c.AssessmentID] = true
		positions, ok := norm.AssessmentPositions[c.AssessmentID]
		if !ok {
			return 0, sched.NewInvalidInputError("client references unresolved assessment", string(c.AssessmentID))
		}
		if len(positions) == 0 {
			return 0, sched.NewInvalidInputError("assessment has no activities after normalization", string(c.AssessmentID))
		}
		if n == -1 {
			n = len(positions)
		} else if len(positions) != n {
			return 0, sched.NewInvalidInputError(fmt.Sprintf(
				"assessment %q offers %d activity positions, expected %d (all assessments must align)",
				c.AssessmentID, len(positions), n))
		}
	}
	if n == -1 {
		return 0, sched.NewEmptyScenarioError("no clients materialized")
	}
	return n, nil
}

// assignUIDForPosition coalesces the uid for logical position i: every
// activity offered at position i, across every assessment with a
// materialized client, shares one uid so the constraint compiler can apply
// cross-assessment rules uniformly (spec.md §4.2 "uid"). The uid is the
// lexicographically smallest ActivityID in the union — deterministic, and an
// actual ActivityID as spec.md requires for the non-shared case.
func assignUIDForPosition(norm *NormalizedInput, clients []sched.ClientScenario, i int, out map[sched.ActivityID]sched.UID) {
	seenAssessment := map[sched.AssessmentID]bool{}
	var ids []sched.ActivityID
	for _, c := range clients {
		if seenAssessment[c.AssessmentID] {
			continue
		}
		seenAssessment[c.AssessmentID] = true
		bucket := norm.AssessmentPositions[c.AssessmentID][i]
		for _, a := range bucket {
			ids = append(ids, a.ID)
		}
	}
	if len(ids) == 0 {
		return
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	uid := sched.UID(ids[0])
	for _, id := range ids {
		out[id] = uid
	}
}

func buildClientSkeleton(
	norm *NormalizedInput,
	client sched.ClientScenario,
	scenario sched.ScenarioAction,
	activityToUID map[sched.ActivityID]sched.UID,
	n int,
) (ClientSkeleton, error) {
	positions := norm.AssessmentPositions[client.AssessmentID]
	slots := make([]Slot, 0, n)
	for i := 0; i < n; i++ {
		bucket := positions[i]
		slot := Slot{}
		for _, activity := range bucket {
			slot.Activities = append(slot.Activities, activity.ID)
			if slot.UID == "" {
				slot.UID = activityToUID[activity.ID]
			}
			modes, err := enumerateModes(norm, activity, client, scenario)
			if err != nil {
				return ClientSkeleton{}, err
			}
			slot.Modes = append(slot.Modes, modes...)
		}
		if len(slot.Modes) == 0 {
			return ClientSkeleton{}, sched.NewInvalidInputError(
				fmt.Sprintf("no eligible room for client %d at slot position %d", client.ClientNumber, i),
			)
		}
		slots = append(slots, slot)
	}
	return ClientSkeleton{Client: client, Slots: slots}, nil
}

// enumerateModes implements the room-eligibility filters of spec.md §4.2:
// couples are excluded from single-client rooms, and doctor-room slots are
// capped at the number of doctors on duty.
func enumerateModes(norm *NormalizedInput, activity sched.Activity, client sched.ClientScenario, scenario sched.ScenarioAction) ([]Mode, error) {
	candidates := norm.RoomsByType[activity.RoomType]
	if len(candidates) == 0 {
		return nil, nil
	}

	rooms := make([]sched.Room, 0, len(candidates))
	for _, r := range candidates {
		if client.IsCoupled() && r.RoomType == sched.RoomTypeSingleClient {
			continue
		}
		rooms = append(rooms, r)
	}

	if activity.RoomType == sched.RoomTypeDoctor && scenario.DoctorsOnDuty > 0 && len(rooms) > scenario.DoctorsOnDuty {
		rooms = rooms[:scenario.DoctorsOnDuty]
	}

	duration := activity.Duration(client.Sex)
	modes := make([]Mode, 0, len(rooms))
	for _, r := range rooms {
		modes = append(modes, Mode{
			ActivityID:   activity.ID,
			ActivityName: activity.Name,
			RoomType:     r.RoomType,
			RoomID:       r.ID,
			Floor:        r.Floor,
			Duration:     duration,
		})
	}
	return modes, nil
}
