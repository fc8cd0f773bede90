// Package scheduling implements the constraint-scheduling engine: the
// translation of assessments/activities/rooms/conditions into a finite-domain
// constraint model, the solve, and the decode back into per-client
// schedules (spec.md §2, components C2 through C9).
package scheduling

import (
	"fmt"
	"sort"
	"strings"

	sched "github.com/mishkahtherapy/brain/core/domain/scheduling"
)

// NormalizedInput is the output of C2: the filtered, indexed view of the
// static catalogs every later stage reads from.
type NormalizedInput struct {
	RoomsByType map[sched.RoomType][]sched.Room
	RoomsByID   map[sched.RoomID]sched.Room

	ActivitiesByNameLower map[string][]sched.Activity
	ActivitiesByID        map[sched.ActivityID]sched.Activity

	Assessments     map[sched.AssessmentID]sched.Assessment
	AssessmentOrder []sched.AssessmentID // stable: Optimal, then Ultimate, then Core

	// AssessmentPositions[a][i] is the set of candidate activities an
	// enabled assessment a offers at logical slot position i, in the order
	// they first appear in the raw activity list. Every enabled assessment
	// with at least one requested client must agree on len(positions) —
	// this mirrors the original solver's documented assumption that "all
	// assessments have the same activities" and is validated by
	// BuildSkeletons.
	AssessmentPositions map[sched.AssessmentID][][]sched.Activity

	Conditions map[sched.ConditionID]sched.Condition
}

// Normalize implements C2: it drops disabled/deleted entities, removes
// out-of-order rooms, and builds the indexes later stages rely on.
func Normalize(
	rawAssessments []sched.Assessment,
	rawRooms []sched.Room,
	rawActivities []sched.Activity,
	rawConditions []sched.Condition,
	outOfOrderRoomIDs []sched.RoomID,
) (*NormalizedInput, error) {
	if len(rawActivities) == 0 {
		return nil, sched.NewInvalidInputError("activity catalog is empty")
	}
	if len(rawRooms) == 0 {
		return nil, sched.NewInvalidInputError("resource catalog is empty")
	}

	outOfOrder := make(map[sched.RoomID]bool, len(outOfOrderRoomIDs))
	for _, id := range outOfOrderRoomIDs {
		outOfOrder[id] = true
	}

	knownRoomIDs := make(map[sched.RoomID]bool, len(rawRooms))
	roomsByID := make(map[sched.RoomID]sched.Room)
	roomsByType := make(map[sched.RoomType][]sched.Room)
	var clientRooms []sched.Room
	for _, r := range rawRooms {
		knownRoomIDs[r.ID] = true
		if !r.Enabled() || outOfOrder[r.ID] {
			continue
		}
		if r.Name == "" {
			return nil, sched.NewInvalidInputError("room missing required name", string(r.ID))
		}
		roomsByID[r.ID] = r
		roomsByType[r.RoomType] = append(roomsByType[r.RoomType], r)
		if r.ResourceType == sched.ResourceTypeClient {
			clientRooms = append(clientRooms, r)
		}
	}
	for t := range roomsByType {
		sortRoomsByID(roomsByType[t])
	}
	sortRoomsByID(clientRooms)
	roomsByType[sched.RoomTypeClientRoom] = clientRooms

	knownActivityIDs := make(map[sched.ActivityID]bool, len(rawActivities))
	activitiesByID := make(map[sched.ActivityID]sched.Activity)
	activitiesByNameLower := make(map[string][]sched.Activity)
	var nameOrder []string
	seenName := make(map[string]bool)
	for _, a := range rawActivities {
		knownActivityIDs[a.ID] = true
		if !a.Usable() {
			continue
		}
		if a.Name == "" {
			return nil, sched.NewInvalidInputError("activity missing required name", string(a.ID))
		}
		activitiesByID[a.ID] = a
		key := strings.ToLower(a.Name)
		activitiesByNameLower[key] = append(activitiesByNameLower[key], a)
		if !seenName[key] {
			seenName[key] = true
			nameOrder = append(nameOrder, key)
		}
	}

	knownAssessmentIDs := make(map[sched.AssessmentID]bool, len(rawAssessments))
	assessments := make(map[sched.AssessmentID]sched.Assessment)
	var enabledAssessments []sched.Assessment
	for _, a := range rawAssessments {
		knownAssessmentIDs[a.ID] = true
		if !a.Usable() {
			continue
		}
		if a.Name == "" {
			return nil, sched.NewInvalidInputError("assessment missing required name", string(a.ID))
		}
		if p, ok := sched.AssessmentPriorityFromName(a.Name); ok {
			a.Priority = p
		}
		enabledAssessments = append(enabledAssessments, a)
	}
	sort.SliceStable(enabledAssessments, func(i, j int) bool {
		return enabledAssessments[i].Priority < enabledAssessments[j].Priority
	})

	positions := make(map[sched.AssessmentID][][]sched.Activity, len(enabledAssessments))
	var order []sched.AssessmentID
	for _, a := range enabledAssessments {
		buckets := bucketsForAssessment(a, enabledAssessments, nameOrder, activitiesByNameLower)
		a.Activities = primaryActivityIDs(buckets)
		assessments[a.ID] = a
		positions[a.ID] = buckets
		order = append(order, a.ID)
	}

	conditions := make(map[sched.ConditionID]sched.Condition)
	for _, c := range rawConditions {
		if !c.Alive() {
			continue
		}
		if c.ActivityID != "" && !knownActivityIDs[c.ActivityID] {
			return nil, sched.NewInvalidInputError("condition references unknown activity", string(c.ID), string(c.ActivityID))
		}
		if c.AssessmentID != "" && !knownAssessmentIDs[c.AssessmentID] {
			return nil, sched.NewInvalidInputError("condition references unknown assessment", string(c.ID), string(c.AssessmentID))
		}
		conditions[c.ID] = c
	}

	return &NormalizedInput{
		RoomsByType:           roomsByType,
		RoomsByID:             roomsByID,
		ActivitiesByNameLower: activitiesByNameLower,
		ActivitiesByID:        activitiesByID,
		Assessments:           assessments,
		AssessmentOrder:       order,
		AssessmentPositions:   positions,
		Conditions:            conditions,
	}, nil
}

// bucketsForAssessment selects, in first-appearance order, the name buckets
// that belong to assessment a: a bucket belongs to a unless its name contains
// another enabled assessment's name as a case-insensitive substring
// (spec.md §4.1).
func bucketsForAssessment(
	a sched.Assessment,
	enabled []sched.Assessment,
	nameOrder []string,
	byName map[string][]sched.Activity,
) [][]sched.Activity {
	var buckets [][]sched.Activity
	for _, key := range nameOrder {
		foreign := false
		for _, other := range enabled {
			if other.ID == a.ID {
				continue
			}
			if strings.Contains(key, strings.ToLower(other.Name)) {
				foreign = true
				break
			}
		}
		if foreign {
			continue
		}
		buckets = append(buckets, byName[key])
	}
	return buckets
}

func primaryActivityIDs(buckets [][]sched.Activity) []sched.ActivityID {
	ids := make([]sched.ActivityID, 0, len(buckets))
	for _, bucket := range buckets {
		if len(bucket) > 0 {
			ids = append(ids, bucket[0].ID)
		}
	}
	return ids
}

func sortRoomsByID(rooms []sched.Room) {
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
}

// RequireAssessment resolves an assessment id or returns InvalidInput.
func (n *NormalizedInput) RequireAssessment(id sched.AssessmentID) (sched.Assessment, error) {
	a, ok := n.Assessments[id]
	if !ok {
		return sched.Assessment{}, sched.NewInvalidInputError(
			fmt.Sprintf("assessment %q is not enabled or does not exist", id), string(id))
	}
	return a, nil
}
