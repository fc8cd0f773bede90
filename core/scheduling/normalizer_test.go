package scheduling

import (
	"errors"
	"testing"

	sched "github.com/mishkahtherapy/brain/core/domain/scheduling"
)

func baseActivities() []sched.Activity {
	return []sched.Activity{
		{ID: "act-checkin", Name: "Check-in", RoomType: sched.RoomTypeClientRoom, ResourceType: sched.ResourceTypeClient, TimeAllocations: sched.TimeAllocation{Default: 10}, Enabled: true},
		{ID: "act-mri-optimal", Name: "MRI Optimal", RoomType: sched.RoomTypeMRI15T, TimeAllocations: sched.TimeAllocation{Default: 80}, Enabled: true},
		{ID: "act-mri-ultimate", Name: "MRI Ultimate", RoomType: sched.RoomTypeMRI15T, TimeAllocations: sched.TimeAllocation{Default: 80}, Enabled: true},
		{ID: "act-disabled", Name: "Disabled Activity", RoomType: sched.RoomTypeDoctor, Enabled: false},
	}
}

func baseRooms() []sched.Room {
	return []sched.Room{
		{ID: "room-client-1", Name: "Client Room 1", ResourceType: sched.ResourceTypeClient, RoomType: sched.RoomTypeSingleClient, Floor: 1, Available: true},
		{ID: "room-mri-1", Name: "MRI 1", ResourceType: sched.ResourceTypeOther, RoomType: sched.RoomTypeMRI15T, Floor: 2, Available: true},
		{ID: "room-out-of-order", Name: "Broken MRI", ResourceType: sched.ResourceTypeOther, RoomType: sched.RoomTypeMRI15T, Floor: 2, Available: true},
	}
}

func baseAssessments() []sched.Assessment {
	return []sched.Assessment{
		{ID: "assess-optimal", Name: "Optimal", Priority: sched.PriorityOptimal, Enabled: true},
		{ID: "assess-ultimate", Name: "Ultimate", Priority: sched.PriorityUltimate, Enabled: true},
	}
}

func TestNormalizeDropsDisabledAndOutOfOrder(t *testing.T) {
	norm, err := Normalize(baseAssessments(), baseRooms(), baseActivities(), nil, []sched.RoomID{"room-out-of-order"})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if _, ok := norm.ActivitiesByID["act-disabled"]; ok {
		t.Error("disabled activity should be dropped")
	}
	if _, ok := norm.RoomsByID["room-out-of-order"]; ok {
		t.Error("out-of-order room should be dropped from rooms_by_id")
	}
	for _, r := range norm.RoomsByType[sched.RoomTypeMRI15T] {
		if r.ID == "room-out-of-order" {
			t.Error("out-of-order room should be dropped from rooms_by_type")
		}
	}
}

func TestNormalizeBuildsClientRoomAggregate(t *testing.T) {
	norm, err := Normalize(baseAssessments(), baseRooms(), baseActivities(), nil, nil)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	clientRooms := norm.RoomsByType[sched.RoomTypeClientRoom]
	if len(clientRooms) != 1 || clientRooms[0].ID != "room-client-1" {
		t.Errorf("expected CLIENT_ROOM aggregate to contain room-client-1, got %+v", clientRooms)
	}
}

func TestNormalizeExcludesForeignAssessmentActivities(t *testing.T) {
	norm, err := Normalize(baseAssessments(), baseRooms(), baseActivities(), nil, nil)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	positions, ok := norm.AssessmentPositions["assess-optimal"]
	if !ok {
		t.Fatal("expected positions for assess-optimal")
	}
	for _, bucket := range positions {
		for _, a := range bucket {
			if a.ID == "act-mri-ultimate" {
				t.Error("Optimal's positions should not include Ultimate's MRI variant")
			}
		}
	}
}

func TestNormalizeRejectsUnknownConditionReference(t *testing.T) {
	conditions := []sched.Condition{
		{ID: "cond-1", ActivityID: "does-not-exist", Enabled: true},
	}
	_, err := Normalize(baseAssessments(), baseRooms(), baseActivities(), conditions, nil)
	if err == nil {
		t.Fatal("expected InvalidInput for unresolved condition activity reference")
	}
	var schedErr *sched.Error
	if !errors.As(err, &schedErr) || schedErr.Kind != sched.KindInvalidInput {
		t.Errorf("expected InvalidInput error, got %v", err)
	}
}

func TestNormalizeRejectsEmptyActivityCatalog(t *testing.T) {
	_, err := Normalize(baseAssessments(), baseRooms(), nil, nil, nil)
	if !errors.Is(err, sched.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
