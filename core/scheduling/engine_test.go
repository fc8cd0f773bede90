package scheduling

import (
	"context"
	"testing"

	sched "github.com/mishkahtherapy/brain/core/domain/scheduling"
	"github.com/mishkahtherapy/brain/core/scheduling/scheduletest"
)

// TestDecodeInsertsTransferBetweenFloors exercises C2 through C5 for real,
// then drives the decoder (C9) directly over hand-picked "solved" values —
// the Stub never actually searches, so this is a wiring test for the
// decode pass, not a constraint-satisfaction test.
func TestDecodeInsertsTransferBetweenFloors(t *testing.T) {
	norm := fixedNormalizedInput()
	scenario := sched.ScenarioAction{
		FirstClientArrivalTime: "07:00",
		ClientCounts: map[sched.AssessmentID]sched.ClientCount{
			"assess-optimal": {SingleMale: 1},
		},
	}
	clients, err := MaterializeClients(norm, scenario)
	if err != nil {
		t.Fatalf("MaterializeClients: %v", err)
	}
	skeletons, err := BuildSkeletons(norm, clients, scenario)
	if err != nil {
		t.Fatalf("BuildSkeletons: %v", err)
	}

	model := scheduletest.New()
	vars, err := BuildVariables(model, norm, skeletons, scenario)
	if err != nil {
		t.Fatalf("BuildVariables: %v", err)
	}

	if len(vars.Clients) != 1 || len(vars.Clients[0].Slots) != 2 {
		t.Fatalf("expected 1 client with 2 slots (check-in, MRI), got %+v", vars)
	}
	checkIn := vars.Clients[0].Slots[0]
	mri := vars.Clients[0].Slots[1]

	model.SetIntValue(checkIn.Start, 0)
	model.SetIntValue(checkIn.End, 10)
	model.SetIntValue(checkIn.Floor, 1)
	model.SetBoolValue(checkIn.Modes[0].Chosen, true)

	model.SetIntValue(mri.Start, 10)
	model.SetIntValue(mri.End, 90)
	model.SetIntValue(mri.Floor, 2)
	model.SetBoolValue(mri.Modes[0].Chosen, true)

	results, err := Decode(model, skeletons, vars)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 decoded client, got %d", len(results))
	}

	result := results[0]
	if result.ClientRoom != "room-client-1" {
		t.Errorf("expected client room to be the check-in room, got %q", result.ClientRoom)
	}

	var sawTransfer bool
	for _, entry := range result.Activities {
		if _, ok := entry.(sched.TransferActivity); ok {
			sawTransfer = true
		}
	}
	if !sawTransfer {
		t.Error("expected a synthetic TransferActivity between floor 1 and floor 2 slots")
	}
	if len(result.Activities) != 3 {
		t.Errorf("expected check-in, transfer, MRI (3 entries), got %d", len(result.Activities))
	}
}

func TestEngineRunRejectsEmptyScenario(t *testing.T) {
	model := scheduletest.New()
	_, err := Run(context.Background(), model, Request{
		Assessments: baseAssessments(),
		Rooms:       baseRooms(),
		Activities:  baseActivities(),
	})
	if err == nil {
		t.Fatal("expected an error for an empty scenario")
	}
}
