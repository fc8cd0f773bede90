package scheduling

import (
	"testing"

	sched "github.com/mishkahtherapy/brain/core/domain/scheduling"
)

func fixedNormalizedInput() *NormalizedInput {
	norm, err := Normalize(baseAssessments(), baseRooms(), baseActivities(), nil, nil)
	if err != nil {
		panic(err)
	}
	return norm
}

func TestMaterializeClientsOrderAndNumbering(t *testing.T) {
	norm := fixedNormalizedInput()
	scenario := sched.ScenarioAction{
		ClientCounts: map[sched.AssessmentID]sched.ClientCount{
			"assess-optimal": {SingleMale: 1, SingleFemale: 1, CoupleMaleFemale: 1},
		},
	}

	clients, err := MaterializeClients(norm, scenario)
	if err != nil {
		t.Fatalf("MaterializeClients: %v", err)
	}
	if len(clients) != 4 {
		t.Fatalf("expected 4 materialized clients (1 male + 1 female + 1 couple), got %d", len(clients))
	}

	for i, c := range clients {
		if c.ClientNumber != i {
			t.Errorf("client %d: expected contiguous numbering, got ClientNumber=%d", i, c.ClientNumber)
		}
	}

	if clients[0].Sex != sched.SexMale || clients[0].MaritalType != sched.MaritalSingle {
		t.Errorf("expected client 0 to be single male, got %+v", clients[0])
	}
	if clients[1].Sex != sched.SexFemale || clients[1].MaritalType != sched.MaritalSingle {
		t.Errorf("expected client 1 to be single female, got %+v", clients[1])
	}

	couple := clients[2:4]
	if couple[0].CoupleClientNo == nil || couple[1].CoupleClientNo == nil {
		t.Fatal("expected couple partners to carry CoupleClientNo")
	}
	if *couple[0].CoupleClientNo != *couple[1].CoupleClientNo {
		t.Errorf("expected couple partners to share couple_client_no, got %d and %d", *couple[0].CoupleClientNo, *couple[1].CoupleClientNo)
	}
	if couple[0].Sex != sched.SexMale || couple[1].Sex != sched.SexFemale {
		t.Errorf("expected male-female couple order, got %v/%v", couple[0].Sex, couple[1].Sex)
	}
}

func TestMaterializeClientsEmptyScenario(t *testing.T) {
	norm := fixedNormalizedInput()
	_, err := MaterializeClients(norm, sched.ScenarioAction{})
	if err == nil {
		t.Fatal("expected EmptyScenario error")
	}
	var schedErr *sched.Error
	if got, ok := err.(*sched.Error); ok {
		schedErr = got
	}
	if schedErr == nil || schedErr.Kind != sched.KindEmptyScenario {
		t.Errorf("expected EmptyScenario kind, got %v", err)
	}
}

func TestMaterializeClientsPriorityOrdering(t *testing.T) {
	norm := fixedNormalizedInput()
	scenario := sched.ScenarioAction{
		ClientCounts: map[sched.AssessmentID]sched.ClientCount{
			"assess-ultimate": {SingleMale: 1},
			"assess-optimal":  {SingleMale: 1},
		},
	}
	clients, err := MaterializeClients(norm, scenario)
	if err != nil {
		t.Fatalf("MaterializeClients: %v", err)
	}
	if clients[0].AssessmentID != "assess-optimal" {
		t.Errorf("expected Optimal clients to be numbered before Ultimate, got first client from %q", clients[0].AssessmentID)
	}
}
