package scheduling

import (
	"fmt"

	sched "github.com/mishkahtherapy/brain/core/domain/scheduling"
)

// MaterializeClients implements C3: it expands the scenario's per-assessment
// client counts into an ordered, contiguously-numbered client list. Client
// ids are contiguous starting at 0 across assessments in assessment priority
// order; couple partners occupy consecutive ids (k, k+1) and share
// CoupleClientNo, materialized as adjacent pairs rather than paired up after
// the fact (spec.md §9 "Couple ordering").
func MaterializeClients(norm *NormalizedInput, scenario sched.ScenarioAction) ([]sched.ClientScenario, error) {
	if scenario.IsEmpty() {
		return nil, sched.NewEmptyScenarioError("no clients requested across any assessment")
	}

	var clients []sched.ClientScenario
	clientNo := 0
	coupleNo := 0

	singleCounter := map[sched.AssessmentPriority]map[sched.ClientSex]int{}
	labelCounter := func(priority sched.AssessmentPriority, sex sched.ClientSex) int {
		if singleCounter[priority] == nil {
			singleCounter[priority] = map[sched.ClientSex]int{}
		}
		singleCounter[priority][sex]++
		return singleCounter[priority][sex]
	}

	for _, assessmentID := range norm.AssessmentOrder {
		assessment := norm.Assessments[assessmentID]
		count, ok := scenario.ClientCounts[assessmentID]
		if !ok {
			continue
		}

		addSingle := func(sex sched.ClientSex, n int) {
			for i := 0; i < n; i++ {
				no := labelCounter(assessment.Priority, sex)
				clients = append(clients, sched.ClientScenario{
					ClientNumber:   clientNo,
					AssessmentID:   assessmentID,
					Priority:       assessment.Priority,
					MaritalType:    sched.MaritalSingle,
					Sex:            sex,
					SingleClientNo: &no,
					Label:          fmt.Sprintf("%s %s #%d", assessment.Name, sex, no),
				})
				clientNo++
			}
		}

		addCouple := func(first, second sched.ClientSex, n int) {
			for i := 0; i < n; i++ {
				no := coupleNo
				coupleNo++
				for _, sex := range [2]sched.ClientSex{first, second} {
					clients = append(clients, sched.ClientScenario{
						ClientNumber:   clientNo,
						AssessmentID:   assessmentID,
						Priority:       assessment.Priority,
						MaritalType:    sched.MaritalCouple,
						Sex:            sex,
						CoupleClientNo: intPtr(no),
						Label:          fmt.Sprintf("%s couple #%d (%s)", assessment.Name, no, sex),
					})
					clientNo++
				}
			}
		}

		addSingle(sched.SexMale, count.SingleMale)
		addSingle(sched.SexFemale, count.SingleFemale)
		addCouple(sched.SexMale, sched.SexMale, count.CoupleMaleMale)
		addCouple(sched.SexFemale, sched.SexFemale, count.CoupleFemaleFemale)
		addCouple(sched.SexMale, sched.SexFemale, count.CoupleMaleFemale)
	}

	return clients, nil
}

func intPtr(v int) *int { return &v }
