package scheduling

// ClientCount is the number of clients of each marital/sex combination
// requested for one assessment.
type ClientCount struct {
	SingleMale         int
	SingleFemale       int
	CoupleMaleMale     int
	CoupleFemaleFemale int
	CoupleMaleFemale   int
}

// Total is the number of client slots (couples count as two) this count
// materializes.
func (c ClientCount) Total() int {
	return c.SingleMale + c.SingleFemale +
		2*(c.CoupleMaleMale+c.CoupleFemaleFemale+c.CoupleMaleFemale)
}

// ScenarioAction is the per-request configuration: arrival time, gap policy,
// staffing, out-of-order rooms, and the client counts per assessment.
type ScenarioAction struct {
	FirstClientArrivalTime     Time24h
	MaxGapMinutes              int
	DoctorsOnDuty              int
	AllowSimultaneousTransfers bool
	OutOfOrderRoomIDs          []RoomID
	ClientCounts               map[AssessmentID]ClientCount
}

// IsEmpty reports whether no clients were requested at all (spec.md §7
// EmptyScenario).
func (s ScenarioAction) IsEmpty() bool {
	for _, c := range s.ClientCounts {
		if c.Total() > 0 {
			return false
		}
	}
	return true
}

// ClientScenario is one materialized client (or one partner of a couple)
// produced by C3, in the stable order the engine assigns client numbers.
type ClientScenario struct {
	ClientNumber  int
	AssessmentID  AssessmentID
	Priority      AssessmentPriority
	MaritalType   ClientMaritalType
	Sex           ClientSex
	SingleClientNo *int
	CoupleClientNo *int
	Label         string
}

// IsCoupled reports whether this client shares a check-in room with a
// partner.
func (c ClientScenario) IsCoupled() bool {
	return c.MaritalType == MaritalCouple
}
