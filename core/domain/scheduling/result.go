package scheduling

// ActivityEntry is one item in a client's decoded activity list: either a
// ScenarioActivity (a real activity in a chosen room) or a TransferActivity
// (a synthetic floor-crossing entry, spec.md §4.7).
type ActivityEntry interface {
	StartTick() int
	isActivityEntry()
}

// ScenarioActivity is a decoded, room-assigned activity.
type ScenarioActivity struct {
	ActivityID   ActivityID
	ActivityName string
	AssignedRoom RoomID
	AssignedTime int // integer count of 5-minute ticks from time_start
	Movable      bool
	Conditions   []ConditionID
}

func (s ScenarioActivity) StartTick() int { return s.AssignedTime }
func (ScenarioActivity) isActivityEntry() {}

// TransferActivity is a synthetic 5-minute entry inserted between two
// consecutive activities on different floors.
type TransferActivity struct {
	AssignedTime int
	DefaultTime  int // always 5
	Movable      bool
}

func (t TransferActivity) StartTick() int { return t.AssignedTime }
func (TransferActivity) isActivityEntry() {}

// ClientResult is the decoded schedule for one materialized client.
type ClientResult struct {
	ClientNumber   int
	ClientType     AssessmentPriority
	MaritalType    ClientMaritalType
	Sex            ClientSex
	SingleClientNo *int
	CoupleClientNo *int
	ClientRoom     RoomID
	StartTime      int
	Activities     []ActivityEntry
}
