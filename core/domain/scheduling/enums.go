package scheduling

// ResourceType tags whether a resource hosts clients directly or supports them.
type ResourceType string

const (
	ResourceTypeClient ResourceType = "CLIENT"
	ResourceTypeOther  ResourceType = "OTHER"
)

// RoomType is the sub-type of a room, which implies its capacity and the
// activities it can host.
type RoomType string

const (
	// RoomTypeClientRoom is the aggregate tag activities like check-in,
	// lunch, and checkout carry: it resolves to the union of every CLIENT
	// resource-type room (single, double, double-accessible), with marital
	// type narrowing single-vs-double eligibility at mode enumeration time
	// (spec.md §4.2(a)). It is not a Room's own RoomType; only Activity.RoomType
	// uses it, and the normalizer expands it when building rooms_by_type.
	RoomTypeClientRoom RoomType = "CLIENT_ROOM"

	RoomTypeSingleClient    RoomType = "SINGLE_CLIENT_ROOM"
	RoomTypeDoubleClient    RoomType = "DOUBLE_CLIENT_ROOM"
	RoomTypeDoubleAccess    RoomType = "DOUBLE_ACCESSIBLE"
	RoomTypeUltrasound      RoomType = "ULTRASOUND_ROOM"
	RoomTypeMRI15T          RoomType = "MRI_1.5T_ROOM"
	RoomTypeMRI3T           RoomType = "MRI_3T_ROOM"
	RoomTypeCardiac         RoomType = "CARDIAC_ROOM"
	RoomTypeDoctor          RoomType = "DOCTOR_ROOM"
	RoomTypeEyesAndEars     RoomType = "EYES_AND_EARS_ROOM"
	RoomTypePhlebotomy      RoomType = "PHLEBOTOMY_ROOM"
	RoomTypeRadiology       RoomType = "RADIOLOGY_ROOM"
	RoomTypePureSports      RoomType = "PURE_SPORTS_ROOM"
)

// BaseCapacity is the number of simultaneous clients a room of this type can
// host purely by virtue of its type, independent of any activity-specific cap.
// OTHER rooms return 0: their capacity is governed entirely by per-activity
// caps applied by the constraint compiler (e.g. 3 for doctor consultations).
func (rt RoomType) BaseCapacity() int {
	switch rt {
	case RoomTypeSingleClient:
		return 1
	case RoomTypeDoubleClient, RoomTypeDoubleAccess:
		return 2
	default:
		return 0
	}
}

// IsMRI reports whether the room type is one of the MRI variants subject to
// the MRI-separation policy constraint.
func (rt RoomType) IsMRI() bool {
	return rt == RoomTypeMRI15T || rt == RoomTypeMRI3T
}

// AssessmentPriority orders assessments for client-id allocation: Optimal
// clients are numbered first, then Ultimate, then Core.
type AssessmentPriority int

const (
	PriorityOptimal AssessmentPriority = iota
	PriorityUltimate
	PriorityCore
)

// ClientMaritalType distinguishes single clients from couples sharing a
// check-in room.
type ClientMaritalType string

const (
	MaritalSingle ClientMaritalType = "SINGLE"
	MaritalCouple ClientMaritalType = "COUPLE"
)

// ClientSex drives gender-specific activity durations and room eligibility.
type ClientSex string

const (
	SexMale   ClientSex = "MALE"
	SexFemale ClientSex = "FEMALE"
)

// PredicateKind is the temporal/ordinal relation a condition asserts.
type PredicateKind string

const (
	PredicateBefore         PredicateKind = "BEFORE"
	PredicateAfter          PredicateKind = "AFTER"
	PredicateRightAfter     PredicateKind = "RIGHT_AFTER"
	PredicateBetween        PredicateKind = "BETWEEN"
	PredicateWithin         PredicateKind = "WITHIN"
	PredicateInFixedOrderAs PredicateKind = "IN_FIXED_ORDER_AS"
)

// CriteriaKind is the family of value a condition's predicate operates on.
type CriteriaKind string

const (
	CriteriaActivity CriteriaKind = "ACTIVITY"
	CriteriaTime     CriteriaKind = "TIME"
	CriteriaOrder    CriteriaKind = "ORDER"
)
