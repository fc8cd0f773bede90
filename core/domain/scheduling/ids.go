package scheduling

// Identifiers for scheduling entities. Unlike the booking domain these are not
// minted locally with uuid.NewString: they arrive from the external
// assessment/resource/activity/condition fetch and are only ever compared,
// never generated, inside the core.
type (
	RoomID       string
	ActivityID   string
	AssessmentID string
	ConditionID  string
)

// UID is the coalescing key the schedule skeleton builder assigns to a slot.
// Two assessments whose activity lists share a logical step (e.g. "MRI
// Optimal" and "MRI Ultimate") resolve to the same UID so the constraint
// compiler can apply cross-assessment rules (same-room coupling, MRI
// separation) uniformly. For a slot with no cross-assessment sharing, the UID
// equals the underlying ActivityID.
type UID string
