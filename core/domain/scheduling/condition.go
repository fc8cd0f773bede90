package scheduling

// BetweenValue carries the two operands of a BETWEEN condition. Depending on
// Criteria, Start/End hold either clock times ("HH:MM"), activity names, or
// signed order integers encoded as strings.
type BetweenValue struct {
	Start string
	End   string
}

// Condition is a single rule an assessment's activities must satisfy.
// Predicate x Criteria selects one row of the semantics table in spec.md
// §4.4.4; Value/Between carry whichever operand(s) that row needs.
type Condition struct {
	ID           ConditionID
	AssessmentID AssessmentID
	ActivityID   ActivityID
	Predicate    PredicateKind
	Criteria     CriteriaKind
	Value        string
	Between      BetweenValue
	Enabled      bool
	Mandatory    bool
	Deleted      bool
}

// Alive reports whether the condition survives normalization (C2 drops
// anything disabled or deleted, uniformly across every entity kind).
func (c Condition) Alive() bool {
	return c.Enabled && !c.Deleted
}

// Compilable reports whether the condition must be translated into a
// constraint (C6 only compiles mandatory conditions; non-mandatory ones are
// advisory and left for a future UI to surface, per spec.md §4.4.4).
func (c Condition) Compilable() bool {
	return c.Alive() && c.Mandatory
}
