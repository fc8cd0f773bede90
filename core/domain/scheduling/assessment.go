package scheduling

import "strings"

// Assessment is a named package of activities (Optimal, Ultimate, Core) that
// drives which activity list a client performs. Activities/Conditions are
// populated by the input normalizer (C2), not supplied by the caller.
type Assessment struct {
	ID         AssessmentID
	Name       string
	Priority   AssessmentPriority
	Enabled    bool
	Deleted    bool
	Activities []ActivityID
	Conditions []ConditionID
}

// Usable reports whether the assessment should materialize any clients.
func (a Assessment) Usable() bool {
	return a.Enabled && !a.Deleted
}

// AssessmentPriorityFromName canonicalizes an assessment's display name into
// its scheduling priority tag. Matching is case-insensitive substring, the
// same rule the normalizer uses to decide which activities belong to which
// assessment (spec.md §4.1).
func AssessmentPriorityFromName(name string) (AssessmentPriority, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "optimal") || strings.Contains(lower, "elite"):
		return PriorityOptimal, true
	case strings.Contains(lower, "ultimate"):
		return PriorityUltimate, true
	case strings.Contains(lower, "core"):
		return PriorityCore, true
	default:
		return 0, false
	}
}
