package ports

import "github.com/mishkahtherapy/brain/core/domain/scheduling"

// The following fetch interfaces are the external collaborators spec.md §1
// calls out as out of scope: the authenticated REST client, its JSON
// deserialization, and persistence of the produced schedule all belong to the
// host application. The core only ever depends on these interfaces so the
// request pipeline (C2 onward) can be driven by any fetch implementation,
// including a test double.

// AssessmentFetcher retrieves the enabled/disabled assessment catalog.
type AssessmentFetcher interface {
	FetchAssessments() ([]scheduling.Assessment, error)
}

// ResourceFetcher retrieves the room catalog.
type ResourceFetcher interface {
	FetchResources() ([]scheduling.Room, error)
}

// ActivityFetcher retrieves the activity catalog.
type ActivityFetcher interface {
	FetchActivities() ([]scheduling.Activity, error)
}

// ConditionFetcher retrieves the condition catalog.
type ConditionFetcher interface {
	FetchConditions() ([]scheduling.Condition, error)
}

// ScheduleWriter persists a produced schedule. Out of scope per spec.md §1;
// defined so the generate-schedule usecase can optionally hand its result to
// a host-supplied sink without depending on any particular store.
type ScheduleWriter interface {
	WriteSchedule(results []scheduling.ClientResult) error
}
