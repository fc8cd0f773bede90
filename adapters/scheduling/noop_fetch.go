// Package scheduling holds the fetch/persistence adapters for the scheduling
// domain. Fetching assessments/rooms/activities/conditions from whatever
// system of record the host application uses, and persisting the decoded
// schedule, are explicit Non-goals (spec.md §1): they are "external
// collaborators, referenced only by interface." NoopCatalog below exists
// purely to show the wiring shape in main.go; a host application replaces it
// with a real REST client, database repository, or file loader that
// implements the same ports.*Fetcher/ports.ScheduleWriter interfaces.
package scheduling

import sched "github.com/mishkahtherapy/brain/core/domain/scheduling"

// NoopCatalog implements every ports.*Fetcher and ports.ScheduleWriter with
// empty catalogs and a discarded write. It is never meant to produce a real
// schedule; it documents which interfaces a real adapter must satisfy.
type NoopCatalog struct{}

func (NoopCatalog) FetchAssessments() ([]sched.Assessment, error) { return nil, nil }
func (NoopCatalog) FetchResources() ([]sched.Room, error)         { return nil, nil }
func (NoopCatalog) FetchActivities() ([]sched.Activity, error)    { return nil, nil }
func (NoopCatalog) FetchConditions() ([]sched.Condition, error)   { return nil, nil }

func (NoopCatalog) WriteSchedule(results []sched.ClientResult) error { return nil }
