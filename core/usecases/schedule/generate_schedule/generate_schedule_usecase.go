package generate_schedule

import (
	"context"
	"log/slog"
	"time"

	sched "github.com/mishkahtherapy/brain/core/domain/scheduling"
	"github.com/mishkahtherapy/brain/core/ports"
	"github.com/mishkahtherapy/brain/core/scheduling"
)

// Input is the scenario for one schedule-generation run, plus the objective
// and solver budget the caller wants. Catalogs (assessments, rooms,
// activities, conditions) are pulled through the fetch ports, not passed in,
// so the usecase can be driven by any host application.
type Input struct {
	Scenario         sched.ScenarioAction
	ObjectiveMode    scheduling.ObjectiveMode
	SolverTimeBudget time.Duration
	Persist          bool
}

type Usecase struct {
	assessmentFetcher ports.AssessmentFetcher
	resourceFetcher   ports.ResourceFetcher
	activityFetcher   ports.ActivityFetcher
	conditionFetcher  ports.ConditionFetcher
	scheduleWriter    ports.ScheduleWriter
	newModel          func() ports.SolverModel
}

func NewUsecase(
	assessmentFetcher ports.AssessmentFetcher,
	resourceFetcher ports.ResourceFetcher,
	activityFetcher ports.ActivityFetcher,
	conditionFetcher ports.ConditionFetcher,
	scheduleWriter ports.ScheduleWriter,
	newModel func() ports.SolverModel,
) *Usecase {
	return &Usecase{
		assessmentFetcher: assessmentFetcher,
		resourceFetcher:   resourceFetcher,
		activityFetcher:   activityFetcher,
		conditionFetcher:  conditionFetcher,
		scheduleWriter:    scheduleWriter,
		newModel:          newModel,
	}
}

// Execute fetches the current catalogs, runs the scheduling engine against a
// fresh solver model, and optionally hands the decoded result to the
// configured ScheduleWriter.
func (u *Usecase) Execute(ctx context.Context, input Input) ([]sched.ClientResult, error) {
	assessments, err := u.assessmentFetcher.FetchAssessments()
	if err != nil {
		return nil, err
	}
	rooms, err := u.resourceFetcher.FetchResources()
	if err != nil {
		return nil, err
	}
	activities, err := u.activityFetcher.FetchActivities()
	if err != nil {
		return nil, err
	}
	conditions, err := u.conditionFetcher.FetchConditions()
	if err != nil {
		return nil, err
	}

	slog.Info("generating schedule",
		"assessments", len(assessments),
		"rooms", len(rooms),
		"activities", len(activities),
		"conditions", len(conditions),
	)

	model := u.newModel()
	results, err := scheduling.Run(ctx, model, scheduling.Request{
		Assessments:      assessments,
		Rooms:            rooms,
		Activities:       activities,
		Conditions:       conditions,
		Scenario:         input.Scenario,
		ObjectiveMode:    input.ObjectiveMode,
		SolverTimeBudget: input.SolverTimeBudget,
	})
	if err != nil {
		slog.Error("schedule generation failed", "error", err)
		return nil, err
	}

	if input.Persist && u.scheduleWriter != nil {
		if err := u.scheduleWriter.WriteSchedule(results); err != nil {
			return nil, err
		}
	}

	slog.Info("schedule generated", "clients", len(results))
	return results, nil
}
