package scheduling

import (
	"context"
	"time"

	sched "github.com/mishkahtherapy/brain/core/domain/scheduling"
	"github.com/mishkahtherapy/brain/core/ports"
)

// Request bundles everything one scheduling run needs: the static catalogs
// (already fetched by the caller through the ports.*Fetcher interfaces) plus
// the scenario describing who must be scheduled today.
type Request struct {
	Assessments      []sched.Assessment
	Rooms            []sched.Room
	Activities       []sched.Activity
	Conditions       []sched.Condition
	Scenario         sched.ScenarioAction
	ObjectiveMode    ObjectiveMode
	SolverTimeBudget time.Duration
}

// Run executes C2 through C9 against a freshly built SolverModel: normalize,
// materialize clients, build the skeleton, create variables, compile every
// constraint family, set the objective, solve, and decode. A new model must
// be supplied per call; the engine never reuses solver state across runs
// (spec.md §5 "one request = one model").
func Run(ctx context.Context, model ports.SolverModel, req Request) ([]sched.ClientResult, error) {
	norm, err := Normalize(req.Assessments, req.Rooms, req.Activities, req.Conditions, req.Scenario.OutOfOrderRoomIDs)
	if err != nil {
		return nil, err
	}

	clients, err := MaterializeClients(norm, req.Scenario)
	if err != nil {
		return nil, err
	}

	skeletons, err := BuildSkeletons(norm, clients, req.Scenario)
	if err != nil {
		return nil, err
	}

	vars, err := BuildVariables(model, norm, skeletons, req.Scenario)
	if err != nil {
		return nil, err
	}

	if err := CompileGeneralConstraints(model, norm, skeletons, vars); err != nil {
		return nil, err
	}

	transfers, err := CompileTransferConstraints(model, skeletons, vars, req.Scenario)
	if err != nil {
		return nil, err
	}

	if err := CompileConditions(model, norm, skeletons, vars); err != nil {
		return nil, err
	}

	mode := req.ObjectiveMode
	if mode == "" {
		mode = ObjectiveGaps
	}
	CompileObjective(model, vars, transfers, mode)

	budget := req.SolverTimeBudget
	if budget <= 0 {
		budget = 3 * time.Minute
	}
	if _, err := Solve(ctx, model, budget); err != nil {
		return nil, err
	}

	return Decode(model, skeletons, vars)
}
