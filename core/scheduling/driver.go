package scheduling

import (
	"context"
	"time"

	sched "github.com/mishkahtherapy/brain/core/domain/scheduling"
	"github.com/mishkahtherapy/brain/core/ports"
)

// Solve implements C8: it runs the underlying finite-domain solver with a
// wall-clock budget and maps the returned status onto the scheduling
// outcome (spec.md §4.6).
func Solve(ctx context.Context, model ports.SolverModel, budget time.Duration) (ports.SolveStatus, error) {
	status, err := model.SolveWithTimeLimit(ctx, budget)
	if err != nil {
		return status, sched.NewInfeasibleScheduleError("solver returned an error: " + err.Error())
	}
	if !status.Feasible() {
		return status, sched.NewInfeasibleScheduleError("no feasible schedule found within the time budget (status: " + status.String() + ")")
	}
	return status, nil
}
