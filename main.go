package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"

	schedulingadapter "github.com/mishkahtherapy/brain/adapters/scheduling"
	"github.com/mishkahtherapy/brain/adapters/solver/ortools"
	"github.com/mishkahtherapy/brain/config"
	"github.com/mishkahtherapy/brain/core/ports"
	"github.com/mishkahtherapy/brain/core/scheduling"
	"github.com/mishkahtherapy/brain/core/usecases/schedule/generate_schedule"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := config.LoadEnvFileIfExists(".env"); err != nil {
		slog.Error("error loading env file", "error", err)
	}

	solverConfig := config.GetSolverConfig()

	catalog := schedulingadapter.NoopCatalog{}
	usecase := generate_schedule.NewUsecase(
		catalog, catalog, catalog, catalog, catalog,
		func() ports.SolverModel { return ortools.New() },
	)

	requestID := uuid.NewString()
	slog.Info("schedule generation request", "request_id", requestID, "solver_max_time", solverConfig.MaxTime)

	_, err := usecase.Execute(context.Background(), generate_schedule.Input{
		ObjectiveMode:    scheduling.ObjectiveGaps,
		SolverTimeBudget: solverConfig.MaxTime,
	})
	if err != nil {
		slog.Error("schedule generation failed", "request_id", requestID, "error", err)
		os.Exit(1)
	}

	slog.Info("schedule generation finished", "request_id", requestID)
}
