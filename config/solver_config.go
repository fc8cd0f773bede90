package config

import (
	"strconv"
	"time"
)

const defaultSolverMaxTimeMinutes = 3

// SolverConfig carries the CP-SAT time budget for one schedule-generation
// run (spec.md §5's solver budget, surfaced as an env var like the rest of
// this package's *Config types).
type SolverConfig struct {
	MaxTime time.Duration
}

func GetSolverConfig() SolverConfig {
	minutes := defaultSolverMaxTimeMinutes
	if raw := GetEnvOrDefault("SOLVER_MAX_TIME_MINUTES", ""); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			minutes = parsed
		}
	}
	return SolverConfig{MaxTime: time.Duration(minutes) * time.Minute}
}
