package ports

import (
	"context"
	"time"
)

// VarHandle, BoolHandle and IntervalHandle are opaque references into a
// SolverModel's variable arena. The engine never inspects their values
// itself: it only ever passes them back into the SolverModel that minted
// them.
type (
	VarHandle      int32
	BoolHandle     int32
	IntervalHandle int32
)

// NoVar/NoBool mark "this mode has no variable of this kind" (e.g. a mode
// with a fixed floor needs no reified comparison).
const (
	NoVar  VarHandle  = -1
	NoBool BoolHandle = -1
)

// Term is one coefficient*variable pair in a linear expression, mirroring
// cpmodel.NewLinearExpr().AddTerm(v, coeff) from the CP-SAT Go API.
type Term struct {
	Var   VarHandle
	Coeff int64
}

// Arc is one edge candidate of a circuit constraint: when Literal is true in
// the solution, the circuit uses the edge Tail->Head. Node 0 is the
// synthetic start/end node (spec.md §4.4.2).
type Arc struct {
	Tail, Head int
	Literal    BoolHandle
}

// SolveStatus mirrors the CP-SAT solver status values the driver (C8) maps
// into a scheduling outcome.
type SolveStatus int

const (
	StatusUnknown SolveStatus = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
	StatusModelInvalid
)

// Feasible reports whether a schedule can be decoded from this status.
func (s SolveStatus) Feasible() bool {
	return s == StatusOptimal || s == StatusFeasible
}

func (s SolveStatus) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusModelInvalid:
		return "MODEL_INVALID"
	default:
		return "UNKNOWN"
	}
}

// SolverModel is the finite-domain constraint-solving capability the
// scheduling engine is built against (spec.md §9 "Solver binding"). Any
// CP-SAT-class solver can implement it by wrapping its own variable/
// constraint builder; the engine never depends on a concrete solver package.
// adapters/solver/ortools backs this with Google's CP-SAT;
// core/scheduling/scheduletest backs it with an in-memory stub for tests.
type SolverModel interface {
	NewIntVar(lb, ub int64, name string) VarHandle
	NewConstant(v int64) VarHandle
	NewBoolVar(name string) BoolHandle
	Not(b BoolHandle) BoolHandle

	NewInterval(start, duration, end VarHandle, name string) IntervalHandle
	NewOptionalInterval(start, duration, end VarHandle, presence BoolHandle, name string) IntervalHandle

	// Linear constraints over sum(terms) compared against rhs. enforce, when
	// non-empty, makes the constraint conditional on all listed literals
	// being true (cpmodel's OnlyEnforceIf).
	AddLinearEquality(terms []Term, rhs int64, enforce ...BoolHandle)
	AddLinearLessOrEqual(terms []Term, rhs int64, enforce ...BoolHandle)
	AddLinearLessThan(terms []Term, rhs int64, enforce ...BoolHandle)
	AddLinearNotEqual(terms []Term, rhs int64, enforce ...BoolHandle)

	// Reified linear comparisons: the returned literal is true iff the
	// comparison holds in the solution.
	NewIsLinearLessOrEqualVar(terms []Term, rhs int64, name string) BoolHandle
	NewIsLinearEqualVar(terms []Term, rhs int64, name string) BoolHandle
	NewIsLinearNotEqualVar(terms []Term, rhs int64, name string) BoolHandle

	AddModuloEquality(v VarHandle, mod int64)
	AddMaxEquality(target VarHandle, vars []VarHandle)

	AddImplication(a, b BoolHandle)
	AddBoolOr(lits ...BoolHandle)
	AddExactlyOne(lits ...BoolHandle)
	AddAtMostOne(lits ...BoolHandle)

	AddNoOverlap(intervals ...IntervalHandle)
	AddCircuit(arcs []Arc)

	Minimize(terms []Term)

	// SolveWithTimeLimit blocks until the solver reaches a terminal status or
	// limit elapses. It is the engine's single suspension point (spec.md §5).
	SolveWithTimeLimit(ctx context.Context, limit time.Duration) (SolveStatus, error)

	Value(v VarHandle) int64
	BoolValue(b BoolHandle) bool
}
