// Package ortools backs ports.SolverModel with Google's CP-SAT solver,
// adapted from the patterns shown in the or-tools Go ranking sample
// (rankTasks / rankingSampleSat): a single cpmodel.Builder accumulates
// variables and constraints, then Model()+SolveCpModelWithContext() produces a
// response the handles here read back from.
package ortools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"

	"github.com/mishkahtherapy/brain/core/ports"
)

// Solver implements ports.SolverModel over one cpmodel.Builder. Handles are
// indices into the parallel var/bool/interval slices; a fresh Solver must be
// created per request (spec.md §5 "one request = one model").
type Solver struct {
	builder *cpmodel.Builder

	intVars   []cpmodel.IntVar
	boolVars  []cpmodel.BoolVar
	intervals []cpmodel.IntervalVar

	response *cmpb.CpSolverResponse
}

// New creates an empty CP-SAT model ready to receive variables and
// constraints.
func New() *Solver {
	return &Solver{builder: cpmodel.NewCpModelBuilder()}
}

func (s *Solver) NewIntVar(lb, ub int64, name string) ports.VarHandle {
	v := s.builder.NewIntVarFromDomain(cpmodel.NewDomain(lb, ub))
	s.intVars = append(s.intVars, v)
	return ports.VarHandle(len(s.intVars) - 1)
}

func (s *Solver) NewConstant(v int64) ports.VarHandle {
	cv := cpmodel.NewConstant(v)
	s.intVars = append(s.intVars, cv)
	return ports.VarHandle(len(s.intVars) - 1)
}

func (s *Solver) NewBoolVar(name string) ports.BoolHandle {
	b := s.builder.NewBoolVar()
	s.boolVars = append(s.boolVars, b)
	return ports.BoolHandle(len(s.boolVars) - 1)
}

func (s *Solver) Not(b ports.BoolHandle) ports.BoolHandle {
	s.boolVars = append(s.boolVars, s.boolVar(b).Not())
	return ports.BoolHandle(len(s.boolVars) - 1)
}

func (s *Solver) intVar(h ports.VarHandle) cpmodel.IntVar   { return s.intVars[h] }
func (s *Solver) boolVar(h ports.BoolHandle) cpmodel.BoolVar { return s.boolVars[h] }

func (s *Solver) NewInterval(start, duration, end ports.VarHandle, name string) ports.IntervalHandle {
	iv := s.builder.NewIntervalVar(s.intVar(start), s.intVar(duration), s.intVar(end))
	s.intervals = append(s.intervals, iv)
	return ports.IntervalHandle(len(s.intervals) - 1)
}

func (s *Solver) NewOptionalInterval(start, duration, end ports.VarHandle, presence ports.BoolHandle, name string) ports.IntervalHandle {
	iv := s.builder.NewOptionalIntervalVar(s.intVar(start), s.intVar(duration), s.intVar(end), s.boolVar(presence))
	s.intervals = append(s.intervals, iv)
	return ports.IntervalHandle(len(s.intervals) - 1)
}

func (s *Solver) expr(terms []ports.Term) *cpmodel.LinearExpr {
	expr := cpmodel.NewLinearExpr()
	for _, t := range terms {
		expr.AddTerm(s.intVar(t.Var), t.Coeff)
	}
	return expr
}

func (s *Solver) enforce(cons interface {
	OnlyEnforceIf(literals ...cpmodel.BoolVar) *cpmodel.Constraint
}, lits []ports.BoolHandle) {
	if len(lits) == 0 {
		return
	}
	bvs := make([]cpmodel.BoolVar, len(lits))
	for i, l := range lits {
		bvs[i] = s.boolVar(l)
	}
	cons.OnlyEnforceIf(bvs...)
}

func (s *Solver) AddLinearEquality(terms []ports.Term, rhs int64, enforce ...ports.BoolHandle) {
	c := s.builder.AddEquality(s.expr(terms), cpmodel.NewConstant(rhs))
	s.enforce(c, enforce)
}

func (s *Solver) AddLinearLessOrEqual(terms []ports.Term, rhs int64, enforce ...ports.BoolHandle) {
	c := s.builder.AddLessOrEqual(s.expr(terms), cpmodel.NewConstant(rhs))
	s.enforce(c, enforce)
}

func (s *Solver) AddLinearLessThan(terms []ports.Term, rhs int64, enforce ...ports.BoolHandle) {
	c := s.builder.AddLessThan(s.expr(terms), cpmodel.NewConstant(rhs))
	s.enforce(c, enforce)
}

func (s *Solver) AddLinearNotEqual(terms []ports.Term, rhs int64, enforce ...ports.BoolHandle) {
	c := s.builder.AddNotEqual(s.expr(terms), cpmodel.NewConstant(rhs))
	s.enforce(c, enforce)
}

func (s *Solver) NewIsLinearLessOrEqualVar(terms []ports.Term, rhs int64, name string) ports.BoolHandle {
	lit := s.NewBoolVar(name)
	s.AddLinearLessOrEqual(terms, rhs, lit)
	s.AddLinearLessOrEqual(negate(terms), -(rhs + 1), s.Not(lit))
	return lit
}

func (s *Solver) NewIsLinearEqualVar(terms []ports.Term, rhs int64, name string) ports.BoolHandle {
	lit := s.NewBoolVar(name)
	s.AddLinearEquality(terms, rhs, lit)
	s.AddLinearNotEqual(terms, rhs, s.Not(lit))
	return lit
}

func (s *Solver) NewIsLinearNotEqualVar(terms []ports.Term, rhs int64, name string) ports.BoolHandle {
	lit := s.NewBoolVar(name)
	s.AddLinearNotEqual(terms, rhs, lit)
	s.AddLinearEquality(terms, rhs, s.Not(lit))
	return lit
}

func negate(terms []ports.Term) []ports.Term {
	out := make([]ports.Term, len(terms))
	for i, t := range terms {
		out[i] = ports.Term{Var: t.Var, Coeff: -t.Coeff}
	}
	return out
}

func (s *Solver) AddModuloEquality(v ports.VarHandle, mod int64) {
	s.builder.AddModuloEquality(cpmodel.NewConstant(0), s.intVar(v), cpmodel.NewConstant(mod))
}

func (s *Solver) AddMaxEquality(target ports.VarHandle, vars []ports.VarHandle) {
	ivs := make([]cpmodel.IntVar, len(vars))
	for i, v := range vars {
		ivs[i] = s.intVar(v)
	}
	s.builder.AddMaxEquality(s.intVar(target), ivs)
}

func (s *Solver) AddImplication(a, b ports.BoolHandle) {
	s.builder.AddImplication(s.boolVar(a), s.boolVar(b))
}

func (s *Solver) AddBoolOr(lits ...ports.BoolHandle) {
	bvs := make([]cpmodel.BoolVar, len(lits))
	for i, l := range lits {
		bvs[i] = s.boolVar(l)
	}
	s.builder.AddBoolOr(bvs...)
}

func (s *Solver) AddExactlyOne(lits ...ports.BoolHandle) {
	bvs := make([]cpmodel.BoolVar, len(lits))
	for i, l := range lits {
		bvs[i] = s.boolVar(l)
	}
	s.builder.AddExactlyOne(bvs...)
}

func (s *Solver) AddAtMostOne(lits ...ports.BoolHandle) {
	bvs := make([]cpmodel.BoolVar, len(lits))
	for i, l := range lits {
		bvs[i] = s.boolVar(l)
	}
	s.builder.AddAtMostOne(bvs...)
}

func (s *Solver) AddNoOverlap(intervals ...ports.IntervalHandle) {
	ivs := make([]cpmodel.IntervalVar, len(intervals))
	for i, h := range intervals {
		ivs[i] = s.intervals[h]
	}
	s.builder.AddNoOverlap(ivs...)
}

func (s *Solver) AddCircuit(arcs []ports.Arc) {
	circuit := s.builder.NewCircuitConstraint()
	for _, a := range arcs {
		circuit.AddArc(a.Tail, a.Head, s.boolVar(a.Literal))
	}
}

func (s *Solver) Minimize(terms []ports.Term) {
	s.builder.Minimize(s.expr(terms))
}

func (s *Solver) SolveWithTimeLimit(ctx context.Context, limit time.Duration) (ports.SolveStatus, error) {
	m, err := s.builder.Model()
	if err != nil {
		return ports.StatusModelInvalid, fmt.Errorf("building CP-SAT model: %w", err)
	}

	params := &cmpb.SatParameters{MaxTimeInSeconds: float64Ptr(limit.Seconds())}
	response, err := cpmodel.SolveCpModelWithContext(ctx, m, params)
	if err != nil {
		return ports.StatusUnknown, fmt.Errorf("solving CP-SAT model: %w", err)
	}
	s.response = response

	switch response.GetStatus() {
	case cmpb.CpSolverStatus_OPTIMAL:
		return ports.StatusOptimal, nil
	case cmpb.CpSolverStatus_FEASIBLE:
		return ports.StatusFeasible, nil
	case cmpb.CpSolverStatus_INFEASIBLE:
		return ports.StatusInfeasible, nil
	case cmpb.CpSolverStatus_MODEL_INVALID:
		return ports.StatusModelInvalid, nil
	default:
		return ports.StatusUnknown, nil
	}
}

func float64Ptr(v float64) *float64 { return &v }

func (s *Solver) Value(v ports.VarHandle) int64 {
	return cpmodel.SolutionIntegerValue(s.response, s.intVar(v))
}

func (s *Solver) BoolValue(b ports.BoolHandle) bool {
	return cpmodel.SolutionBooleanValue(s.response, s.boolVar(b))
}
