// Package scheduletest provides an in-memory ports.SolverModel double for
// exercising the variable factory, constraint compiler wiring, and decoder
// without a real CP-SAT solve. It mints a handle for every variable and
// records every constraint call but never enforces them; tests set the "solved" values directly via
// SetIntValue/SetBoolValue and call Solve to get a canned status back.
package scheduletest

import (
	"context"
	"time"

	"github.com/mishkahtherapy/brain/core/ports"
)

// LinearCall records one AddLinear*/NewIsLinear* invocation: the terms and
// rhs of the comparison, plus any enforcement literals, so tests can assert
// on the actual coefficients a constraint compiler produced instead of just
// counting how many constraints were registered.
type LinearCall struct {
	Terms   []ports.Term
	Rhs     int64
	Enforce []ports.BoolHandle
}

// IntervalCall records one NewInterval/NewOptionalInterval invocation.
type IntervalCall struct {
	Start, Duration, End ports.VarHandle
	Presence             ports.BoolHandle
	HasPresence          bool
	Name                 string
}

// MaxEqualityCall records one AddMaxEquality invocation.
type MaxEqualityCall struct {
	Target ports.VarHandle
	Vars   []ports.VarHandle
}

// Stub is a bookkeeping-only ports.SolverModel: it mints handles and records
// every constraint call verbatim, but performs no actual constraint
// propagation or search.
type Stub struct {
	NextVar      int32
	NextBool     int32
	NextInterval int32

	IntValues  map[ports.VarHandle]int64
	BoolValues map[ports.BoolHandle]bool

	LinearEqualities   []LinearCall
	LinearLessOrEquals []LinearCall
	LinearLessThans    []LinearCall
	LinearNotEquals    []LinearCall

	IsLinearLessOrEquals []LinearCall
	IsLinearEquals       []LinearCall
	IsLinearNotEquals    []LinearCall

	Intervals []IntervalCall

	ModuloEqualities []struct {
		Var ports.VarHandle
		Mod int64
	}
	MaxEqualities []MaxEqualityCall

	Implications [][2]ports.BoolHandle
	BoolOrs      [][]ports.BoolHandle
	ExactlyOnes  [][]ports.BoolHandle
	AtMostOnes   [][]ports.BoolHandle

	NoOverlaps [][]ports.IntervalHandle
	Circuits   [][]ports.Arc

	Objectives [][]ports.Term

	Status ports.SolveStatus
}

var _ ports.SolverModel = (*Stub)(nil)

// New returns a Stub that will report Status = ports.StatusOptimal when
// solved, unless the caller overrides it.
func New() *Stub {
	return &Stub{
		IntValues:  make(map[ports.VarHandle]int64),
		BoolValues: make(map[ports.BoolHandle]bool),
		Status:     ports.StatusOptimal,
	}
}

func (s *Stub) NewIntVar(lb, ub int64, name string) ports.VarHandle {
	h := ports.VarHandle(s.NextVar)
	s.NextVar++
	return h
}

func (s *Stub) NewConstant(v int64) ports.VarHandle {
	h := ports.VarHandle(s.NextVar)
	s.NextVar++
	s.IntValues[h] = v
	return h
}

func (s *Stub) NewBoolVar(name string) ports.BoolHandle {
	h := ports.BoolHandle(s.NextBool)
	s.NextBool++
	return h
}

func (s *Stub) Not(b ports.BoolHandle) ports.BoolHandle {
	h := ports.BoolHandle(s.NextBool)
	s.NextBool++
	s.BoolValues[h] = !s.BoolValues[b]
	return h
}

func (s *Stub) NewInterval(start, duration, end ports.VarHandle, name string) ports.IntervalHandle {
	h := ports.IntervalHandle(s.NextInterval)
	s.NextInterval++
	s.Intervals = append(s.Intervals, IntervalCall{Start: start, Duration: duration, End: end, Name: name})
	return h
}

func (s *Stub) NewOptionalInterval(start, duration, end ports.VarHandle, presence ports.BoolHandle, name string) ports.IntervalHandle {
	h := ports.IntervalHandle(s.NextInterval)
	s.NextInterval++
	s.Intervals = append(s.Intervals, IntervalCall{
		Start: start, Duration: duration, End: end,
		Presence: presence, HasPresence: true, Name: name,
	})
	return h
}

func (s *Stub) AddLinearEquality(terms []ports.Term, rhs int64, enforce ...ports.BoolHandle) {
	s.LinearEqualities = append(s.LinearEqualities, LinearCall{Terms: terms, Rhs: rhs, Enforce: enforce})
}
func (s *Stub) AddLinearLessOrEqual(terms []ports.Term, rhs int64, enforce ...ports.BoolHandle) {
	s.LinearLessOrEquals = append(s.LinearLessOrEquals, LinearCall{Terms: terms, Rhs: rhs, Enforce: enforce})
}
func (s *Stub) AddLinearLessThan(terms []ports.Term, rhs int64, enforce ...ports.BoolHandle) {
	s.LinearLessThans = append(s.LinearLessThans, LinearCall{Terms: terms, Rhs: rhs, Enforce: enforce})
}
func (s *Stub) AddLinearNotEqual(terms []ports.Term, rhs int64, enforce ...ports.BoolHandle) {
	s.LinearNotEquals = append(s.LinearNotEquals, LinearCall{Terms: terms, Rhs: rhs, Enforce: enforce})
}

func (s *Stub) NewIsLinearLessOrEqualVar(terms []ports.Term, rhs int64, name string) ports.BoolHandle {
	s.IsLinearLessOrEquals = append(s.IsLinearLessOrEquals, LinearCall{Terms: terms, Rhs: rhs})
	return s.NewBoolVar(name)
}
func (s *Stub) NewIsLinearEqualVar(terms []ports.Term, rhs int64, name string) ports.BoolHandle {
	s.IsLinearEquals = append(s.IsLinearEquals, LinearCall{Terms: terms, Rhs: rhs})
	return s.NewBoolVar(name)
}
func (s *Stub) NewIsLinearNotEqualVar(terms []ports.Term, rhs int64, name string) ports.BoolHandle {
	s.IsLinearNotEquals = append(s.IsLinearNotEquals, LinearCall{Terms: terms, Rhs: rhs})
	return s.NewBoolVar(name)
}

func (s *Stub) AddModuloEquality(v ports.VarHandle, mod int64) {
	s.ModuloEqualities = append(s.ModuloEqualities, struct {
		Var ports.VarHandle
		Mod int64
	}{Var: v, Mod: mod})
}

func (s *Stub) AddMaxEquality(target ports.VarHandle, vars []ports.VarHandle) {
	s.MaxEqualities = append(s.MaxEqualities, MaxEqualityCall{Target: target, Vars: vars})
}

func (s *Stub) AddImplication(a, b ports.BoolHandle) {
	s.Implications = append(s.Implications, [2]ports.BoolHandle{a, b})
}
func (s *Stub) AddBoolOr(lits ...ports.BoolHandle) {
	s.BoolOrs = append(s.BoolOrs, lits)
}
func (s *Stub) AddExactlyOne(lits ...ports.BoolHandle) {
	s.ExactlyOnes = append(s.ExactlyOnes, lits)
}
func (s *Stub) AddAtMostOne(lits ...ports.BoolHandle) {
	s.AtMostOnes = append(s.AtMostOnes, lits)
}

func (s *Stub) AddNoOverlap(intervals ...ports.IntervalHandle) {
	s.NoOverlaps = append(s.NoOverlaps, intervals)
}
func (s *Stub) AddCircuit(arcs []ports.Arc) {
	s.Circuits = append(s.Circuits, arcs)
}

func (s *Stub) Minimize(terms []ports.Term) {
	s.Objectives = append(s.Objectives, terms)
}

func (s *Stub) SolveWithTimeLimit(ctx context.Context, limit time.Duration) (ports.SolveStatus, error) {
	return s.Status, nil
}

func (s *Stub) Value(v ports.VarHandle) int64 {
	return s.IntValues[v]
}

func (s *Stub) BoolValue(b ports.BoolHandle) bool {
	return s.BoolValues[b]
}

// SetIntValue records the value a test wants Value(v) to return after Solve.
func (s *Stub) SetIntValue(v ports.VarHandle, value int64) {
	s.IntValues[v] = value
}

// SetBoolValue records the value a test wants BoolValue(b) to return after
// Solve.
func (s *Stub) SetBoolValue(b ports.BoolHandle, value bool) {
	s.BoolValues[b] = value
}
