package scheduling

import (
	"fmt"
	"strconv"
	"strings"

	sched "github.com/mishkahtherapy/brain/core/domain/scheduling"
	"github.com/mishkahtherapy/brain/core/ports"
)

// CompileConditions implements C6's condition DSL (spec.md §4.4.4): every
// mandatory, enabled, non-deleted condition of an enabled assessment is
// resolved through the uid map and translated into a constraint, applied to
// every client of that assessment.
func CompileConditions(model ports.SolverModel, norm *NormalizedInput, skeletons *SkeletonSet, vars *VariableSet) error {
	for _, cond := range norm.Conditions {
		if !cond.Compilable() {
			continue
		}
		for clientIdx, cs := range skeletons.Clients {
			if !conditionAppliesTo(cond, cs.Client) {
				continue
			}
			if err := compileOneCondition(model, skeletons.ActivityToUID, vars.SlotsPerClient, vars.TimeStartMinutes, cs, vars.Clients[clientIdx], cond); err != nil {
				return err
			}
		}
	}
	return nil
}

func conditionAppliesTo(cond sched.Condition, client sched.ClientScenario) bool {
	if cond.AssessmentID == "" {
		return true
	}
	return cond.AssessmentID == client.AssessmentID
}

func compileOneCondition(
	model ports.SolverModel,
	activityToUID map[sched.ActivityID]sched.UID,
	slotsPerClient int,
	timeStart int,
	cs ClientSkeleton,
	cv ClientVars,
	cond sched.Condition,
) error {
	slotA, ok := findSlotByUID(cs, cv, activityToUID[cond.ActivityID])
	if !ok {
		return sched.NewConditionError("condition's activity is not part of this client's schedule", string(cond.ID), string(cond.ActivityID))
	}

	switch {
	case cond.Predicate == sched.PredicateBefore && cond.Criteria == sched.CriteriaActivity:
		slotB, ok := findSlotByUID(cs, cv, activityToUID[sched.ActivityID(cond.Value)])
		if !ok {
			return sched.NewConditionError("BEFORE/ACTIVITY target not scheduled for this client", string(cond.ID))
		}
		model.AddLinearLessOrEqual([]ports.Term{{Var: slotA.End, Coeff: 1}, {Var: slotB.Start, Coeff: -1}}, 0)

	case cond.Predicate == sched.PredicateBefore && cond.Criteria == sched.CriteriaTime:
		t, err := clockMinutes(cond.Value, timeStart)
		if err != nil {
			return sched.NewConditionError(err.Error(), string(cond.ID))
		}
		model.AddLinearLessOrEqual([]ports.Term{{Var: slotA.End, Coeff: 1}}, int64(t))

	case cond.Predicate == sched.PredicateBefore && cond.Criteria == sched.CriteriaOrder:
		k, err := orderValue(cond.Value, slotsPerClient)
		if err != nil {
			return sched.NewConditionError(err.Error(), string(cond.ID))
		}
		model.AddLinearLessOrEqual([]ports.Term{{Var: slotA.Order, Coeff: 1}}, int64(k-1))

	case cond.Predicate == sched.PredicateAfter && cond.Criteria == sched.CriteriaActivity:
		slotB, ok := findSlotByUID(cs, cv, activityToUID[sched.ActivityID(cond.Value)])
		if !ok {
			return sched.NewConditionError("AFTER/ACTIVITY target not scheduled for this client", string(cond.ID))
		}
		model.AddLinearLessOrEqual([]ports.Term{{Var: slotB.End, Coeff: 1}, {Var: slotA.Start, Coeff: -1}}, 0)

	case cond.Predicate == sched.PredicateAfter && cond.Criteria == sched.CriteriaTime:
		t, err := clockMinutes(cond.Value, timeStart)
		if err != nil {
			return sched.NewConditionError(err.Error(), string(cond.ID))
		}
		model.AddLinearLessOrEqual([]ports.Term{{Var: slotA.Start, Coeff: -1}}, int64(-t))

	case cond.Predicate == sched.PredicateAfter && cond.Criteria == sched.CriteriaOrder:
		k, err := orderValue(cond.Value, slotsPerClient)
		if err != nil {
			return sched.NewConditionError(err.Error(), string(cond.ID))
		}
		model.AddLinearLessOrEqual([]ports.Term{{Var: slotA.Order, Coeff: -1}}, int64(-(k + 1)))

	case cond.Predicate == sched.PredicateRightAfter && cond.Criteria == sched.CriteriaActivity:
		slotB, ok := findSlotByUID(cs, cv, activityToUID[sched.ActivityID(cond.Value)])
		if !ok {
			return sched.NewConditionError("RIGHT_AFTER/ACTIVITY target not scheduled for this client", string(cond.ID))
		}
		model.AddLinearEquality([]ports.Term{{Var: slotA.Start, Coeff: 1}, {Var: slotB.End, Coeff: -1}}, 0)

	case cond.Predicate == sched.PredicateBetween && cond.Criteria == sched.CriteriaActivity:
		before, ok1 := findSlotByUID(cs, cv, activityToUID[sched.ActivityID(cond.Between.Start)])
		after, ok2 := findSlotByUID(cs, cv, activityToUID[sched.ActivityID(cond.Between.End)])
		if !ok1 || !ok2 {
			return sched.NewConditionError("BETWEEN/ACTIVITY bound not scheduled for this client", string(cond.ID))
		}
		model.AddLinearLessOrEqual([]ports.Term{{Var: before.End, Coeff: 1}, {Var: slotA.Start, Coeff: -1}}, 0)
		model.AddLinearLessOrEqual([]ports.Term{{Var: slotA.End, Coeff: 1}, {Var: after.Start, Coeff: -1}}, 0)

	case cond.Predicate == sched.PredicateBetween && cond.Criteria == sched.CriteriaTime:
		tBefore, err := clockMinutes(cond.Between.Start, timeStart)
		if err != nil {
			return sched.NewConditionError(err.Error(), string(cond.ID))
		}
		tAfter, err := clockMinutes(cond.Between.End, timeStart)
		if err != nil {
			return sched.NewConditionError(err.Error(), string(cond.ID))
		}
		model.AddLinearLessOrEqual([]ports.Term{{Var: slotA.Start, Coeff: -1}}, int64(-tBefore))
		model.AddLinearLessOrEqual([]ports.Term{{Var: slotA.End, Coeff: 1}}, int64(tAfter))

	case cond.Predicate == sched.PredicateBetween && cond.Criteria == sched.CriteriaOrder:
		// As observed in the original solver: the "before" bound is the
		// upper end of the order range and the "after" bound the lower end
		// (order[a] > k_after AND order[a] < k_before). See DESIGN.md.
		kBefore, err := orderValue(cond.Between.Start, slotsPerClient)
		if err != nil {
			return sched.NewConditionError(err.Error(), string(cond.ID))
		}
		kAfter, err := orderValue(cond.Between.End, slotsPerClient)
		if err != nil {
			return sched.NewConditionError(err.Error(), string(cond.ID))
		}
		if kAfter >= kBefore-1 {
			return sched.NewConditionError("BETWEEN/ORDER range is empty", string(cond.ID))
		}
		model.AddLinearLessOrEqual([]ports.Term{{Var: slotA.Order, Coeff: -1}}, int64(-(kAfter + 1)))
		model.AddLinearLessOrEqual([]ports.Term{{Var: slotA.Order, Coeff: 1}}, int64(kBefore-1))

	case cond.Predicate == sched.PredicateWithin && cond.Criteria == sched.CriteriaTime:
		checkIn, ok := findSlotByActivityNameInVars(cs, cv, "check-in")
		if !ok {
			return sched.NewConditionError("WITHIN/TIME requires a check-in slot", string(cond.ID))
		}
		delta, err := strconv.Atoi(strings.TrimSpace(cond.Value))
		if err != nil {
			return sched.NewConditionError("invalid WITHIN duration: "+cond.Value, string(cond.ID))
		}
		model.AddLinearLessOrEqual([]ports.Term{{Var: checkIn.End, Coeff: 1}, {Var: slotA.Start, Coeff: -1}}, 0)
		model.AddLinearLessOrEqual([]ports.Term{
			{Var: slotA.Start, Coeff: 1}, {Var: checkIn.Start, Coeff: -1},
		}, int64(delta))

	case cond.Predicate == sched.PredicateInFixedOrderAs && cond.Criteria == sched.CriteriaOrder:
		k, err := orderValue(cond.Value, slotsPerClient)
		if err != nil {
			return sched.NewConditionError(err.Error(), string(cond.ID))
		}
		model.AddLinearEquality([]ports.Term{{Var: slotA.Order, Coeff: 1}}, int64(k))

	default:
		return sched.NewConditionError("unsupported predicate/criteria combination", string(cond.ID), string(cond.Predicate), string(cond.Criteria))
	}

	return nil
}

func findSlotByUID(cs ClientSkeleton, cv ClientVars, uid sched.UID) (SlotVars, bool) {
	if uid == "" {
		return SlotVars{}, false
	}
	for i, slot := range cs.Slots {
		if slot.UID == uid {
			return cv.Slots[i], true
		}
	}
	return SlotVars{}, false
}

func findSlotByActivityNameInVars(cs ClientSkeleton, cv ClientVars, needle string) (SlotVars, bool) {
	idx, ok := findSlotByActivityName(cs, needle)
	if !ok {
		return SlotVars{}, false
	}
	return cv.Slots[idx], true
}

func clockMinutes(raw string, timeStart int) (int, error) {
	return sched.MinutesFromStart(raw, timeStart)
}

func orderValue(raw string, slotsPerClient int) (int, error) {
	k, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if k < 0 {
		k = slotsPerClient + k
	}
	if k < 0 || k >= slotsPerClient {
		return 0, fmt.Errorf("order value %q out of range for %d slots", raw, slotsPerClient)
	}
	return k, nil
}
