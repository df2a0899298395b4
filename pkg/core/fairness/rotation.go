package fairness

import (
	"slices"
	"strings"
	"time"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/model"
	"github.com/jakechorley/shift-planner/pkg/core/rules"
)

// RotationPool returns the people taking part in the Saturday round-robin:
// everyone not in the excluded role and not on leave, sorted by id ascending
func RotationPool(people []model.Person, rt rules.RuleTable) []model.Person {
	pool := make([]model.Person, 0, len(people))
	for _, p := range people {
		if rt.IsExcludedRole(p.Role) || p.DefaultShift.IsLeave() {
			continue
		}
		pool = append(pool, p)
	}
	slices.SortStableFunc(pool, func(a, b model.Person) int {
		return strings.Compare(a.ID, b.ID)
	})
	return pool
}

// RotationAnchor returns the first Saturday on or after the rule table's epoch
func RotationAnchor(rt rules.RuleTable) time.Time {
	epoch := rt.RotationEpoch
	if epoch.IsZero() {
		epoch = rules.DefaultRotationEpoch
	}
	return calendar.FirstSaturdayOnOrAfter(epoch)
}

// RotationIndex returns floor(daysBetween(anchor, saturday)/7) mod poolSize.
// ok is false for Saturdays before the anchor and for an empty pool.
func RotationIndex(anchor, saturday time.Time, poolSize int) (index int, ok bool) {
	if poolSize <= 0 {
		return 0, false
	}
	days := calendar.DaysBetween(anchor, saturday)
	if days < 0 {
		return 0, false
	}
	return (days / 7) % poolSize, true
}

// RotationAssignee returns who the round-robin puts on a Saturday
func RotationAssignee(pool []model.Person, anchor, saturday time.Time) (model.Person, bool) {
	index, ok := RotationIndex(anchor, saturday, len(pool))
	if !ok {
		return model.Person{}, false
	}
	return pool[index], true
}
