package compositor

import (
	"slices"
	"strings"

	"github.com/jakechorley/shift-planner/pkg/core/model"
)

var shiftOrder = map[model.Shift]int{
	model.ShiftMorning:   0,
	model.ShiftAfternoon: 1,
	model.ShiftLeave:     2,
	model.ShiftFlexible:  3,
}

func shiftRank(s model.Shift) int {
	if rank, ok := shiftOrder[s]; ok {
		return rank
	}
	return len(shiftOrder)
}

// SortForDisplay returns the entries ordered by default shift (M, T, B, JF, others)
// and then by name. The input is left untouched.
func SortForDisplay(entries []model.PersonSchedule) []model.PersonSchedule {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b model.PersonSchedule) int {
		if d := shiftRank(a.Person.DefaultShift) - shiftRank(b.Person.DefaultShift); d != 0 {
			return d
		}
		return strings.Compare(a.Person.Name, b.Person.Name)
	})
	return sorted
}
