package codes

import "github.com/jakechorley/shift-planner/pkg/core/rules"

// TogglePermission adds or removes the permission half of a cell.
//
//   - D      -> D/P
//   - M      -> M/P
//   - D/P    -> D
//   - M/P    -> M
//   - P      -> D
//
// When adding, any existing secondary half is replaced by P.
func TogglePermission(existing Code) Code {
	existing = existing.OrRest()

	if existing.Has(rules.PermissionCode) {
		for _, half := range existing.Halves() {
			if half != rules.RestCode && half != rules.PermissionCode {
				return Atomic(half)
			}
		}
		return Rest
	}

	if existing == Rest {
		return Pair(rules.RestCode, rules.PermissionCode)
	}
	return Pair(existing.Primary, rules.PermissionCode)
}
