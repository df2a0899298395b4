package rules

import (
	"slices"
	"strings"
	"time"
)

// Well-known codes that the schedule logic treats specially
const (
	RestCode       = "D"
	LeaveCode      = "B"
	PermissionCode = "P"

	HolidayNational = "FN"
	HolidayRegional = "FA"
	HolidayLocal    = "FL"
)

// DefaultMaxLookbackDays caps the backward search for leave/training
const DefaultMaxLookbackDays = 31

// DefaultRotationEpoch is the date the Saturday rotation counts from
var DefaultRotationEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// PrimaryShifts are the default shifts a person can be (re)activated onto
var PrimaryShifts = []string{"M", "T", "JF"}

// RuleTable holds the static code sets that govern exclusion, pass-through and assignability
type RuleTable struct {
	// VacationCodes block a Saturday when present on both Thursday and Friday
	VacationCodes []string

	// LeaveCodes block a Saturday when found on Friday (with backtracking)
	LeaveCodes []string

	// TrainingCodes block a Saturday when found on Friday (with backtracking)
	TrainingCodes []string

	// PassThroughCodes don't terminate the backward search, it continues to the previous day
	PassThroughCodes []string

	// NoSaturdayCodes on the Saturday itself make a person ineligible
	NoSaturdayCodes []string

	// SaturdayWorkableCodes count as having worked a Saturday, and are the only
	// tokens accepted when editing a Saturday cell
	SaturdayWorkableCodes []string

	// ExcludedRole is never rotated onto or assigned a Saturday (compared case-insensitively)
	ExcludedRole string

	// AssignmentCode is written by the rotation and by automatic assignment
	AssignmentCode string

	// RotationEpoch anchors the round-robin: the first Saturday on or after it is index 0
	RotationEpoch time.Time

	// MaxLookbackDays bounds the backward search (0 means DefaultMaxLookbackDays)
	MaxLookbackDays int
}

// Default returns the rule table used when nothing is configured
func Default() RuleTable {
	return RuleTable{
		VacationCodes:         []string{"V", "VA"},
		LeaveCodes:            []string{LeaveCode},
		TrainingCodes:         []string{"F", "MF", "TF"},
		PassThroughCodes:      []string{HolidayRegional, HolidayNational},
		NoSaturdayCodes:       []string{HolidayNational, HolidayRegional},
		SaturdayWorkableCodes: []string{"MS", "TD"},
		ExcludedRole:          "COOR",
		AssignmentCode:        "MS",
		RotationEpoch:         DefaultRotationEpoch,
		MaxLookbackDays:       DefaultMaxLookbackDays,
	}
}

// Lookback returns the effective backward search cap
func (rt RuleTable) Lookback() int {
	if rt.MaxLookbackDays <= 0 {
		return DefaultMaxLookbackDays
	}
	return rt.MaxLookbackDays
}

// IsVacation reports whether code is a vacation code
func (rt RuleTable) IsVacation(code string) bool { return contains(rt.VacationCodes, code) }

// IsLeave reports whether code marks the person as on leave
func (rt RuleTable) IsLeave(code string) bool { return contains(rt.LeaveCodes, code) }

// IsTraining reports whether code is a training code
func (rt RuleTable) IsTraining(code string) bool { return contains(rt.TrainingCodes, code) }

// IsPassThrough reports whether the backward search steps over code
func (rt RuleTable) IsPassThrough(code string) bool { return contains(rt.PassThroughCodes, code) }

// IsNoSaturday reports whether code on a Saturday rules the person out
func (rt RuleTable) IsNoSaturday(code string) bool { return contains(rt.NoSaturdayCodes, code) }

// IsSaturdayWorked reports whether a Saturday cell counts as a worked Saturday
func (rt RuleTable) IsSaturdayWorked(code string) bool {
	return contains(rt.SaturdayWorkableCodes, code)
}

// AcceptsOnSaturday reports whether a code may be written on a Saturday.
// The upper-cased code must contain one of the Saturday-workable tokens.
func (rt RuleTable) AcceptsOnSaturday(code string) bool {
	upper := strings.ToUpper(code)
	for _, token := range rt.SaturdayWorkableCodes {
		if token != "" && strings.Contains(upper, strings.ToUpper(token)) {
			return true
		}
	}
	return false
}

// IsExcludedRole reports whether the role is excluded from Saturday work
func (rt RuleTable) IsExcludedRole(role string) bool {
	return rt.ExcludedRole != "" && strings.EqualFold(strings.TrimSpace(role), rt.ExcludedRole)
}

// IsPrimaryShift reports whether code is one of the shifts a person can be reactivated onto
func IsPrimaryShift(code string) bool {
	return contains(PrimaryShifts, code)
}

func contains(set []string, code string) bool {
	if code == "" {
		return false
	}
	return slices.ContainsFunc(set, func(s string) bool {
		return strings.EqualFold(s, code)
	})
}
