package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/codes"
)

// ErrPersonNotFound is returned when an operation targets an unknown person id
var ErrPersonNotFound = errors.New("person not found")

// Shift is a person's default working pattern
type Shift string

const (
	ShiftMorning   Shift = "M"
	ShiftAfternoon Shift = "T"
	ShiftLeave     Shift = "B"
	ShiftFlexible  Shift = "JF"
)

// ParseShift parses a default shift (case-insensitive)
func ParseShift(s string) (Shift, error) {
	switch shift := Shift(strings.ToUpper(strings.TrimSpace(s))); shift {
	case ShiftMorning, ShiftAfternoon, ShiftLeave, ShiftFlexible:
		return shift, nil
	default:
		return "", fmt.Errorf("invalid default shift %q (expected M, T, B or JF)", s)
	}
}

// IsLeave reports whether the shift means indefinite leave
func (s Shift) IsLeave() bool {
	return s == ShiftLeave
}

// Code returns the schedule code written for this shift on a working day
func (s Shift) Code() codes.Code {
	return codes.Atomic(string(s))
}

// Person represents a roster member
type Person struct {
	ID           string
	Name         string
	Role         string
	DefaultShift Shift
}

// DaySchedule maps ISO dates to the code for that day
type DaySchedule map[string]codes.Code

// On returns the code for a date and whether an entry exists
func (ds DaySchedule) On(t time.Time) (codes.Code, bool) {
	code, ok := ds[calendar.FormatDate(t)]
	return code, ok
}

// CodeOn returns the code for a date, reading missing entries as rest
func (ds DaySchedule) CodeOn(t time.Time) codes.Code {
	code, _ := ds.On(t)
	return code.OrRest()
}

// Set writes the code for a date
func (ds DaySchedule) Set(t time.Time, code codes.Code) {
	ds[calendar.FormatDate(t)] = code
}

// PersonSchedule pairs a person with their composed schedule
type PersonSchedule struct {
	Person   Person
	Schedule DaySchedule
}
