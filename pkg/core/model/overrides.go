package model

import (
	"time"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/codes"
)

// OverrideStore holds manual edits: person id -> ISO date -> code.
// Overrides always win over computed layers for their exact date.
type OverrideStore map[string]map[string]codes.Code

// For returns a person's overrides (nil if none)
func (s OverrideStore) For(personID string) map[string]codes.Code {
	return s[personID]
}

// Set records an override
func (s OverrideStore) Set(personID string, date time.Time, code codes.Code) {
	entries, ok := s[personID]
	if !ok {
		entries = make(map[string]codes.Code)
		s[personID] = entries
	}
	entries[calendar.FormatDate(date)] = code
}

// Delete removes one override
func (s OverrideStore) Delete(personID, date string) {
	entries, ok := s[personID]
	if !ok {
		return
	}
	delete(entries, date)
	if len(entries) == 0 {
		delete(s, personID)
	}
}

// Purge drops every override belonging to a person
func (s OverrideStore) Purge(personID string) {
	delete(s, personID)
}
