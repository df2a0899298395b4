package db

import (
	"fmt"
	"slices"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/codes"
	"github.com/jakechorley/shift-planner/pkg/core/model"
	"github.com/jakechorley/shift-planner/pkg/core/overrides"
)

// ToModelPerson converts a record into a roster person
func ToModelPerson(p Person) (model.Person, error) {
	shift, err := model.ParseShift(p.DefaultShift)
	if err != nil {
		return model.Person{}, fmt.Errorf("person %s: %w", p.ID, err)
	}
	return model.Person{ID: p.ID, Name: p.Name, Role: p.Role, DefaultShift: shift}, nil
}

// FromModelPerson converts a roster person into a record
func FromModelPerson(p model.Person) Person {
	return Person{ID: p.ID, Name: p.Name, Role: p.Role, DefaultShift: string(p.DefaultShift)}
}

// ToRoster builds a roster from records, keeping their order
func ToRoster(people []Person) (*model.Roster, error) {
	converted := make([]model.Person, 0, len(people))
	for _, p := range people {
		person, err := ToModelPerson(p)
		if err != nil {
			return nil, err
		}
		converted = append(converted, person)
	}
	return model.NewRoster(converted)
}

// ToOverrideStore builds the in-memory override store.
// Records with an invalid date are dropped; malformed codes read as rest.
func ToOverrideStore(records []Override) model.OverrideStore {
	store := model.OverrideStore{}
	for _, r := range records {
		date, err := calendar.ParseDate(r.Date)
		if err != nil {
			continue
		}
		store.Set(r.PersonID, date, codes.Lookup(r.Code))
	}
	return store
}

// State converts the snapshot into editor state
func (s *Snapshot) State() (overrides.State, error) {
	roster, err := ToRoster(s.People)
	if err != nil {
		return overrides.State{}, fmt.Errorf("failed to build roster: %w", err)
	}
	return overrides.State{Roster: roster, Overrides: ToOverrideStore(s.Overrides)}, nil
}

// ChangesFromOutcome lists the writes needed to persist an edit outcome
func ChangesFromOutcome(outcome *overrides.Outcome) OverrideChanges {
	var changes OverrideChanges
	if outcome == nil {
		return changes
	}

	dates := make([]string, 0, len(outcome.Written))
	for date := range outcome.Written {
		dates = append(dates, date)
	}
	slices.Sort(dates)
	for _, date := range dates {
		changes.Upserts = append(changes.Upserts, Override{
			PersonID: outcome.PersonID,
			Date:     date,
			Code:     outcome.Written[date].String(),
		})
	}

	if r := outcome.Reactivation; r != nil {
		changes.ShiftUpdate = &ShiftUpdate{PersonID: r.PersonID, Shift: string(r.Shift)}
		for _, date := range r.PurgedDates {
			changes.Deletes = append(changes.Deletes, OverrideKey{PersonID: r.PersonID, Date: date})
		}
	}

	return changes
}
