package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/codes"
)

func TestParseShift(t *testing.T) {
	shift, err := ParseShift("jf")
	require.NoError(t, err)
	assert.Equal(t, ShiftFlexible, shift)
	assert.False(t, shift.IsLeave())
	assert.True(t, ShiftLeave.IsLeave())

	_, err = ParseShift("MS")
	assert.Error(t, err)
}

func TestRoster_AddGetRemove(t *testing.T) {
	roster, err := NewRoster([]Person{
		{ID: "p1", Name: "Ana", DefaultShift: ShiftMorning},
		{ID: "p2", Name: "Carlos", DefaultShift: ShiftAfternoon},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, roster.Len())

	p, ok := roster.Get("p2")
	require.True(t, ok)
	assert.Equal(t, "Carlos", p.Name)

	assert.Error(t, roster.Add(Person{ID: "p1"}), "duplicate id")
	assert.Error(t, roster.Add(Person{ID: " "}), "empty id")

	require.NoError(t, roster.Remove("p1"))
	_, ok = roster.Get("p1")
	assert.False(t, ok)

	err = roster.Remove("p1")
	assert.ErrorIs(t, err, ErrPersonNotFound)
}

func TestRoster_PeopleIsACopy(t *testing.T) {
	roster, err := NewRoster([]Person{{ID: "p1", Name: "Ana"}})
	require.NoError(t, err)

	people := roster.People()
	people[0].Name = "Changed"

	p, _ := roster.Get("p1")
	assert.Equal(t, "Ana", p.Name)
}

func TestRoster_SetDefaultShift(t *testing.T) {
	roster, err := NewRoster([]Person{{ID: "p1", DefaultShift: ShiftLeave}})
	require.NoError(t, err)

	require.NoError(t, roster.SetDefaultShift("p1", ShiftMorning))
	p, _ := roster.Get("p1")
	assert.Equal(t, ShiftMorning, p.DefaultShift)

	assert.ErrorIs(t, roster.SetDefaultShift("nobody", ShiftMorning), ErrPersonNotFound)
}

func TestDaySchedule_CodeOnDefaultsToRest(t *testing.T) {
	ds := DaySchedule{}
	day := calendar.Date(2024, time.July, 1)

	_, ok := ds.On(day)
	assert.False(t, ok)
	assert.Equal(t, codes.Rest, ds.CodeOn(day))

	ds.Set(day, codes.Atomic("M"))
	assert.Equal(t, codes.Atomic("M"), ds.CodeOn(day))
}

func TestOverrideStore(t *testing.T) {
	store := OverrideStore{}
	day := calendar.Date(2024, time.July, 1)

	store.Set("p1", day, codes.Atomic("V"))
	assert.Equal(t, codes.Atomic("V"), store.For("p1")["2024-07-01"])

	store.Set("p2", day, codes.Atomic("M"))
	store.Delete("p1", "2024-07-01")
	assert.Nil(t, store.For("p1"), "empty maps are dropped")

	store.Purge("p2")
	assert.Empty(t, store)

	store.Delete("unknown", "2024-07-01")
}
