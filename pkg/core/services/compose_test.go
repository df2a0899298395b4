package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/db"
)

func TestComposeMonth(t *testing.T) {
	store := newTestStore()
	store.overrides = []db.Override{
		{PersonID: "p1", Date: "2024-07-10", Code: "V"},
	}

	result, err := ComposeMonth(context.Background(), store, zap.NewNop(), testSettings(), calendar.Month{Year: 2024, Month: time.July})
	require.NoError(t, err)
	require.Len(t, result.Composition.People, 3)

	comp := result.Composition
	assert.Equal(t, "M", comp.CodeOn("p1", date("2024-07-09")).String())
	assert.Equal(t, "V", comp.CodeOn("p1", date("2024-07-10")).String())
	assert.Equal(t, "T", comp.CodeOn("p2", date("2024-07-09")).String())
	assert.Equal(t, "D", comp.CodeOn("p2", date("2024-07-13")).String())
	assert.Equal(t, "FN", comp.CodeOn("p2", date("2024-07-25")).String())

	kind, ok := result.Holidays.On(date("2024-07-25"))
	require.True(t, ok)
	assert.Equal(t, calendar.KindNational, kind)
}

func TestComposeMonth_SnapshotError(t *testing.T) {
	store := newTestStore()
	store.getSnapshotErr = errors.New("connection refused")

	_, err := ComposeMonth(context.Background(), store, zap.NewNop(), testSettings(), calendar.Month{Year: 2024, Month: time.July})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch snapshot")
}

func TestComposeMonth_BadStoredShift(t *testing.T) {
	store := newTestStore()
	store.people = append(store.people, db.Person{ID: "p9", Name: "Bad", Role: "Agent", DefaultShift: "X"})

	_, err := ComposeMonth(context.Background(), store, zap.NewNop(), testSettings(), calendar.Month{Year: 2024, Month: time.July})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load state")
}

func TestWeekView(t *testing.T) {
	store := newTestStore()
	store.overrides = []db.Override{
		{PersonID: "p2", Date: "2024-07-31", Code: "T/P"},
	}

	// Week of Wednesday 2024-07-31 spans July and August
	view, err := WeekView(context.Background(), store, zap.NewNop(), testSettings(), date("2024-07-31"))
	require.NoError(t, err)

	require.Len(t, view.Days, 7)
	assert.Equal(t, "2024-07-29", calendar.FormatDate(view.Days[0]))
	assert.Equal(t, "2024-08-04", calendar.FormatDate(view.Days[6]))

	require.Len(t, view.Rows, 3)
	assert.Equal(t, "Ana", view.Rows[0].Person.Name)
	assert.Equal(t, "Laura", view.Rows[1].Person.Name)
	assert.Equal(t, "Carlos", view.Rows[2].Person.Name)

	carlos := view.Rows[2]
	assert.Equal(t, "T/P", carlos.Cells[2].Code)
	assert.Equal(t, []string{"T", "P"}, carlos.Cells[2].Halves)
	assert.Equal(t, "T", carlos.Cells[3].Code, "August is composed too")
	assert.Nil(t, carlos.Cells[3].Halves, "atomic codes are not split")
	assert.Equal(t, "D", carlos.Cells[6].Code)
}
