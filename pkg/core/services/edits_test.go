package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-planner/pkg/core/overrides"
	"github.com/jakechorley/shift-planner/pkg/db"
)

func TestApplyOverride_Day(t *testing.T) {
	store := newTestStore()

	outcome, err := ApplyOverride(context.Background(), store, zap.NewNop(), testSettings(),
		OverrideRequest{PersonID: "p2", Date: "2024-07-10", Code: "v", Mode: "day"}, date("2024-07-01"))
	require.NoError(t, err)
	assert.Equal(t, "V", outcome.Written["2024-07-10"].String())

	require.Len(t, store.applied, 1)
	assert.Equal(t, []db.Override{{PersonID: "p2", Date: "2024-07-10", Code: "V"}}, store.applied[0].Upserts)
}

func TestApplyOverride_DayRejected(t *testing.T) {
	store := newTestStore()

	_, err := ApplyOverride(context.Background(), store, zap.NewNop(), testSettings(),
		OverrideRequest{PersonID: "p2", Date: "2024-07-14", Code: "M", Mode: "day"}, date("2024-07-01"))

	var rejection *overrides.RejectionError
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, overrides.ReasonSunday, rejection.Reason)
	assert.Empty(t, store.applied)
}

func TestApplyOverride_WeekPermissionToggle(t *testing.T) {
	store := newTestStore()

	outcome, err := ApplyOverride(context.Background(), store, zap.NewNop(), testSettings(),
		OverrideRequest{PersonID: "p1", Date: "2024-07-10", Code: "P", Mode: "week"}, date("2024-07-01"))
	require.NoError(t, err)

	require.Len(t, outcome.Written, 5)
	for _, d := range []string{"2024-07-08", "2024-07-09", "2024-07-10", "2024-07-11", "2024-07-12"} {
		assert.Equal(t, "M/P", outcome.Written[d].String(), d)
	}
	require.Len(t, outcome.Skipped, 2)
	assert.Equal(t, overrides.ReasonSaturdayCode, outcome.Skipped[0].Reason)
	assert.Equal(t, overrides.ReasonSunday, outcome.Skipped[1].Reason)

	require.Len(t, store.applied, 1)
	assert.Len(t, store.applied[0].Upserts, 5)
}

func TestApplyOverride_PermissionToggleOff(t *testing.T) {
	store := newTestStore()
	store.overrides = []db.Override{{PersonID: "p1", Date: "2024-07-10", Code: "M/P"}}

	outcome, err := ApplyOverride(context.Background(), store, zap.NewNop(), testSettings(),
		OverrideRequest{PersonID: "p1", Date: "2024-07-10", Code: "P", Mode: "day"}, date("2024-07-01"))
	require.NoError(t, err)
	assert.Equal(t, "M", outcome.Written["2024-07-10"].String())
}

func TestApplyOverride_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		req     OverrideRequest
		wantErr string
	}{
		{name: "bad date", req: OverrideRequest{PersonID: "p1", Date: "10/07/2024", Code: "M", Mode: "day"}, wantErr: "invalid date"},
		{name: "malformed code", req: OverrideRequest{PersonID: "p1", Date: "2024-07-10", Code: "M/P/D", Mode: "day"}, wantErr: "invalid code"},
		{name: "empty code", req: OverrideRequest{PersonID: "p1", Date: "2024-07-10", Code: " ", Mode: "day"}, wantErr: overrides.ErrEmptyCode.Error()},
		{name: "bad mode", req: OverrideRequest{PersonID: "p1", Date: "2024-07-10", Code: "M", Mode: "month"}, wantErr: "mode"},
		{name: "unknown person", req: OverrideRequest{PersonID: "p9", Date: "2024-07-10", Code: "M", Mode: "day"}, wantErr: "person not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore()
			_, err := ApplyOverride(context.Background(), store, zap.NewNop(), testSettings(), tt.req, date("2024-07-01"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, store.applied)
		})
	}
}

func TestApplyOverride_ReactivatesLeavePerson(t *testing.T) {
	store := newTestStore()
	store.people = append(store.people, db.Person{ID: "p4", Name: "David", Role: "Agent", DefaultShift: "B"})
	store.overrides = []db.Override{
		{PersonID: "p4", Date: "2024-06-20", Code: "B"},
		{PersonID: "p4", Date: "2024-07-15", Code: "B"},
	}

	outcome, err := ApplyOverride(context.Background(), store, zap.NewNop(), testSettings(),
		OverrideRequest{PersonID: "p4", Date: "2024-07-10", Code: "T", Mode: "day"}, date("2024-07-01"))
	require.NoError(t, err)
	require.NotNil(t, outcome.Reactivation)
	assert.Empty(t, outcome.Written)

	require.Len(t, store.applied, 1)
	changes := store.applied[0]
	require.NotNil(t, changes.ShiftUpdate)
	assert.Equal(t, db.ShiftUpdate{PersonID: "p4", Shift: "T"}, *changes.ShiftUpdate)
	assert.Equal(t, []db.OverrideKey{{PersonID: "p4", Date: "2024-07-15"}}, changes.Deletes)
}

func TestReactivate(t *testing.T) {
	store := newTestStore()
	store.people = append(store.people, db.Person{ID: "p4", Name: "David", Role: "Agent", DefaultShift: "B"})
	store.overrides = []db.Override{
		{PersonID: "p4", Date: "2024-07-20", Code: "B"},
		{PersonID: "p4", Date: "2024-07-22", Code: "V"},
	}

	reactivation, err := Reactivate(context.Background(), store, zap.NewNop(), testSettings(), "p4", "jf", date("2024-07-01"))
	require.NoError(t, err)
	assert.Equal(t, "B", string(reactivation.Previous))
	assert.Equal(t, "JF", string(reactivation.Shift))
	assert.Equal(t, []string{"2024-07-20"}, reactivation.PurgedDates)

	require.Len(t, store.applied, 1)
	assert.Empty(t, store.applied[0].Upserts)
	assert.Equal(t, []db.OverrideKey{{PersonID: "p4", Date: "2024-07-20"}}, store.applied[0].Deletes)
}

func TestReactivate_Errors(t *testing.T) {
	store := newTestStore()

	_, err := Reactivate(context.Background(), store, zap.NewNop(), testSettings(), "p1", "X", date("2024-07-01"))
	assert.Error(t, err)

	_, err = Reactivate(context.Background(), store, zap.NewNop(), testSettings(), "p1", "B", date("2024-07-01"))
	assert.Error(t, err, "reactivating onto leave")

	_, err = Reactivate(context.Background(), store, zap.NewNop(), testSettings(), "missing", "M", date("2024-07-01"))
	assert.Error(t, err)

	assert.Empty(t, store.applied)
}
