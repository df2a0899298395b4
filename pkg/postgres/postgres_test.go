package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-planner/pkg/core/model"
	"github.com/jakechorley/shift-planner/pkg/db"
)

// Integration tests run against a real database when SHIFT_PLANNER_TEST_DATABASE_URL is set
func newTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("SHIFT_PLANNER_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("SHIFT_PLANNER_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := NewDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(database.Close)

	require.NoError(t, database.RunMigrations(ctx))
	// Running twice is a no-op
	require.NoError(t, database.RunMigrations(ctx))
	return database
}

func TestIntegration_PersonLifecycle(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	id := uuid.NewString()
	t.Cleanup(func() { database.DeletePerson(ctx, id) })

	require.NoError(t, database.InsertPerson(ctx, &db.Person{ID: id, Name: "Ana", Role: "Agent", DefaultShift: "B"}))

	err := database.ApplyOverrideChanges(ctx, db.OverrideChanges{
		Upserts:     []db.Override{{PersonID: id, Date: "2024-07-10", Code: "M/P"}},
		ShiftUpdate: &db.ShiftUpdate{PersonID: id, Shift: "M"},
	})
	require.NoError(t, err)

	snapshot, err := database.GetSnapshot(ctx)
	require.NoError(t, err)

	var found *db.Person
	for i := range snapshot.People {
		if snapshot.People[i].ID == id {
			found = &snapshot.People[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "M", found.DefaultShift)
	assert.Contains(t, snapshot.Overrides, db.Override{PersonID: id, Date: "2024-07-10", Code: "M/P"})

	require.NoError(t, database.DeletePerson(ctx, id))
	assert.ErrorIs(t, database.DeletePerson(ctx, id), model.ErrPersonNotFound)

	overrides, err := database.GetOverrides(ctx)
	require.NoError(t, err)
	for _, o := range overrides {
		assert.NotEqual(t, id, o.PersonID)
	}
}

func TestIntegration_InsertPeopleRollsBack(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	first, second := uuid.NewString(), uuid.NewString()
	t.Cleanup(func() {
		database.DeletePerson(ctx, first)
		database.DeletePerson(ctx, second)
	})

	err := database.InsertPeople(ctx, []db.Person{
		{ID: first, Name: "Zed", Role: "Agent", DefaultShift: "M"},
		{ID: first, Name: "Yan", Role: "Agent", DefaultShift: "T"},
	})
	require.Error(t, err, "duplicate id")

	people, err := database.GetPeople(ctx)
	require.NoError(t, err)
	for _, p := range people {
		assert.NotEqual(t, first, p.ID, "nothing from the failed batch is kept")
	}

	require.NoError(t, database.InsertPeople(ctx, []db.Person{
		{ID: first, Name: "Zed", Role: "Agent", DefaultShift: "M"},
		{ID: second, Name: "Yan", Role: "Agent", DefaultShift: "T"},
	}))
}
