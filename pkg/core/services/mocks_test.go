package services

import (
	"context"
	"time"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/model"
	"github.com/jakechorley/shift-planner/pkg/core/rules"
	"github.com/jakechorley/shift-planner/pkg/db"
	"github.com/jakechorley/shift-planner/pkg/export"
)

// mockStore implements the store interfaces the services need
type mockStore struct {
	people    []db.Person
	overrides []db.Override

	applied  []db.OverrideChanges
	inserted []*db.Person
	deleted  []string

	getSnapshotErr error
	getPeopleErr   error
	applyErr       error
	insertErr      error
	deleteErr      error
}

func (m *mockStore) GetSnapshot(ctx context.Context) (*db.Snapshot, error) {
	if m.getSnapshotErr != nil {
		return nil, m.getSnapshotErr
	}
	return &db.Snapshot{People: m.people, Overrides: m.overrides}, nil
}

func (m *mockStore) ApplyOverrideChanges(ctx context.Context, changes db.OverrideChanges) error {
	if m.applyErr != nil {
		return m.applyErr
	}
	m.applied = append(m.applied, changes)
	return nil
}

func (m *mockStore) GetPeople(ctx context.Context) ([]db.Person, error) {
	if m.getPeopleErr != nil {
		return nil, m.getPeopleErr
	}
	return m.people, nil
}

func (m *mockStore) InsertPerson(ctx context.Context, person *db.Person) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, person)
	m.people = append(m.people, *person)
	return nil
}

func (m *mockStore) InsertPeople(ctx context.Context, people []db.Person) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	for i := range people {
		m.inserted = append(m.inserted, &people[i])
	}
	m.people = append(m.people, people...)
	return nil
}

func (m *mockStore) UpdatePersonShift(ctx context.Context, personID, shift string) error {
	return nil
}

func (m *mockStore) DeletePerson(ctx context.Context, personID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, personID)
	return nil
}

// mockPublisher records published tables
type mockPublisher struct {
	spreadsheetID string
	tables        []*export.MonthTable
	err           error
}

func (m *mockPublisher) PublishMonth(spreadsheetID string, table *export.MonthTable) error {
	if m.err != nil {
		return m.err
	}
	m.spreadsheetID = spreadsheetID
	m.tables = append(m.tables, table)
	return nil
}

// testSettings uses the default rules with the rotation anchored after every test date,
// so Saturdays only hold what the tests put there
func testSettings() Settings {
	rt := rules.Default()
	rt.RotationEpoch = time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	return Settings{
		Rules: rt,
		Holidays: []calendar.HolidayRule{
			{Name: "Santiago", Kind: calendar.KindNational, Date: "2024-07-25"},
		},
		LookbackMonths: 1,
	}
}

func newTestStore() *mockStore {
	return &mockStore{
		people: []db.Person{
			{ID: "p1", Name: "Ana", Role: "Agent", DefaultShift: string(model.ShiftMorning)},
			{ID: "p2", Name: "Carlos", Role: "Agent", DefaultShift: string(model.ShiftAfternoon)},
			{ID: "p3", Name: "Laura", Role: "COOR", DefaultShift: string(model.ShiftMorning)},
		},
	}
}

func date(s string) time.Time {
	d, err := calendar.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
