package db

import "context"

// PeopleStore defines the interface for roster database operations
type PeopleStore interface {
	GetPeople(ctx context.Context) ([]Person, error)
	InsertPerson(ctx context.Context, person *Person) error
	// InsertPeople inserts every person or none of them
	InsertPeople(ctx context.Context, people []Person) error
	UpdatePersonShift(ctx context.Context, personID, shift string) error
	// DeletePerson removes the person and all of their overrides
	DeletePerson(ctx context.Context, personID string) error
}

// OverrideStore defines the interface for manual override database operations
type OverrideStore interface {
	GetOverrides(ctx context.Context) ([]Override, error)
	UpsertOverrides(ctx context.Context, overrides []Override) error
	DeleteOverrides(ctx context.Context, keys []OverrideKey) error
	ApplyOverrideChanges(ctx context.Context, changes OverrideChanges) error
}

// SnapshotStore reads a consistent view of the roster and overrides
type SnapshotStore interface {
	GetSnapshot(ctx context.Context) (*Snapshot, error)
}

// Database defines the interface for all database operations.
// Both sqlite.DB and postgres.DB implement this interface.
type Database interface {
	PeopleStore
	OverrideStore
	SnapshotStore
	Close()
}
