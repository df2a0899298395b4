package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jakechorley/shift-planner/pkg/core/model"
	"github.com/jakechorley/shift-planner/pkg/db"
)

// GetPeople retrieves the roster in insertion order
func (d *DB) GetPeople(ctx context.Context) ([]db.Person, error) {
	return getPeople(ctx, d.conn)
}

func getPeople(ctx context.Context, q queryer) ([]db.Person, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, role, default_shift
		FROM person
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	var people []db.Person
	for rows.Next() {
		var p db.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.DefaultShift); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating people: %w", err)
	}

	return people, nil
}

// InsertPerson inserts a new roster record
func (d *DB) InsertPerson(ctx context.Context, person *db.Person) error {
	return d.InsertPeople(ctx, []db.Person{*person})
}

// InsertPeople inserts roster records in order within one transaction
func (d *DB) InsertPeople(ctx context.Context, people []db.Person) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		for _, person := range people {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO person (id, name, role, default_shift)
				VALUES (?, ?, ?, ?)
			`, person.ID, person.Name, person.Role, person.DefaultShift)
			if err != nil {
				return fmt.Errorf("failed to insert person %s: %w", person.Name, err)
			}
		}
		return nil
	})
}

// UpdatePersonShift sets a person's default shift
func (d *DB) UpdatePersonShift(ctx context.Context, personID, shift string) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		return updatePersonShift(ctx, tx, personID, shift)
	})
}

func updatePersonShift(ctx context.Context, tx *sql.Tx, personID, shift string) error {
	result, err := tx.ExecContext(ctx, `UPDATE person SET default_shift = ? WHERE id = ?`, shift, personID)
	if err != nil {
		return fmt.Errorf("failed to update person shift: %w", err)
	}
	return requireAffected(result, personID)
}

// DeletePerson removes a person and all of their overrides
func (d *DB) DeletePerson(ctx context.Context, personID string) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM override WHERE person_id = ?`, personID); err != nil {
			return fmt.Errorf("failed to delete overrides: %w", err)
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM person WHERE id = ?`, personID)
		if err != nil {
			return fmt.Errorf("failed to delete person: %w", err)
		}
		return requireAffected(result, personID)
	})
}

func requireAffected(result sql.Result, personID string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", model.ErrPersonNotFound, personID)
	}
	return nil
}
