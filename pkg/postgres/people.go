package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jakechorley/shift-planner/pkg/core/model"
	"github.com/jakechorley/shift-planner/pkg/db"
)

// GetPeople retrieves the roster in insertion order
func (d *DB) GetPeople(ctx context.Context) ([]db.Person, error) {
	return getPeople(ctx, d.pool)
}

func getPeople(ctx context.Context, q querier) ([]db.Person, error) {
	rows, err := q.Query(ctx, `
		SELECT id, name, role, default_shift
		FROM person
		ORDER BY seq
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
	return d.withTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, person := range people {
			batch.Queue(`
				INSERT INTO person (id, name, role, default_shift)
				VALUES ($1, $2, $3, $4)
			`, person.ID, person.Name, person.Role, person.DefaultShift)
		}

		results := tx.SendBatch(ctx, batch)
		for _, person := range people {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("failed to insert person %s: %w", person.Name, err)
			}
		}
		return results.Close()
	})
}

// UpdatePersonShift sets a person's default shift
func (d *DB) UpdatePersonShift(ctx context.Context, personID, shift string) error {
	return d.withTx(ctx, func(tx pgx.Tx) error {
		return updatePersonShift(ctx, tx, personID, shift)
	})
}

func updatePersonShift(ctx context.Context, tx pgx.Tx, personID, shift string) error {
	tag, err := tx.Exec(ctx, `UPDATE person SET default_shift = $2 WHERE id = $1`, personID, shift)
	if err != nil {
		return fmt.Errorf("failed to update person shift: %w", err)
	}
	return requireAffected(tag, personID)
}

// DeletePerson removes a person and all of their overrides
func (d *DB) DeletePerson(ctx context.Context, personID string) error {
	return d.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM override WHERE person_id = $1`, personID); err != nil {
			return fmt.Errorf("failed to delete overrides: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM person WHERE id = $1`, personID)
		if err != nil {
			return fmt.Errorf("failed to delete person: %w", err)
		}
		return requireAffected(tag, personID)
	})
}

func requireAffected(tag pgconn.CommandTag, personID string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", model.ErrPersonNotFound, personID)
	}
	return nil
}
