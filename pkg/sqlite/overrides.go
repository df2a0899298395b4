package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jakechorley/shift-planner/pkg/db"
)

// GetOverrides retrieves every manual override
func (d *DB) GetOverrides(ctx context.Context) ([]db.Override, error) {
	return getOverrides(ctx, d.conn)
}

func getOverrides(ctx context.Context, q queryer) ([]db.Override, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT person_id, date, code
		FROM override
		ORDER BY person_id, date
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query overrides: %w", err)
	}
	defer rows.Close()

	var overrides []db.Override
	for rows.Next() {
		var o db.Override
		if err := rows.Scan(&o.PersonID, &o.Date, &o.Code); err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		overrides = append(overrides, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating overrides: %w", err)
	}

	return overrides, nil
}

// UpsertOverrides inserts overrides, replacing any existing code for the same person and date
func (d *DB) UpsertOverrides(ctx context.Context, overrides []db.Override) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		return upsertOverrides(ctx, tx, overrides)
	})
}

func upsertOverrides(ctx context.Context, tx *sql.Tx, overrides []db.Override) error {
	for _, o := range overrides {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO override (person_id, date, code)
			VALUES (?, ?, ?)
			ON CONFLICT (person_id, date) DO UPDATE SET code = excluded.code, updated_at = CURRENT_TIMESTAMP
		`, o.PersonID, o.Date, o.Code)
		if err != nil {
			return fmt.Errorf("failed to upsert override %s/%s: %w", o.PersonID, o.Date, err)
		}
	}
	return nil
}

// DeleteOverrides removes the given overrides; missing keys are ignored
func (d *DB) DeleteOverrides(ctx context.Context, keys []db.OverrideKey) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		return deleteOverrides(ctx, tx, keys)
	})
}

func deleteOverrides(ctx context.Context, tx *sql.Tx, keys []db.OverrideKey) error {
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, `DELETE FROM override WHERE person_id = ? AND date = ?`, k.PersonID, k.Date); err != nil {
			return fmt.Errorf("failed to delete override %s/%s: %w", k.PersonID, k.Date, err)
		}
	}
	return nil
}

// ApplyOverrideChanges persists the result of one edit in a single transaction
func (d *DB) ApplyOverrideChanges(ctx context.Context, changes db.OverrideChanges) error {
	if changes.IsEmpty() {
		return nil
	}
	return d.withTx(ctx, func(tx *sql.Tx) error {
		if u := changes.ShiftUpdate; u != nil {
			if err := updatePersonShift(ctx, tx, u.PersonID, u.Shift); err != nil {
				return err
			}
		}
		if err := deleteOverrides(ctx, tx, changes.Deletes); err != nil {
			return err
		}
		return upsertOverrides(ctx, tx, changes.Upserts)
	})
}

// GetSnapshot reads the roster and overrides in one transaction
func (d *DB) GetSnapshot(ctx context.Context) (*db.Snapshot, error) {
	var snapshot db.Snapshot
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		people, err := getPeople(ctx, tx)
		if err != nil {
			return err
		}
		overrides, err := getOverrides(ctx, tx)
		if err != nil {
			return err
		}
		snapshot = db.Snapshot{People: people, Overrides: overrides}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return &snapshot, nil
}

var _ db.Database = (*DB)(nil)
