package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/shift-planner/pkg/db"
)

// GetOverrides retrieves every manual override
func (d *DB) GetOverrides(ctx context.Context) ([]db.Override, error) {
	return getOverrides(ctx, d.pool)
}

func getOverrides(ctx context.Context, q querier) ([]db.Override, error) {
	rows, err := q.Query(ctx, `
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
		var date time.Time
		if err := rows.Scan(&o.PersonID, &date, &o.Code); err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		o.Date = date.Format("2006-01-02")
		overrides = append(overrides, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating overrides: %w", err)
	}

	return overrides, nil
}

// UpsertOverrides inserts overrides, replacing any existing code for the same person and date
func (d *DB) UpsertOverrides(ctx context.Context, overrides []db.Override) error {
	return d.withTx(ctx, func(tx pgx.Tx) error {
		return upsertOverrides(ctx, tx, overrides)
	})
}

func upsertOverrides(ctx context.Context, tx pgx.Tx, overrides []db.Override) error {
	if len(overrides) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, o := range overrides {
		batch.Queue(`
			INSERT INTO override (person_id, date, code)
			VALUES ($1, $2, $3)
			ON CONFLICT (person_id, date) DO UPDATE SET code = EXCLUDED.code, updated_at = NOW()
		`, o.PersonID, o.Date, o.Code)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to upsert overrides: %w", err)
	}
	return nil
}

// DeleteOverrides removes the given overrides; missing keys are ignored
func (d *DB) DeleteOverrides(ctx context.Context, keys []db.OverrideKey) error {
	return d.withTx(ctx, func(tx pgx.Tx) error {
		return deleteOverrides(ctx, tx, keys)
	})
}

func deleteOverrides(ctx context.Context, tx pgx.Tx, keys []db.OverrideKey) error {
	for _, k := range keys {
		if _, err := tx.Exec(ctx, `DELETE FROM override WHERE person_id = $1 AND date = $2`, k.PersonID, k.Date); err != nil {
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
	return d.withTx(ctx, func(tx pgx.Tx) error {
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

// GetSnapshot reads the roster and overrides in one repeatable-read transaction
func (d *DB) GetSnapshot(ctx context.Context) (*db.Snapshot, error) {
	tx, err := d.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	people, err := getPeople(ctx, tx)
	if err != nil {
		return nil, err
	}
	overrides, err := getOverrides(ctx, tx)
	if err != nil {
		return nil, err
	}

	return &db.Snapshot{People: people, Overrides: overrides}, nil
}
