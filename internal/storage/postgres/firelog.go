package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/gt4500/internal/game/ship"
	"github.com/cory-johannsen/gt4500/internal/game/weapon"
)

// FireLogRepository stores fire requests in the fire_log table. It
// implements ship.Journal.
type FireLogRepository struct {
	db *pgxpool.Pool
}

// NewFireLogRepository creates a FireLogRepository backed by db.
//
// Precondition: db must be a valid, open connection pool.
func NewFireLogRepository(db *pgxpool.Pool) *FireLogRepository {
	return &FireLogRepository{db: db}
}

// Record inserts rec. A zero CreatedAt is replaced by the database clock.
func (r *FireLogRepository) Record(ctx context.Context, rec ship.FireRecord) error {
	var err error
	if rec.CreatedAt.IsZero() {
		_, err = r.db.Exec(ctx,
			`INSERT INTO fire_log (id, ship_class, mode, fired, error)
			 VALUES ($1, $2, $3, $4, $5)`,
			rec.ID, rec.ShipClass, string(rec.Mode), rec.Fired, rec.Error,
		)
	} else {
		_, err = r.db.Exec(ctx,
			`INSERT INTO fire_log (id, ship_class, mode, fired, error, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			rec.ID, rec.ShipClass, string(rec.Mode), rec.Fired, rec.Error, rec.CreatedAt,
		)
	}
	if err != nil {
		return fmt.Errorf("recording fire %s: %w", rec.ID, err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
//
// Precondition: limit > 0.
func (r *FireLogRepository) Recent(ctx context.Context, limit int) ([]ship.FireRecord, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be > 0, got %d", limit)
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, ship_class, mode, fired, error, created_at
		 FROM fire_log
		 ORDER BY created_at DESC, id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing fire log: %w", err)
	}

	recs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ship.FireRecord, error) {
		var (
			rec  ship.FireRecord
			mode string
		)
		err := row.Scan(&rec.ID, &rec.ShipClass, &mode, &rec.Fired, &rec.Error, &rec.CreatedAt)
		rec.Mode = weapon.FiringMode(mode)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning fire log: %w", err)
	}
	return recs, nil
}
