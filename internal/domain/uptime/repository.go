package uptime

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

var ErrInternal = errors.New("internal error")

type Repository interface {
	Record(ctx context.Context) error
	Stats(ctx context.Context) (*Stats, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Record(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `INSERT INTO ping_logs DEFAULT VALUES`); err != nil {
		return fmt.Errorf("%w: record ping: %v", ErrInternal, err)
	}
	return nil
}

func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var row struct {
		Count int          `db:"count"`
		First sql.NullTime `db:"first"`
		Last  sql.NullTime `db:"last"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT COUNT(*) AS count, MIN(created_at) AS first, MAX(created_at) AS last
		FROM ping_logs`)
	if err != nil {
		return nil, fmt.Errorf("%w: ping stats: %v", ErrInternal, err)
	}

	stats := &Stats{Count: row.Count}
	if row.First.Valid {
		first := row.First.Time
		stats.FirstPing = &first
	}
	if row.Last.Valid {
		last := row.Last.Time
		stats.LastPing = &last
	}
	if row.First.Valid && row.Last.Valid {
		stats.UptimeSeconds = int64(row.Last.Time.Sub(row.First.Time).Seconds())
	}
	return stats, nil
}
