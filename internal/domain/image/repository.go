package image

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

type Repository interface {
	Create(ctx context.Context, l *Log) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Log, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *Log) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO image_logs (user_id, description, subject, image_url, api_source)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		l.UserID, l.Description, l.Subject, l.ImageURL, l.APISource,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: create image log: %v", ErrInternal, err)
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Log, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	logs := []Log{}
	err := r.db.SelectContext(ctx, &logs, `
		SELECT * FROM image_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: list image logs: %v", ErrInternal, err)
	}
	return logs, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM image_logs`); err != nil {
		return 0, fmt.Errorf("%w: count image logs: %v", ErrInternal, err)
	}
	return count, nil
}
