package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

type Repository interface {
	Create(ctx context.Context, c *Chat) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Chat, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Chat) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO chats (user_id, subject, question, answer, request_kind, tokens_used)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		c.UserID, c.Subject, c.Question, c.Answer, c.RequestKind, c.TokensUsed,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: create chat: %v", ErrInternal, err)
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Chat, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	chats := []Chat{}
	err := r.db.SelectContext(ctx, &chats, `
		SELECT * FROM chats
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: list chats: %v", ErrInternal, err)
	}
	return chats, nil
}

func (r *repository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM chats WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("%w: count chats: %v", ErrInternal, err)
	}
	return count, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM chats`); err != nil {
		return 0, fmt.Errorf("%w: count chats: %v", ErrInternal, err)
	}
	return count, nil
}
