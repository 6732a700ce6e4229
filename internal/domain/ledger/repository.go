package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// Repository provides the sole sanctioned token balance mutation path:
// every balance write happens in the same transaction as its ledger entry.
type Repository interface {
	Adjust(ctx context.Context, userID uuid.UUID, delta int, cause Cause, reference string) (int, error)
	AdjustTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, delta int, cause Cause, reference string) (int, error)
	GetBalance(ctx context.Context, userID uuid.UUID) (int, error)
	SumDeltas(ctx context.Context, userID uuid.UUID) (int, error)
	ListByUser(ctx context.Context, userID uuid.UUID, pagination Pagination) ([]Entry, error)
}

// LedgerRepository implements Repository over Postgres.
type LedgerRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Adjust applies a signed delta to the user's balance and appends the
// corresponding ledger entry in one transaction. The conditional UPDATE is
// the serialization point: concurrent adjustments against the same account
// queue on the row and the balance can never go negative.
func (r *LedgerRepository) Adjust(ctx context.Context, userID uuid.UUID, delta int, cause Cause, reference string) (int, error) {
	if delta == 0 {
		return 0, ErrInvalidAmount
	}
	if !IsValidCause(cause) {
		return 0, ErrInvalidCause
	}

	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	var balance int
	err = tx.QueryRowContext(ctx2, `
		UPDATE users
		SET token_balance = token_balance + $2, updated_at = NOW()
		WHERE id = $1 AND token_balance + $2 >= 0
		RETURNING token_balance
	`, userID, delta).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, r.classifyRejection(ctx2, tx, userID)
		}
		return 0, fmt.Errorf("%w: update user balance", ErrInternal)
	}

	if err := r.insertEntry(ctx2, tx, userID, delta, cause, reference); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit tx", ErrInternal)
	}

	return balance, nil
}

// AdjustTx applies a delta within a caller-owned transaction using a
// FOR UPDATE row lock. Used when the adjustment must be atomic with another
// operation (payment approval). The caller commits or rolls back.
func (r *LedgerRepository) AdjustTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, delta int, cause Cause, reference string) (int, error) {
	if delta == 0 {
		return 0, ErrInvalidAmount
	}
	if !IsValidCause(cause) {
		return 0, ErrInvalidCause
	}

	var balance int
	err := tx.QueryRowContext(ctx, `SELECT token_balance FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("%w: lock user row", ErrInternal)
	}

	if balance+delta < 0 {
		return 0, ErrInsufficientTokens
	}

	err = tx.QueryRowContext(ctx, `
		UPDATE users SET token_balance = token_balance + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING token_balance
	`, userID, delta).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("%w: update user balance", ErrInternal)
	}

	if err := r.insertEntry(ctx, tx, userID, delta, cause, reference); err != nil {
		return 0, err
	}

	return balance, nil
}

func (r *LedgerRepository) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var balance int
	err := r.db.GetContext(ctx2, &balance, `SELECT token_balance FROM users WHERE id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("%w: get balance", ErrInternal)
	}

	return balance, nil
}

// SumDeltas recomputes the balance from the ledger. Used by tests and the
// admin consistency check; must always equal users.token_balance.
func (r *LedgerRepository) SumDeltas(ctx context.Context, userID uuid.UUID) (int, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var sum int
	err := r.db.GetContext(ctx2, &sum, `
		SELECT COALESCE(SUM(delta), 0) FROM ledger_entries WHERE user_id = $1
	`, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: sum deltas", ErrInternal)
	}

	return sum, nil
}

func (r *LedgerRepository) ListByUser(ctx context.Context, userID uuid.UUID, pagination Pagination) ([]Entry, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	limit := pagination.Limit
	if limit <= 0 {
		limit = 20
	}

	entries := make([]Entry, 0)
	err := r.db.SelectContext(ctx2, &entries, `
		SELECT id, user_id, delta, cause, reference, created_at
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, pagination.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list entries", ErrInternal)
	}

	return entries, nil
}

// classifyRejection distinguishes a missing account from an unaffordable
// adjustment after the conditional UPDATE matched no row.
func (r *LedgerRepository) classifyRejection(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return fmt.Errorf("%w: check user", ErrInternal)
	}
	if !exists {
		return ErrUserNotFound
	}
	return ErrInsufficientTokens
}

func (r *LedgerRepository) insertEntry(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, delta int, cause Cause, reference string) error {
	ref := sql.NullString{String: reference, Valid: reference != ""}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO ledger_entries (id, user_id, delta, cause, reference)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)
	`, userID, delta, cause, ref)
	if err != nil {
		return fmt.Errorf("%w: insert ledger entry", ErrInternal)
	}

	return nil
}
