package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const queryTimeout = 3 * time.Second

const paymentColumns = `id, user_id, code, status, credited_tokens, reviewed_by, submitted_at, reviewed_at`

// Repository provides pending payment persistence.
type Repository interface {
	Create(ctx context.Context, p *PendingPayment) error
	GetByID(ctx context.Context, id uuid.UUID) (*PendingPayment, error)
	ListPending(ctx context.Context, limit, offset int) ([]PendingPayment, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]PendingPayment, error)
	TransitionTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, to Status, creditedTokens int, reviewedBy uuid.UUID) (*PendingPayment, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*PendingPayment, error)
}

// PaymentRepository implements Repository over Postgres.
type PaymentRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a new pending claim. The unique constraint on code is the
// single-use guarantee: a reused code maps to ErrDuplicateCode whatever the
// status of the earlier claim.
func (r *PaymentRepository) Create(ctx context.Context, p *PendingPayment) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO pending_payments (id, user_id, code, status)
		VALUES ($1, $2, $3, $4)
		RETURNING submitted_at
	`

	err := r.db.QueryRowContext(ctx2, query, p.ID, p.UserID, p.Code, p.Status).Scan(&p.SubmittedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateCode
		}
		return fmt.Errorf("payment repository create: %w", err)
	}

	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*PendingPayment, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p PendingPayment
	err := r.db.GetContext(ctx2, &p, `SELECT `+paymentColumns+` FROM pending_payments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("payment repository get: %w", err)
	}

	return &p, nil
}

func (r *PaymentRepository) ListPending(ctx context.Context, limit, offset int) ([]PendingPayment, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 50
	}

	payments := make([]PendingPayment, 0)
	err := r.db.SelectContext(ctx2, &payments, `
		SELECT `+paymentColumns+`
		FROM pending_payments
		WHERE status = $1
		ORDER BY submitted_at DESC
		LIMIT $2 OFFSET $3
	`, StatusPending, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("payment repository list pending: %w", err)
	}

	return payments, nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]PendingPayment, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 20
	}

	payments := make([]PendingPayment, 0)
	err := r.db.SelectContext(ctx2, &payments, `
		SELECT `+paymentColumns+`
		FROM pending_payments
		WHERE user_id = $1
		ORDER BY submitted_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("payment repository list by user: %w", err)
	}

	return payments, nil
}

// TransitionTx performs the compare-and-set status transition inside a
// caller-owned transaction: the row only moves if it is still pending.
// Returns the updated row, or ErrNotFound / ErrAlreadyProcessed when the
// CAS matched nothing.
func (r *PaymentRepository) TransitionTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, to Status, creditedTokens int, reviewedBy uuid.UUID) (*PendingPayment, error) {
	credited := sql.NullInt64{Int64: int64(creditedTokens), Valid: to == StatusApproved}

	var p PendingPayment
	err := tx.QueryRowxContext(ctx, `
		UPDATE pending_payments
		SET status = $2, credited_tokens = $3, reviewed_by = $4, reviewed_at = NOW()
		WHERE id = $1 AND status = $5
		RETURNING `+paymentColumns+`
	`, id, to, credited, reviewedBy, StatusPending).StructScan(&p)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment repository transition: %w", err)
	}

	// CAS matched nothing: missing row or already processed.
	existing, gerr := r.GetByIDTx(ctx, tx, id)
	if gerr != nil {
		return nil, gerr
	}
	if !existing.IsPending() {
		return nil, ErrAlreadyProcessed
	}
	return nil, fmt.Errorf("%w: transition race", ErrInternal)
}

func (r *PaymentRepository) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*PendingPayment, error) {
	var p PendingPayment
	err := tx.GetContext(ctx, &p, `SELECT `+paymentColumns+` FROM pending_payments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("payment repository get: %w", err)
	}
	return &p, nil
}
