package payment

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/polltech/smarttutors/internal/domain/ledger"
)

// Service handles payment claim intake and the admin approval workflow.
type Service struct {
	db        *sqlx.DB
	repo      Repository
	ledgerSvc ledger.Service
}

// NewService creates payment service
func NewService(db *sqlx.DB, repo Repository, ledgerSvc ledger.Service) *Service {
	return &Service{db: db, repo: repo, ledgerSvc: ledgerSvc}
}

// Submit stores an externally verified M-PESA transaction code as a pending
// claim. Codes are case-sensitive and never reusable.
func (s *Service) Submit(ctx context.Context, userID uuid.UUID, code string) (*PendingPayment, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrEmptyCode
	}

	p := &PendingPayment{
		ID:     uuid.New(),
		UserID: userID,
		Code:   code,
		Status: StatusPending,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Approve transitions a pending claim to approved and credits the tokens.
// The CAS status update and the ledger credit run in one transaction, so the
// credit is applied exactly once: a second Approve fails the CAS and the
// first either fully commits or fully rolls back.
func (s *Service) Approve(ctx context.Context, paymentID uuid.UUID, creditedTokens int, reviewedBy uuid.UUID) (*PendingPayment, error) {
	if creditedTokens <= 0 {
		return nil, ErrInvalidAmount
	}

	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	p, err := s.repo.TransitionTx(ctx, tx, paymentID, StatusApproved, creditedTokens, reviewedBy)
	if err != nil {
		return nil, err
	}

	if _, err := s.ledgerSvc.CreditTx(ctx, tx, p.UserID, creditedTokens, ledger.CauseMpesaApproved, p.Code); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit tx", ErrInternal)
	}

	log.Info().
		Str("payment_id", p.ID.String()).
		Str("user_id", p.UserID.String()).
		Int("tokens", creditedTokens).
		Msg("payment approved")

	return p, nil
}

// Reject transitions a pending claim to rejected. No ledger effect; the code
// stays burned.
func (s *Service) Reject(ctx context.Context, paymentID uuid.UUID, reviewedBy uuid.UUID) (*PendingPayment, error) {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	p, err := s.repo.TransitionTx(ctx, tx, paymentID, StatusRejected, 0, reviewedBy)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit tx", ErrInternal)
	}

	log.Info().
		Str("payment_id", p.ID.String()).
		Str("user_id", p.UserID.String()).
		Msg("payment rejected")

	return p, nil
}

// ListPending returns claims awaiting review, newest first.
func (s *Service) ListPending(ctx context.Context, limit, offset int) ([]PendingPayment, error) {
	return s.repo.ListPending(ctx, limit, offset)
}

// ListByUser returns a user's own claims.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]PendingPayment, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}
