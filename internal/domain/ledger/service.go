package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Notifier receives balance-changed events after successful credits and
// debits. Implementations must not block; a nil notifier is ignored.
type Notifier interface {
	BalanceChanged(ctx context.Context, userID uuid.UUID, balance int, cause Cause)
}

// Service defines the token ledger operations
type Service interface {
	// Charge deducts the cost of a request kind from a user.
	// Returns ErrInsufficientTokens if the balance cannot cover the cost.
	Charge(ctx context.Context, userID uuid.UUID, kind string, reference string) (*Receipt, error)

	// CanAfford reports whether a charge of the given kind would succeed now.
	// Advisory only: Charge remains the authoritative check.
	CanAfford(ctx context.Context, userID uuid.UUID, kind string) (bool, int, error)

	// Grant credits tokens to a user (admin manual grant, signup bonus).
	// The reference labels the entry, e.g. "signup-bonus".
	Grant(ctx context.Context, userID uuid.UUID, amount int, reference string) (*Receipt, error)

	// BulkGrant credits every student account independently and reports
	// per-account outcomes. One account's failure never rolls back another's.
	BulkGrant(ctx context.Context, amount int) (*BulkGrantReport, error)

	// CreditTx credits tokens within a caller-owned transaction (FOR UPDATE
	// row lock). Used by payment approval so the status transition and the
	// credit commit or roll back together.
	CreditTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int, cause Cause, reference string) (int, error)

	// GetBalance returns the current token balance for a user
	GetBalance(ctx context.Context, userID uuid.UUID) (int, error)

	// ListEntries returns paginated ledger history for a user
	ListEntries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Entry, error)
}

// StudentLister enumerates accounts eligible for bulk grants.
// Implemented by an adapter over the user repository in cmd/api.
type StudentLister interface {
	ListStudentIDs(ctx context.Context) ([]uuid.UUID, error)
}

// service implements the Service interface
type service struct {
	repo     Repository
	students StudentLister
	notifier Notifier
}

// NewService creates a new ledger service
func NewService(repo Repository, students StudentLister, notifier Notifier) Service {
	return &service{repo: repo, students: students, notifier: notifier}
}

func (s *service) Charge(ctx context.Context, userID uuid.UUID, kind string, reference string) (*Receipt, error) {
	cost := CostFor(kind)

	balance, err := s.repo.Adjust(ctx, userID, -cost, CauseUsage, reference)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, userID, balance, CauseUsage)

	return &Receipt{UserID: userID, Delta: -cost, Cause: CauseUsage, Balance: balance}, nil
}

func (s *service) CanAfford(ctx context.Context, userID uuid.UUID, kind string) (bool, int, error) {
	cost := CostFor(kind)
	balance, err := s.repo.GetBalance(ctx, userID)
	if err != nil {
		return false, cost, err
	}
	return balance >= cost, cost, nil
}

func (s *service) Grant(ctx context.Context, userID uuid.UUID, amount int, reference string) (*Receipt, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	balance, err := s.repo.Adjust(ctx, userID, amount, CauseManualGrant, reference)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, userID, balance, CauseManualGrant)

	return &Receipt{UserID: userID, Delta: amount, Cause: CauseManualGrant, Balance: balance}, nil
}

func (s *service) BulkGrant(ctx context.Context, amount int) (*BulkGrantReport, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	ids, err := s.students.ListStudentIDs(ctx)
	if err != nil {
		return nil, err
	}

	report := &BulkGrantReport{Amount: amount, Outcomes: make([]BulkGrantOutcome, 0, len(ids))}
	for _, id := range ids {
		balance, err := s.repo.Adjust(ctx, id, amount, CauseBulkGrant, "")
		if err != nil {
			report.Failed++
			report.Outcomes = append(report.Outcomes, BulkGrantOutcome{UserID: id, Error: err.Error()})
			log.Warn().Err(err).Str("user_id", id.String()).Msg("bulk grant skipped account")
			continue
		}
		report.Succeeded++
		report.Outcomes = append(report.Outcomes, BulkGrantOutcome{UserID: id, Granted: true})
		s.notify(ctx, id, balance, CauseBulkGrant)
	}

	return report, nil
}

func (s *service) CreditTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int, cause Cause, reference string) (int, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return s.repo.AdjustTx(ctx, tx, userID, amount, cause, reference)
}

func (s *service) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.GetBalance(ctx, userID)
}

func (s *service) ListEntries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListByUser(ctx, userID, Pagination{Limit: limit, Offset: offset})
}

func (s *service) notify(ctx context.Context, userID uuid.UUID, balance int, cause Cause) {
	if s.notifier == nil {
		return
	}
	s.notifier.BalanceChanged(ctx, userID, balance, cause)
}
