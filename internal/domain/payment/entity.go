package payment

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents pending payment status
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// PendingPayment is a user-submitted M-PESA transaction code awaiting admin
// review. Codes are globally unique and single-use regardless of outcome.
// Status transitions exactly once: pending -> approved or pending -> rejected.
type PendingPayment struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	UserID         uuid.UUID     `db:"user_id" json:"user_id"`
	Code           string        `db:"code" json:"code"`
	Status         Status        `db:"status" json:"status"`
	CreditedTokens sql.NullInt64 `db:"credited_tokens" json:"credited_tokens,omitempty"`
	ReviewedBy     uuid.NullUUID `db:"reviewed_by" json:"reviewed_by,omitempty"`
	SubmittedAt    time.Time     `db:"submitted_at" json:"submitted_at"`
	ReviewedAt     sql.NullTime  `db:"reviewed_at" json:"reviewed_at,omitempty"`
}

// IsPending reports whether the claim is still reviewable.
func (p *PendingPayment) IsPending() bool {
	return p.Status == StatusPending
}
