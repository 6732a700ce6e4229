package ledger

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Cause identifies what produced a ledger entry.
type Cause string

const (
	CauseUsage         Cause = "usage"
	CauseManualGrant   Cause = "manual-grant"
	CauseBulkGrant     Cause = "bulk-grant"
	CauseMpesaApproved Cause = "mpesa-approved"
)

// IsValidCause checks a cause against the closed set above.
func IsValidCause(c Cause) bool {
	switch c {
	case CauseUsage, CauseManualGrant, CauseBulkGrant, CauseMpesaApproved:
		return true
	}
	return false
}

// Entry is an immutable ledger row. Entries are the source of truth for
// token balances; users.token_balance is an index over them.
type Entry struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	UserID    uuid.UUID      `db:"user_id" json:"user_id"`
	Delta     int            `db:"delta" json:"delta"`
	Cause     Cause          `db:"cause" json:"cause"`
	Reference sql.NullString `db:"reference" json:"reference,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// Receipt reports the outcome of a balance adjustment.
type Receipt struct {
	UserID  uuid.UUID `json:"user_id"`
	Delta   int       `json:"delta"`
	Cause   Cause     `json:"cause"`
	Balance int       `json:"balance"`
}

// Pagination controls simple list pagination.
type Pagination struct {
	Limit  int
	Offset int
}

// Request kinds known to the cost schedule.
const (
	KindQuestion = "question"
	KindExam     = "exam"
	KindCombined = "combined"
	KindImage    = "image"
)

// CostFor returns the token cost for a request kind.
// Compound requests (exam, combined) cost more; unknown kinds default to 1.
func CostFor(kind string) int {
	switch kind {
	case KindExam, KindCombined:
		return 2
	default:
		return 1
	}
}

// BulkGrantOutcome reports a single account's result within a bulk grant.
type BulkGrantOutcome struct {
	UserID  uuid.UUID `json:"user_id"`
	Granted bool      `json:"granted"`
	Error   string    `json:"error,omitempty"`
}

// BulkGrantReport aggregates per-account outcomes of a bulk grant.
type BulkGrantReport struct {
	Amount    int                `json:"amount"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Outcomes  []BulkGrantOutcome `json:"outcomes"`
}
