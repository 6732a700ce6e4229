package ledger

import (
	"time"

	"github.com/google/uuid"
)

// BalanceResponse for GET /tokens/balance
type BalanceResponse struct {
	Balance int `json:"balance"`
}

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	ID        uuid.UUID `json:"id"`
	Delta     int       `json:"delta"`
	Cause     Cause     `json:"cause"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEntryListResponse maps ledger entries
func NewEntryListResponse(entries []Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		resp := EntryResponse{
			ID:        e.ID,
			Delta:     e.Delta,
			Cause:     e.Cause,
			CreatedAt: e.CreatedAt,
		}
		if e.Reference.Valid {
			resp.Reference = e.Reference.String
		}
		out = append(out, resp)
	}
	return out
}

// GrantRequest for POST /admin/users/{id}/grant
type GrantRequest struct {
	Amount int `json:"amount" validate:"required,min=1,max=100000"`
}

// BulkGrantRequest for POST /admin/grant-all
type BulkGrantRequest struct {
	Amount int `json:"amount" validate:"required,min=1,max=100000"`
}
