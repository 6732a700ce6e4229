package payment

import (
	"time"

	"github.com/google/uuid"
)

// SubmitRequest for POST /payments
type SubmitRequest struct {
	Code string `json:"code" validate:"required,min=6,max=100"`
}

// PaymentResponse represents a claim in API responses
type PaymentResponse struct {
	ID             uuid.UUID `json:"id"`
	Code           string    `json:"code"`
	Status         Status    `json:"status"`
	CreditedTokens *int      `json:"credited_tokens,omitempty"`
	SubmittedAt    time.Time `json:"submitted_at"`
	ReviewedAt     *string   `json:"reviewed_at,omitempty"`
}

// NewPaymentResponse maps an entity to its API shape
func NewPaymentResponse(p *PendingPayment) PaymentResponse {
	resp := PaymentResponse{
		ID:          p.ID,
		Code:        p.Code,
		Status:      p.Status,
		SubmittedAt: p.SubmittedAt,
	}
	if p.CreditedTokens.Valid {
		tokens := int(p.CreditedTokens.Int64)
		resp.CreditedTokens = &tokens
	}
	if p.ReviewedAt.Valid {
		reviewed := p.ReviewedAt.Time.Format(time.RFC3339)
		resp.ReviewedAt = &reviewed
	}
	return resp
}

// NewPaymentListResponse maps a slice of entities
func NewPaymentListResponse(payments []PendingPayment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, NewPaymentResponse(&payments[i]))
	}
	return out
}
