package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/polltech/smarttutors/internal/domain/ledger"
	"github.com/polltech/smarttutors/internal/domain/payment"
	"github.com/polltech/smarttutors/internal/middleware"
	"github.com/polltech/smarttutors/internal/pkg/response"
	"github.com/polltech/smarttutors/internal/pkg/validator"
)

// ListPendingPayments handles GET /admin/payments/pending
func (h *Handler) ListPendingPayments(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	payments, err := h.payments.ListPending(r.Context(), limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list pending payments")
		response.InternalError(w)
		return
	}

	response.OK(w, payment.NewPaymentListResponse(payments))
}

// ApprovePayment handles POST /admin/payments/{id}/approve
func (h *Handler) ApprovePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePaymentID(w, r)
	if !ok {
		return
	}

	var req ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	reviewer := middleware.GetUserID(r.Context())

	p, err := h.payments.Approve(r.Context(), id, req.Tokens, reviewer)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrNotFound):
			response.NotFound(w, "Payment not found")
		case errors.Is(err, payment.ErrAlreadyProcessed):
			response.Conflict(w, "Payment has already been reviewed")
		case errors.Is(err, payment.ErrInvalidAmount), errors.Is(err, ledger.ErrInvalidAmount):
			response.BadRequest(w, "Token amount must be positive")
		case errors.Is(err, ledger.ErrUserNotFound):
			response.NotFound(w, "Payment owner no longer exists")
		default:
			log.Error().Err(err).Str("payment_id", id.String()).Msg("failed to approve payment")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, payment.NewPaymentResponse(p))
}

// RejectPayment handles POST /admin/payments/{id}/reject
func (h *Handler) RejectPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePaymentID(w, r)
	if !ok {
		return
	}

	reviewer := middleware.GetUserID(r.Context())

	p, err := h.payments.Reject(r.Context(), id, reviewer)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrNotFound):
			response.NotFound(w, "Payment not found")
		case errors.Is(err, payment.ErrAlreadyProcessed):
			response.Conflict(w, "Payment has already been reviewed")
		default:
			log.Error().Err(err).Str("payment_id", id.String()).Msg("failed to reject payment")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, payment.NewPaymentResponse(p))
}

func parsePaymentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return uuid.Nil, false
	}
	return id, true
}
