package payment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/polltech/smarttutors/internal/middleware"
	"github.com/polltech/smarttutors/internal/pkg/response"
	"github.com/polltech/smarttutors/internal/pkg/validator"
)

// Handler handles user-facing payment HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates payment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit handles POST /payments
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID := middleware.GetUserID(r.Context())

	p, err := h.service.Submit(r.Context(), userID, req.Code)
	if err != nil {
		if errors.Is(err, ErrDuplicateCode) {
			response.Conflict(w, "This transaction code has already been submitted")
			return
		}
		if errors.Is(err, ErrEmptyCode) {
			response.BadRequest(w, "Transaction code is required")
			return
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to submit payment code")
		response.InternalError(w)
		return
	}

	response.Created(w, NewPaymentResponse(p))
}

// ListMine handles GET /payments
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	limit, offset := parsePagination(r)

	payments, err := h.service.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list payments")
		response.InternalError(w)
		return
	}

	response.OK(w, NewPaymentListResponse(payments))
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
