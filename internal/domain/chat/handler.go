package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/polltech/smarttutors/internal/domain/ledger"
	"github.com/polltech/smarttutors/internal/middleware"
	"github.com/polltech/smarttutors/internal/pkg/response"
	"github.com/polltech/smarttutors/internal/pkg/validator"
)

const apologyMessage = "I'm experiencing some technical difficulties. Please try again later."

// Handler handles tutor chat HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates chat handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Ask handles POST /chat/ask
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	req.Normalize()

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID := middleware.GetUserID(r.Context())

	res, err := h.service.Ask(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInsufficientTokens):
			response.PaymentRequired(w, "INSUFFICIENT_TOKENS", "You don't have enough tokens for this request")
		case errors.Is(err, ErrNotConfigured):
			response.ServiceUnavailable(w, "TUTOR_NOT_CONFIGURED", apologyMessage)
		case errors.Is(err, ErrAdapterFailure):
			response.ServiceUnavailable(w, "TUTOR_UNAVAILABLE", apologyMessage)
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Msg("ask failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, NewAskResponse(res))
}

// History handles GET /chat/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	limit, offset := parsePagination(r)

	chats, total, err := h.service.History(r.Context(), userID, limit, offset)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list chat history")
		response.InternalError(w)
		return
	}

	response.OK(w, NewHistoryResponse(chats, total))
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
