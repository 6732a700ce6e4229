package image

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

// Handler handles image generation HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates image handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Generate handles POST /images/generate
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID := middleware.GetUserID(r.Context())

	g, err := h.service.Generate(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientTokens) {
			response.PaymentRequired(w, "INSUFFICIENT_TOKENS", "You don't have enough tokens for this request")
			return
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("image generation failed")
		response.InternalError(w)
		return
	}

	response.OK(w, NewGenerateResponse(g))
}

// History handles GET /images
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	limit, offset := parsePagination(r)

	logs, err := h.service.History(r.Context(), userID, limit, offset)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list image history")
		response.InternalError(w)
		return
	}

	response.OK(w, NewLogListResponse(logs))
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
