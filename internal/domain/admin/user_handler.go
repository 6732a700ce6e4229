package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/polltech/smarttutors/internal/domain/ledger"
	"github.com/polltech/smarttutors/internal/domain/user"
	"github.com/polltech/smarttutors/internal/pkg/response"
	"github.com/polltech/smarttutors/internal/pkg/validator"
)

// ListUsers handles GET /admin/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	q := ListUsersQuery{Role: r.URL.Query().Get("role")}
	if errs := validator.Validate(&q); errs != nil {
		response.ValidationError(w, errs)
		return
	}
	role := user.Role(q.Role)

	users, err := h.users.List(r.Context(), role, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
		response.InternalError(w)
		return
	}
	total, err := h.users.Count(r.Context(), role)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")
		response.InternalError(w)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	response.OK(w, UserListResponse{Users: out, Total: total})
}

// GetUser handles GET /admin/users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("user_id", id.String()).Msg("failed to load user")
		response.InternalError(w)
		return
	}
	if u == nil {
		response.NotFound(w, "User not found")
		return
	}

	response.OK(w, NewUserResponse(u))
}

// DeleteUser handles DELETE /admin/users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, ErrCannotDeleteAdmin):
			response.Forbidden(w, "Admin accounts cannot be deleted")
		default:
			log.Error().Err(err).Str("user_id", id.String()).Msg("failed to delete user")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// GrantTokens handles POST /admin/users/{id}/grant
func (h *Handler) GrantTokens(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req ledger.GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	receipt, err := h.ledgerSvc.Grant(r.Context(), id, req.Amount, "")
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, ledger.ErrInvalidAmount):
			response.BadRequest(w, "Amount must be positive")
		default:
			log.Error().Err(err).Str("user_id", id.String()).Msg("failed to grant tokens")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, receipt)
}

// BulkGrant handles POST /admin/grant-all
func (h *Handler) BulkGrant(w http.ResponseWriter, r *http.Request) {
	var req ledger.BulkGrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	report, err := h.ledgerSvc.BulkGrant(r.Context(), req.Amount)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidAmount) {
			response.BadRequest(w, "Amount must be positive")
			return
		}
		log.Error().Err(err).Msg("bulk grant failed")
		response.InternalError(w)
		return
	}

	response.OK(w, report)
}

// UserLedger handles GET /admin/users/{id}/ledger
func (h *Handler) UserLedger(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}
	limit, offset := parsePagination(r)

	entries, err := h.ledgerSvc.ListEntries(r.Context(), id, limit, offset)
	if err != nil {
		log.Error().Err(err).Str("user_id", id.String()).Msg("failed to list user ledger")
		response.InternalError(w)
		return
	}

	response.OK(w, ledger.NewEntryListResponse(entries))
}

func parseUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return uuid.Nil, false
	}
	return id, true
}
