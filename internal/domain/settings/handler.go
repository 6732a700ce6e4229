package settings

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/polltech/smarttutors/internal/pkg/response"
)

// Handler serves the public branding subset of settings.
type Handler struct {
	service Service
}

// NewHandler creates settings handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Public handles GET /settings
func (h *Handler) Public(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Get(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings")
		response.InternalError(w)
		return
	}

	response.OK(w, NewPublicView(s))
}
