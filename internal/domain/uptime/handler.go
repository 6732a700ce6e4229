package uptime

import (
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/polltech/smarttutors/internal/pkg/response"
)

// Handler serves the keep-alive ping endpoint. The secret gates writes to
// the ping log so random crawlers don't inflate uptime stats.
type Handler struct {
	repo   Repository
	secret string
}

// NewHandler creates uptime handler
func NewHandler(repo Repository, secret string) *Handler {
	return &Handler{repo: repo, secret: secret}
}

// Ping handles GET /ping?key=SECRET
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	if !h.keyMatches(r.URL.Query().Get("key")) {
		response.Unauthorized(w, "Invalid ping key")
		return
	}

	if err := h.repo.Record(r.Context()); err != nil {
		log.Error().Err(err).Msg("failed to record ping")
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"message": "pong"})
}

func (h *Handler) keyMatches(key string) bool {
	if h.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(h.secret)) == 1
}
