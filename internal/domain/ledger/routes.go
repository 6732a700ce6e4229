package ledger

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns token router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/balance", h.Balance)
		r.Get("/history", h.History)
	})

	return r
}
