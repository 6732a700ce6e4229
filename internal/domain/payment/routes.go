package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns payment router (all routes require auth)
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Submit)
		r.Get("/", h.ListMine)
	})

	return r
}
