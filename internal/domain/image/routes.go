package image

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns image router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Post("/generate", h.Generate)
		r.Get("/", h.History)
	})

	return r
}
