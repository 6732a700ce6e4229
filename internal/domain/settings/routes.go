package settings

import "github.com/go-chi/chi/v5"

// Routes returns public settings router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Public)
	return r
}
