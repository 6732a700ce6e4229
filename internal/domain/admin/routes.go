package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns admin router. Every route requires an authenticated admin.
func (h *Handler) Routes(authMiddleware, requireAdmin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(requireAdmin)

		r.Get("/dashboard", h.Dashboard)
		r.Get("/uptime", h.UptimeStats)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Get("/{id}", h.GetUser)
			r.Delete("/{id}", h.DeleteUser)
			r.Post("/{id}/grant", h.GrantTokens)
			r.Get("/{id}/ledger", h.UserLedger)
		})

		r.Post("/grant-all", h.BulkGrant)

		r.Route("/payments", func(r chi.Router) {
			r.Get("/pending", h.ListPendingPayments)
			r.Post("/{id}/approve", h.ApprovePayment)
			r.Post("/{id}/reject", h.RejectPayment)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetSettings)
			r.Patch("/", h.UpdateSettings)
			r.Post("/branding", h.UploadBranding)
		})
	})

	return r
}
