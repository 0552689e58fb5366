package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns session routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// pricing table is public
	r.Get("/credit-rates", h.CreditRates)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/pending", h.ListPending)
		r.Get("/sent", h.ListSent)
		r.Get("/scheduled", h.ListScheduled)
		r.Get("/history", h.ListHistory)
		r.Get("/{id}", h.Get)
		r.Post("/{id}/accept", h.Accept)
		r.Post("/{id}/reject", h.Reject)
		r.Post("/{id}/cancel", h.Cancel)
		r.Post("/{id}/complete", h.Complete)
		r.Post("/{id}/rate", h.Rate)
	})

	return r
}
