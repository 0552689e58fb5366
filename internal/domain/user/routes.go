package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns user routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/sync", h.Sync)
	r.Get("/me", h.Me)
	r.Get("/{id}", h.Get)

	return r
}
