package match

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns match routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/find", h.Find)
	r.Get("/sent", h.ListSent)
	r.Get("/received", h.ListReceived)
	r.Get("/connections", h.ListConnections)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/accept", h.Accept)
	r.Post("/{id}/reject", h.Reject)
	r.Delete("/{id}", h.Cancel)

	return r
}
