package skill

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns skill routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.ListMine)
	r.Post("/", h.Create)
	r.Get("/categories", h.Categories)
	r.Get("/user/{id}", h.ListByUser)
	r.Delete("/{id}", h.Delete)

	return r
}
