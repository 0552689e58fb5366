package ledger

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns credit ledger routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/balance", h.Balance)
	r.Get("/history", h.History)
	r.Get("/transactions/{id}", h.GetTransaction)

	return r
}
