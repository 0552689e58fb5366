package match

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skillswap/skillswap-api/internal/middleware"
	"github.com/skillswap/skillswap-api/internal/pkg/database"
	"github.com/skillswap/skillswap-api/internal/pkg/response"
	"github.com/skillswap/skillswap-api/internal/pkg/validator"
)

// Handler handles match HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates match handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Find scores other users against the caller
// GET /matches/find
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	candidates, err := h.service.FindMatches(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, candidates)
}

// Create proposes a match
// POST /matches
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	m, err := h.service.Propose(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfMatch):
			response.BadRequest(w, "Cannot propose a match with yourself")
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, ErrDuplicateMatch):
			response.Conflict(w, "An active match already exists with this user")
		case database.IsTransient(err):
			response.Unavailable(w, "Temporarily busy, please retry")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, m.ToResponse())
}

// List returns the caller's matches
// GET /matches
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	matches, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, matches)
}

// ListSent returns pending proposals the caller sent
// GET /matches/sent
func (h *Handler) ListSent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	matches, err := h.service.ListSent(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, matches)
}

// ListReceived returns pending proposals awaiting the caller
// GET /matches/received
func (h *Handler) ListReceived(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	matches, err := h.service.ListReceived(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, matches)
}

// ListConnections returns accepted matches from the caller's side
// GET /matches/connections
func (h *Handler) ListConnections(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	connections, err := h.service.ListConnections(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, connections)
}

// Get returns a single match
// GET /matches/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid match id")
		return
	}

	m, err := h.service.Get(r.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Match not found")
		case errors.Is(err, ErrNotAuthorized):
			response.Forbidden(w, "You are not a party to this match")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, m)
}

// Accept confirms a pending match
// POST /matches/{id}/accept
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Accept)
}

// Reject declines a pending match
// POST /matches/{id}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Reject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id, actorID uuid.UUID) (*Match, error)) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid match id")
		return
	}

	m, err := fn(r.Context(), id, userID)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}

	response.OK(w, m.ToResponse())
}

// Cancel withdraws a pending match
// DELETE /matches/{id}
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid match id")
		return
	}

	if err := h.service.Cancel(r.Context(), id, userID); err != nil {
		h.writeTransitionError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "Match not found")
	case errors.Is(err, ErrNotAuthorized):
		response.Forbidden(w, "You are not allowed to act on this match")
	case errors.Is(err, ErrInvalidTransition):
		response.Conflict(w, "Match is no longer pending")
	case database.IsTransient(err):
		response.Unavailable(w, "Temporarily busy, please retry")
	default:
		response.InternalError(w)
	}
}
