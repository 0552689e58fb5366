package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skillswap/skillswap-api/internal/domain/ledger"
	"github.com/skillswap/skillswap-api/internal/middleware"
	"github.com/skillswap/skillswap-api/internal/pkg/database"
	"github.com/skillswap/skillswap-api/internal/pkg/response"
	"github.com/skillswap/skillswap-api/internal/pkg/validator"
)

type (
	listFunc       func(ctx context.Context, userID uuid.UUID) ([]*SessionResponse, error)
	transitionFunc func(ctx context.Context, id, actorID uuid.UUID) (*Session, error)
)

// Handler handles session HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates session handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create requests a session
// POST /sessions
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

	sess, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfSession):
			response.BadRequest(w, "Cannot schedule a session with yourself")
		case errors.Is(err, ErrInvalidDuration):
			response.BadRequest(w, "Duration must be 15, 30 or 60 minutes")
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, ErrNotConnected):
			response.Forbidden(w, "You are not connected with this user")
		case database.IsTransient(err):
			response.Unavailable(w, "Temporarily busy, please retry")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, sess.ToResponse())
}

// List returns the caller's sessions
// GET /sessions?status=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	status := Status(r.URL.Query().Get("status"))
	switch status {
	case "", StatusPending, StatusScheduled, StatusCompleted, StatusCancelled, StatusRejected:
	default:
		response.BadRequest(w, "Invalid status filter")
		return
	}

	sessions, err := h.service.List(r.Context(), userID, status)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, sessions)
}

// ListPending returns pending sessions awaiting the caller
// GET /sessions/pending
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListPendingReceived)
}

// ListSent returns pending sessions the caller requested
// GET /sessions/sent
func (h *Handler) ListSent(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListPendingSent)
}

// ListScheduled returns upcoming sessions
// GET /sessions/scheduled
func (h *Handler) ListScheduled(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListScheduled)
}

// ListHistory returns completed sessions
// GET /sessions/history
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListHistory)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, fn listFunc) {
	userID := middleware.GetUserID(r.Context())

	sessions, err := fn(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, sessions)
}

// Get returns a single session
// GET /sessions/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid session id")
		return
	}

	sess, err := h.service.Get(r.Context(), id, userID)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}

	response.OK(w, sess)
}

// Accept confirms a pending session
// POST /sessions/{id}/accept
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Accept)
}

// Reject declines a pending session
// POST /sessions/{id}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Reject)
}

// Cancel calls off a session
// POST /sessions/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Cancel)
}

// Complete settles a scheduled session and transfers the credits
// POST /sessions/{id}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Complete)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid session id")
		return
	}

	sess, err := fn(r.Context(), id, userID)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}

	response.OK(w, sess.ToResponse())
}

// Rate attaches a rating to a completed session
// POST /sessions/{id}/rate
func (h *Handler) Rate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid session id")
		return
	}

	var req RateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	sess, err := h.service.Rate(r.Context(), id, userID, &req)
	if err != nil {
		h.writeTransitionError(w, err)
		return
	}

	response.OK(w, sess.ToResponse())
}

// CreditRates exposes the fixed duration-to-credits table
// GET /sessions/credit-rates
func (h *Handler) CreditRates(w http.ResponseWriter, r *http.Request) {
	response.OK(w, CreditRates())
}

func (h *Handler) writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "Session not found")
	case errors.Is(err, ErrNotAuthorized):
		response.Forbidden(w, "You are not allowed to act on this session")
	case errors.Is(err, ErrInvalidTransition):
		response.Conflict(w, "Session is not in a state that allows this")
	case errors.Is(err, ErrAlreadyRated):
		response.Conflict(w, "Session has already been rated")
	case errors.Is(err, ledger.ErrInsufficientCredits):
		response.Conflict(w, "Insufficient credits to complete this session")
	case errors.Is(err, ledger.ErrAlreadyProcessed):
		response.Conflict(w, "Credits for this session were already transferred")
	case database.IsTransient(err):
		response.Unavailable(w, "Temporarily busy, please retry")
	default:
		response.InternalError(w)
	}
}
