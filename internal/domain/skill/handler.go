package skill

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skillswap/skillswap-api/internal/middleware"
	"github.com/skillswap/skillswap-api/internal/pkg/response"
	"github.com/skillswap/skillswap-api/internal/pkg/validator"
)

// Handler handles skill HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates skill handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create declares a new skill
// POST /skills
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

	sk, err := h.service.Declare(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			response.Conflict(w, "Skill already declared")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.Created(w, sk)
}

// ListMine lists the current user's skills
// GET /skills
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	skills, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, skills)
}

// ListByUser lists another user's skills
// GET /skills/user/{id}
func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user id")
		return
	}

	skills, err := h.service.ListByUser(r.Context(), id)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, skills)
}

// Delete removes a skill
// DELETE /skills/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid skill id")
		return
	}

	if err := h.service.Remove(r.Context(), id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Skill not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// Categories lists distinct skill categories
// GET /skills/categories
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, categories)
}
