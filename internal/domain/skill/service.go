package skill

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service handles skill business logic
type Service struct {
	repo *Repository
}

// NewService creates skill service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Declare adds a skill to the user's profile
func (s *Service) Declare(ctx context.Context, userID uuid.UUID, req *CreateRequest) (*Skill, error) {
	exists, err := s.repo.Exists(ctx, userID, req.Name, Kind(req.Kind))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	sk := &Skill{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      req.Name,
		Level:     Level(req.Level),
		Category:  req.Category,
		Priority:  req.Priority,
		Kind:      Kind(req.Kind),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, sk); err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("skill", sk.Name).
		Str("kind", string(sk.Kind)).
		Msg("Skill declared")
	return sk, nil
}

// ListMine returns the user's skills
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]Skill, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListByUser returns another user's skills
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Skill, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Remove deletes a skill owned by the user
func (s *Service) Remove(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.Delete(ctx, id, userID)
}

// Categories returns the distinct skill categories
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}
