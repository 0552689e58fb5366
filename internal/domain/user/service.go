package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service implements user business logic
type Service struct {
	repo *Repository
}

// NewService creates user service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Sync upserts the local row for an identity the provider vouched for.
// Called by the client after login so foreign keys always have a target.
func (s *Service) Sync(ctx context.Context, id uuid.UUID, email, name string) (*User, error) {
	if name == "" {
		name = email
	}
	created, err := s.repo.Ensure(ctx, id, email, name)
	if err != nil {
		return nil, err
	}
	if created {
		log.Info().Str("user_id", id.String()).Msg("New user created with welcome credits")
	}

	return s.repo.GetByID(ctx, id)
}

// Get returns a user by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
