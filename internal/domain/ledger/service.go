package ledger

import (
	"context"

	"github.com/google/uuid"
)

// Service handles credit ledger reads
type Service struct {
	repo *Repository
}

// NewService creates ledger service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// GetBalance returns the user's current balance
func (s *Service) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.GetBalance(ctx, userID)
}

// ListTransactions returns a page of the user's ledger history
func (s *Service) ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// GetTransaction returns a single ledger row owned by the user
func (s *Service) GetTransaction(ctx context.Context, id, userID uuid.UUID) (*Transaction, error) {
	return s.repo.GetByID(ctx, id, userID)
}
