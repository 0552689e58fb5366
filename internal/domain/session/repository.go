package session

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines session persistence operations. Plain transitions are
// single conditional writes; Complete and Rate span the session row and the
// user rows and run inside one database transaction.
type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)

	// AcceptPending flips pending → scheduled when the actor is the
	// participant; reports whether a row changed.
	AcceptPending(ctx context.Context, id, participantID uuid.UUID) (bool, error)
	// RejectPending flips pending → rejected when the actor is the participant.
	RejectPending(ctx context.Context, id, participantID uuid.UUID) (bool, error)
	// Cancel flips a pending session (owner only) or a scheduled session
	// (either party) to cancelled.
	Cancel(ctx context.Context, id, actorID uuid.UUID) (bool, error)

	// Complete settles a scheduled session: credits move from learner to
	// teacher and the status flips to completed, atomically. Returns the
	// updated session.
	Complete(ctx context.Context, id, actorID uuid.UUID) (*Session, error)
	// Rate attaches the one-time rating to a completed session and
	// recomputes the rated party's aggregate rating in the same transaction.
	Rate(ctx context.Context, id, actorID uuid.UUID, rating float64, feedback string) (*Session, error)

	ListByUser(ctx context.Context, userID uuid.UUID, status Status) ([]Session, error)
	ListPendingReceived(ctx context.Context, userID uuid.UUID) ([]Session, error)
	ListPendingSent(ctx context.Context, userID uuid.UUID) ([]Session, error)
	ListScheduled(ctx context.Context, userID uuid.UUID) ([]Session, error)
	ListHistory(ctx context.Context, userID uuid.UUID) ([]Session, error)
}
