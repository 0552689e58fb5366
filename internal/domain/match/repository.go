package match

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines match persistence operations. All state transitions are
// single conditional writes: the status and actor predicates live in the SQL,
// so of two racing transitions exactly one reports success.
type Repository interface {
	Create(ctx context.Context, m *Match) error
	GetByID(ctx context.Context, id uuid.UUID) (*Match, error)

	// AcceptPending flips pending → accepted when the actor is the
	// recipient; reports whether a row changed.
	AcceptPending(ctx context.Context, id, recipientID uuid.UUID) (bool, error)
	// RejectPending flips pending → rejected when the actor is the recipient.
	RejectPending(ctx context.Context, id, recipientID uuid.UUID) (bool, error)
	// DeletePending removes a pending match when the actor is the requester.
	DeletePending(ctx context.Context, id, requesterID uuid.UUID) (bool, error)

	ListByUser(ctx context.Context, userID uuid.UUID) ([]Match, error)
	ListSentPending(ctx context.Context, userID uuid.UUID) ([]Match, error)
	ListReceivedPending(ctx context.Context, userID uuid.UUID) ([]Match, error)
	ListAccepted(ctx context.Context, userID uuid.UUID) ([]Match, error)

	// GetActiveBetween returns the non-terminal match between the pair in
	// either direction, or nil.
	GetActiveBetween(ctx context.Context, a, b uuid.UUID) (*Match, error)
	// HasAcceptedBetween reports whether the pair is connected.
	HasAcceptedBetween(ctx context.Context, a, b uuid.UUID) (bool, error)
	// ActivePartnerIDs returns ids of users in a non-terminal match with the
	// user; find-matches excludes them.
	ActivePartnerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
