package event

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Repository appends events to the outbox table
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new event repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Append inserts an event row
func (r *Repository) Append(ctx context.Context, e *Event) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (id, event_type, actor_id, subject_id, payload, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, '{}'::jsonb), $6)
	`, e.ID, e.Type, e.ActorID, e.SubjectID, []byte(e.Payload), e.CreatedAt)
	return err
}
