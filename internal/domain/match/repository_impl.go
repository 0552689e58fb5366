package match

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a Postgres-backed match repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Match) error {
	query := `
		INSERT INTO matches (id, requester_id, recipient_id, score, common_skills, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.RequesterID, m.RecipientID, m.Score, m.CommonSkills, m.Status, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateMatch
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Match, error) {
	query := `SELECT * FROM matches WHERE id = $1`
	var m Match
	if err := r.db.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *repository) AcceptPending(ctx context.Context, id, recipientID uuid.UUID) (bool, error) {
	return r.transition(ctx, id, recipientID, StatusAccepted)
}

func (r *repository) RejectPending(ctx context.Context, id, recipientID uuid.UUID) (bool, error) {
	return r.transition(ctx, id, recipientID, StatusRejected)
}

func (r *repository) transition(ctx context.Context, id, recipientID uuid.UUID, to Status) (bool, error) {
	query := `
		UPDATE matches
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND recipient_id = $3 AND status = $4
	`
	res, err := r.db.ExecContext(ctx, query, to, id, recipientID, StatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *repository) DeletePending(ctx context.Context, id, requesterID uuid.UUID) (bool, error) {
	query := `DELETE FROM matches WHERE id = $1 AND requester_id = $2 AND status = $3`
	res, err := r.db.ExecContext(ctx, query, id, requesterID, StatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Match, error) {
	query := `
		SELECT * FROM matches
		WHERE requester_id = $1 OR recipient_id = $1
		ORDER BY created_at DESC
	`
	matches := []Match{}
	err := r.db.SelectContext(ctx, &matches, query, userID)
	return matches, err
}

func (r *repository) ListSentPending(ctx context.Context, userID uuid.UUID) ([]Match, error) {
	query := `SELECT * FROM matches WHERE requester_id = $1 AND status = $2 ORDER BY created_at DESC`
	matches := []Match{}
	err := r.db.SelectContext(ctx, &matches, query, userID, StatusPending)
	return matches, err
}

func (r *repository) ListReceivedPending(ctx context.Context, userID uuid.UUID) ([]Match, error) {
	query := `SELECT * FROM matches WHERE recipient_id = $1 AND status = $2 ORDER BY created_at DESC`
	matches := []Match{}
	err := r.db.SelectContext(ctx, &matches, query, userID, StatusPending)
	return matches, err
}

func (r *repository) ListAccepted(ctx context.Context, userID uuid.UUID) ([]Match, error) {
	query := `
		SELECT * FROM matches
		WHERE (requester_id = $1 OR recipient_id = $1) AND status = $2
		ORDER BY updated_at DESC
	`
	matches := []Match{}
	err := r.db.SelectContext(ctx, &matches, query, userID, StatusAccepted)
	return matches, err
}

func (r *repository) GetActiveBetween(ctx context.Context, a, b uuid.UUID) (*Match, error) {
	query := `
		SELECT * FROM matches
		WHERE ((requester_id = $1 AND recipient_id = $2) OR (requester_id = $2 AND recipient_id = $1))
		  AND status IN ($3, $4)
		LIMIT 1
	`
	var m Match
	err := r.db.GetContext(ctx, &m, query, a, b, StatusPending, StatusAccepted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *repository) HasAcceptedBetween(ctx context.Context, a, b uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM matches
			WHERE ((requester_id = $1 AND recipient_id = $2) OR (requester_id = $2 AND recipient_id = $1))
			  AND status = $3
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, a, b, StatusAccepted)
	return exists, err
}

func (r *repository) ActivePartnerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT CASE WHEN requester_id = $1 THEN recipient_id ELSE requester_id END
		FROM matches
		WHERE (requester_id = $1 OR recipient_id = $1) AND status IN ($2, $3)
	`
	ids := []uuid.UUID{}
	err := r.db.SelectContext(ctx, &ids, query, userID, StatusPending, StatusAccepted)
	return ids, err
}
