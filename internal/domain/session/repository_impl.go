package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skillswap/skillswap-api/internal/domain/ledger"
)

type repository struct {
	db     *sqlx.DB
	ledger *ledger.Repository
}

// NewRepository creates a Postgres-backed session repository. The ledger
// repository is used inside Complete so the transfer shares the session's
// transaction.
func NewRepository(db *sqlx.DB, ledgerRepo *ledger.Repository) Repository {
	return &repository{db: db, ledger: ledgerRepo}
}

func (r *repository) Create(ctx context.Context, s *Session) error {
	query := `
		INSERT INTO sessions (id, title, owner_id, participant_id, skill, session_date, start_time,
		                      duration, credits_amount, session_type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Title, s.OwnerID, s.ParticipantID, s.Skill, s.Date, s.StartTime,
		s.Duration, s.CreditsAmount, s.SessionType, s.Status, s.CreatedAt, s.UpdatedAt)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	query := `SELECT * FROM sessions WHERE id = $1`
	var s Session
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) AcceptPending(ctx context.Context, id, participantID uuid.UUID) (bool, error) {
	return r.decide(ctx, id, participantID, StatusScheduled)
}

func (r *repository) RejectPending(ctx context.Context, id, participantID uuid.UUID) (bool, error) {
	return r.decide(ctx, id, participantID, StatusRejected)
}

func (r *repository) decide(ctx context.Context, id, participantID uuid.UUID, to Status) (bool, error) {
	query := `
		UPDATE sessions
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND participant_id = $3 AND status = $4
	`
	res, err := r.db.ExecContext(ctx, query, to, id, participantID, StatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *repository) Cancel(ctx context.Context, id, actorID uuid.UUID) (bool, error) {
	// pending sessions are the owner's to withdraw, scheduled ones either
	// party may call off
	query := `
		UPDATE sessions
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		  AND ((status = $3 AND owner_id = $4)
		    OR (status = $5 AND (owner_id = $4 OR participant_id = $4)))
	`
	res, err := r.db.ExecContext(ctx, query, StatusCancelled, id, StatusPending, actorID, StatusScheduled)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *repository) Complete(ctx context.Context, id, actorID uuid.UUID) (*Session, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin complete tx: %w", err)
	}
	defer tx.Rollback()

	s, err := r.lockSession(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !s.Involves(actorID) {
		return nil, ErrNotAuthorized
	}
	if s.Status != StatusScheduled {
		return nil, ErrInvalidTransition
	}

	learnerID, teacherID := s.Parties()
	description := fmt.Sprintf("Session: %s (%d min)", s.Skill, s.Duration)
	if err := r.ledger.TransferTx(ctx, tx, learnerID, teacherID, s.CreditsAmount, s.ID, description); err != nil {
		return nil, err
	}

	query := `
		UPDATE sessions
		SET status = $1, completed_by = $2, updated_at = NOW()
		WHERE id = $3
	`
	if _, err := tx.ExecContext(ctx, query, StatusCompleted, actorID, id); err != nil {
		return nil, fmt.Errorf("mark session completed: %w", err)
	}

	if err := tx.GetContext(ctx, s, `SELECT * FROM sessions WHERE id = $1`, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit complete tx: %w", err)
	}
	return s, nil
}

func (r *repository) Rate(ctx context.Context, id, actorID uuid.UUID, rating float64, feedback string) (*Session, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin rate tx: %w", err)
	}
	defer tx.Rollback()

	s, err := r.lockSession(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !s.Involves(actorID) {
		return nil, ErrNotAuthorized
	}
	if s.Status != StatusCompleted {
		return nil, ErrInvalidTransition
	}
	if s.RatedBy.Valid {
		return nil, ErrAlreadyRated
	}
	// the party who requested completion does not get to rate it
	if s.CompletedBy.Valid && s.CompletedBy.UUID == actorID {
		return nil, ErrNotAuthorized
	}

	query := `
		UPDATE sessions
		SET rating = $1, feedback = $2, rated_by = $3, updated_at = NOW()
		WHERE id = $4
	`
	if _, err := tx.ExecContext(ctx, query, rating, feedback, actorID, id); err != nil {
		return nil, fmt.Errorf("rate session: %w", err)
	}

	ratedID := s.OtherParty(actorID)
	if err := r.recomputeRating(ctx, tx, ratedID); err != nil {
		return nil, err
	}

	if err := tx.GetContext(ctx, s, `SELECT * FROM sessions WHERE id = $1`, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit rate tx: %w", err)
	}
	return s, nil
}

func (r *repository) lockSession(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Session, error) {
	var s Session
	err := tx.GetContext(ctx, &s, `SELECT * FROM sessions WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock session row: %w", err)
	}
	return &s, nil
}

// recomputeRating sets the user's aggregate rating to the mean of ratings
// received on their completed sessions
func (r *repository) recomputeRating(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) error {
	query := `
		UPDATE users
		SET rating = (
			SELECT AVG(rating) FROM sessions
			WHERE rating IS NOT NULL
			  AND rated_by IS NOT NULL AND rated_by <> $1
			  AND (owner_id = $1 OR participant_id = $1)
		), updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("recompute rating: %w", err)
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, status Status) ([]Session, error) {
	sessions := []Session{}
	if status == "" {
		query := `
			SELECT * FROM sessions
			WHERE owner_id = $1 OR participant_id = $1
			ORDER BY created_at DESC
		`
		err := r.db.SelectContext(ctx, &sessions, query, userID)
		return sessions, err
	}
	query := `
		SELECT * FROM sessions
		WHERE (owner_id = $1 OR participant_id = $1) AND status = $2
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &sessions, query, userID, status)
	return sessions, err
}

func (r *repository) ListPendingReceived(ctx context.Context, userID uuid.UUID) ([]Session, error) {
	query := `SELECT * FROM sessions WHERE participant_id = $1 AND status = $2 ORDER BY created_at DESC`
	sessions := []Session{}
	err := r.db.SelectContext(ctx, &sessions, query, userID, StatusPending)
	return sessions, err
}

func (r *repository) ListPendingSent(ctx context.Context, userID uuid.UUID) ([]Session, error) {
	query := `SELECT * FROM sessions WHERE owner_id = $1 AND status = $2 ORDER BY created_at DESC`
	sessions := []Session{}
	err := r.db.SelectContext(ctx, &sessions, query, userID, StatusPending)
	return sessions, err
}

func (r *repository) ListScheduled(ctx context.Context, userID uuid.UUID) ([]Session, error) {
	// date and time are zero-padded strings, lexicographic order is
	// chronological order
	query := `
		SELECT * FROM sessions
		WHERE (owner_id = $1 OR participant_id = $1) AND status = $2
		ORDER BY session_date, start_time
	`
	sessions := []Session{}
	err := r.db.SelectContext(ctx, &sessions, query, userID, StatusScheduled)
	return sessions, err
}

func (r *repository) ListHistory(ctx context.Context, userID uuid.UUID) ([]Session, error) {
	query := `
		SELECT * FROM sessions
		WHERE (owner_id = $1 OR participant_id = $1) AND status = $2
		ORDER BY updated_at DESC
	`
	sessions := []Session{}
	err := r.db.SelectContext(ctx, &sessions, query, userID, StatusCompleted)
	return sessions, err
}
