package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository handles user row database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new user repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// WelcomeCredits is the signup bonus every new user starts with
const WelcomeCredits = 50

// Ensure upserts the minimal user row for an authenticated id. Called on
// first contact with an id the identity provider vouched for. A freshly
// created row gets the welcome bonus and its ledger entry; reruns only
// refresh email and name.
func (r *Repository) Ensure(ctx context.Context, id uuid.UUID, email, name string) (created bool, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin ensure tx: %w", err)
	}
	defer tx.Rollback()

	// xmax = 0 only holds for a row this statement inserted
	err = tx.GetContext(ctx, &created, `
		INSERT INTO users (id, email, name, credit_balance)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name, updated_at = now()
		RETURNING (xmax = 0)
	`, id, email, name, WelcomeCredits)
	if err != nil {
		return false, fmt.Errorf("upsert user: %w", err)
	}

	if created {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO credit_transactions (id, user_id, amount, tx_type, description, balance_after)
			VALUES ($1, $2, $3, 'adjustment', 'Welcome bonus', $3)
		`, uuid.New(), id, WelcomeCredits)
		if err != nil {
			return false, fmt.Errorf("insert welcome bonus: %w", err)
		}
	}

	return created, tx.Commit()
}

// GetByID returns a user by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListOthers returns all users except the given one
func (r *Repository) ListOthers(ctx context.Context, id uuid.UUID) ([]User, error) {
	var users []User
	err := r.db.SelectContext(ctx, &users, `SELECT * FROM users WHERE id != $1`, id)
	return users, err
}
