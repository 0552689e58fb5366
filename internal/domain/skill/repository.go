package skill

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository handles skill database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new skill repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new skill
func (r *Repository) Create(ctx context.Context, s *Skill) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO skills (id, user_id, name, level, category, priority, kind, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, s.ID, s.UserID, s.Name, s.Level, s.Category, s.Priority, s.Kind, s.CreatedAt)
	return err
}

// GetByID returns a skill by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Skill, error) {
	var s Skill
	err := r.db.GetContext(ctx, &s, `SELECT * FROM skills WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByUser returns all skills of a user
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Skill, error) {
	var skills []Skill
	err := r.db.SelectContext(ctx, &skills, `
		SELECT * FROM skills WHERE user_id = $1 ORDER BY kind, priority DESC, name
	`, userID)
	return skills, err
}

// NamesByKind returns the lowercased teaching and learning skill names of a
// user, the shape the match engine scores on.
func (r *Repository) NamesByKind(ctx context.Context, userID uuid.UUID) (teaching, learning []string, err error) {
	rows := []struct {
		Name string `db:"name"`
		Kind Kind   `db:"kind"`
	}{}
	err = r.db.SelectContext(ctx, &rows, `SELECT name, kind FROM skills WHERE user_id = $1`, userID)
	if err != nil {
		return nil, nil, err
	}
	for _, row := range rows {
		name := strings.ToLower(row.Name)
		if row.Kind == KindTeaching {
			teaching = append(teaching, name)
		} else {
			learning = append(learning, name)
		}
	}
	return teaching, learning, nil
}

// Exists reports whether the user already declared this skill name and kind
func (r *Repository) Exists(ctx context.Context, userID uuid.UUID, name string, kind Kind) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM skills WHERE user_id = $1 AND LOWER(name) = LOWER($2) AND kind = $3)
	`, userID, name, kind)
	return exists, err
}

// Delete removes a skill owned by the user
func (r *Repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM skills WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Categories returns the distinct declared categories
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.SelectContext(ctx, &categories, `SELECT DISTINCT category FROM skills ORDER BY category`)
	return categories, err
}
