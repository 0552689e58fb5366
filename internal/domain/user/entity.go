package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User carries the fields of the user row this core owns: the cached credit
// balance and the aggregate session rating. Everything else belongs to the
// identity subsystem.
type User struct {
	ID            uuid.UUID       `db:"id"`
	Email         string          `db:"email"`
	Name          string          `db:"name"`
	CreditBalance int             `db:"credit_balance"`
	Rating        sql.NullFloat64 `db:"rating"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// Profile is the public projection embedded in match and session responses.
type Profile struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Rating *float64 `json:"rating,omitempty"`
}

// ToProfile converts the entity to its public projection
func (u *User) ToProfile() *Profile {
	p := &Profile{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
	}
	if u.Rating.Valid {
		r := u.Rating.Float64
		p.Rating = &r
	}
	return p
}
