package session

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-api/internal/domain/user"
)

// Status represents session status
type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

// Type says which role the owner plays. For a "teaching" session the owner
// teaches and the participant learns; "learning" is the reverse.
type Type string

const (
	TypeTeaching Type = "teaching"
	TypeLearning Type = "learning"
)

// Session is a scheduled exchange between two connected users. Date and time
// are stored as the caller sent them (YYYY-MM-DD / HH:MM); the core orders by
// them lexicographically and never interprets timezones.
type Session struct {
	ID            uuid.UUID       `db:"id"`
	Title         string          `db:"title"`
	OwnerID       uuid.UUID       `db:"owner_id"`
	ParticipantID uuid.UUID       `db:"participant_id"`
	Skill         string          `db:"skill"`
	Date          string          `db:"session_date"`
	StartTime     string          `db:"start_time"`
	Duration      int             `db:"duration"`
	CreditsAmount int             `db:"credits_amount"`
	SessionType   Type            `db:"session_type"`
	Status        Status          `db:"status"`
	CompletedBy   uuid.NullUUID   `db:"completed_by"`
	Rating        sql.NullFloat64 `db:"rating"`
	Feedback      sql.NullString  `db:"feedback"`
	RatedBy       uuid.NullUUID   `db:"rated_by"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// Involves reports whether the user is one of the two parties
func (s *Session) Involves(userID uuid.UUID) bool {
	return s.OwnerID == userID || s.ParticipantID == userID
}

// OtherParty returns the counterpart of the given user on this session
func (s *Session) OtherParty(userID uuid.UUID) uuid.UUID {
	if s.OwnerID == userID {
		return s.ParticipantID
	}
	return s.OwnerID
}

// Parties returns who learns and who teaches on this session
func (s *Session) Parties() (learnerID, teacherID uuid.UUID) {
	if s.SessionType == TypeTeaching {
		return s.ParticipantID, s.OwnerID
	}
	return s.OwnerID, s.ParticipantID
}

// SessionResponse is the API projection of a session
type SessionResponse struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	OwnerID       string        `json:"owner_id"`
	ParticipantID string        `json:"participant_id"`
	Skill         string        `json:"skill"`
	Date          string        `json:"session_date"`
	StartTime     string        `json:"start_time"`
	Duration      int           `json:"duration"`
	CreditsAmount int           `json:"credits_amount"`
	SessionType   string        `json:"session_type"`
	Status        string        `json:"status"`
	Rating        *float64      `json:"rating,omitempty"`
	Feedback      *string       `json:"feedback,omitempty"`
	CreatedAt     string        `json:"created_at"`
	UpdatedAt     string        `json:"updated_at"`
	Owner         *user.Profile `json:"owner,omitempty"`
	Participant   *user.Profile `json:"participant,omitempty"`
}

// ToResponse converts entity to response
func (s *Session) ToResponse() *SessionResponse {
	resp := &SessionResponse{
		ID:            s.ID.String(),
		Title:         s.Title,
		OwnerID:       s.OwnerID.String(),
		ParticipantID: s.ParticipantID.String(),
		Skill:         s.Skill,
		Date:          s.Date,
		StartTime:     s.StartTime,
		Duration:      s.Duration,
		CreditsAmount: s.CreditsAmount,
		SessionType:   string(s.SessionType),
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     s.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if s.Rating.Valid {
		r := s.Rating.Float64
		resp.Rating = &r
	}
	if s.Feedback.Valid {
		f := s.Feedback.String
		resp.Feedback = &f
	}
	return resp
}
