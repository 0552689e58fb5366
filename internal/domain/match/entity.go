package match

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-api/internal/domain/user"
)

// Status represents match status. A pending match cancelled by its requester
// is hard-deleted, so no cancelled status exists in the table.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Match is a directed connection proposal from requester to recipient.
// Once non-pending it is immutable.
type Match struct {
	ID           uuid.UUID  `db:"id"`
	RequesterID  uuid.UUID  `db:"requester_id"`
	RecipientID  uuid.UUID  `db:"recipient_id"`
	Score        float64    `db:"score"`
	CommonSkills StringList `db:"common_skills"`
	Status       Status     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// IsPending returns true while the proposal awaits the recipient
func (m *Match) IsPending() bool {
	return m.Status == StatusPending
}

// IsAccepted returns true once the connection is established
func (m *Match) IsAccepted() bool {
	return m.Status == StatusAccepted
}

// OtherParty returns the counterpart of the given user on this match
func (m *Match) OtherParty(userID uuid.UUID) uuid.UUID {
	if m.RequesterID == userID {
		return m.RecipientID
	}
	return m.RequesterID
}

// Involves reports whether the user is one of the two parties
func (m *Match) Involves(userID uuid.UUID) bool {
	return m.RequesterID == userID || m.RecipientID == userID
}

// StringList stores a JSONB string array column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	}
	return fmt.Errorf("unsupported type %T for StringList", src)
}

// MatchResponse is the API projection of a match
type MatchResponse struct {
	ID           string        `json:"id"`
	RequesterID  string        `json:"requester_id"`
	RecipientID  string        `json:"recipient_id"`
	Score        float64       `json:"match_score"`
	CommonSkills []string      `json:"common_skills"`
	Status       string        `json:"status"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
	Sender       *user.Profile `json:"sender,omitempty"`
	Recipient    *user.Profile `json:"recipient,omitempty"`
}

// ToResponse converts entity to response
func (m *Match) ToResponse() *MatchResponse {
	common := m.CommonSkills
	if common == nil {
		common = []string{}
	}
	return &MatchResponse{
		ID:           m.ID.String(),
		RequesterID:  m.RequesterID.String(),
		RecipientID:  m.RecipientID.String(),
		Score:        m.Score,
		CommonSkills: common,
		Status:       string(m.Status),
		CreatedAt:    m.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Connection is the symmetric view of an accepted match from one side
type Connection struct {
	MatchID      string        `json:"id"`
	User         *user.Profile `json:"user"`
	Score        float64       `json:"match_score"`
	CommonSkills []string      `json:"common_skills"`
	ConnectedAt  string        `json:"connected_at"`
}

// Candidate is one row of the find-matches result
type Candidate struct {
	User         *user.Profile `json:"user"`
	Score        float64       `json:"match_score"`
	CommonSkills []string      `json:"common_skills"`
	TheyCanTeach []string      `json:"they_can_teach"`
	TheyCanLearn []string      `json:"they_want_to_learn"`
}
