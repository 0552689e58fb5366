package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type represents a lifecycle event type
type Type string

const (
	TypeMatchProposed      Type = "match_proposed"
	TypeMatchAccepted      Type = "match_accepted" // connection established
	TypeMatchRejected      Type = "match_rejected"
	TypeMatchCancelled     Type = "match_cancelled"
	TypeSessionRequested   Type = "session_requested"
	TypeSessionAccepted    Type = "session_accepted"
	TypeSessionRejected    Type = "session_rejected"
	TypeSessionCancelled   Type = "session_cancelled"
	TypeSessionCompleted   Type = "session_completed"
	TypeSessionRated       Type = "session_rated"
	TypeCreditsTransferred Type = "credits_transferred"
)

// Event is a lifecycle event emitted by the core. Consumers (notifications,
// chat seeding) read these downstream; the core never waits on them.
type Event struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	Type      Type            `db:"event_type" json:"type"`
	ActorID   uuid.NullUUID   `db:"actor_id" json:"actor_id,omitempty"`
	SubjectID uuid.NullUUID   `db:"subject_id" json:"subject_id,omitempty"`
	Payload   json.RawMessage `db:"payload" json:"payload,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
