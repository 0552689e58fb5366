package skill

import (
	"time"

	"github.com/google/uuid"
)

// Level represents proficiency level
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Kind discriminates what the user wants to do with the skill
type Kind string

const (
	KindTeaching Kind = "teaching"
	KindLearning Kind = "learning"
)

// Skill is a declared skill of a user. The same name may appear once as
// teaching and once as learning for the same user.
type Skill struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Level     Level     `db:"level" json:"level"`
	Category  string    `db:"category" json:"category"`
	Priority  int       `db:"priority" json:"priority"` // meaningful for learning skills only
	Kind      Kind      `db:"kind" json:"type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
