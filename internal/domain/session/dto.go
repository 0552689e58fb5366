package session

// CreateRequest is the body of a session request
type CreateRequest struct {
	Title         string `json:"title" validate:"max=255"`
	ParticipantID string `json:"participant_id" validate:"required,uuid"`
	Skill         string `json:"skill" validate:"required,max=100"`
	Date          string `json:"session_date" validate:"required,session_date"`
	StartTime     string `json:"start_time" validate:"required,session_time"`
	Duration      int    `json:"duration" validate:"required"`
	SessionType   string `json:"session_type" validate:"required,oneof=teaching learning"`
}

// RateRequest is the body of a session rating
type RateRequest struct {
	Rating   float64 `json:"rating" validate:"required,min=1,max=5"`
	Feedback string  `json:"feedback" validate:"max=2000"`
}
