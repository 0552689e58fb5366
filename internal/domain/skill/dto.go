package skill

// CreateRequest represents request to declare a skill
type CreateRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Level    string `json:"level" validate:"required,skill_level"`
	Category string `json:"category" validate:"required,min=1,max=100"`
	Priority int    `json:"priority" validate:"gte=0,lte=10"`
	Kind     string `json:"type" validate:"required,skill_kind"`
}
