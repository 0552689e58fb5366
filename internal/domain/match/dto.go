package match

// CreateRequest is the body of a match proposal
type CreateRequest struct {
	RecipientID string `json:"recipient_id" validate:"required,uuid"`
}
