package user

// SyncRequest is the optional body of the identity sync call
type SyncRequest struct {
	Name string `json:"name" validate:"max=255"`
}

// MeResponse is the caller's own view, including the credit balance
type MeResponse struct {
	ID            string   `json:"id"`
	Email         string   `json:"email"`
	Name          string   `json:"name"`
	CreditBalance int      `json:"credit_balance"`
	Rating        *float64 `json:"rating,omitempty"`
}

// ToMeResponse converts the entity to the owner's view
func (u *User) ToMeResponse() *MeResponse {
	resp := &MeResponse{
		ID:            u.ID.String(),
		Email:         u.Email,
		Name:          u.Name,
		CreditBalance: u.CreditBalance,
	}
	if u.Rating.Valid {
		r := u.Rating.Float64
		resp.Rating = &r
	}
	return resp
}
