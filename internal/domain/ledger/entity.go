package ledger

import (
	"time"

	"github.com/google/uuid"
)

// TxType defines supported credit transaction types.
type TxType string

const (
	TxTypeSessionEarn  TxType = "session_earn"
	TxTypeSessionSpend TxType = "session_spend"
	TxTypeAdjustment   TxType = "adjustment"
)

// Transaction is an append-only ledger row. Rows are immutable once written;
// a user's balance is the running sum of their amounts, cached on the user
// row for O(1) reads.
type Transaction struct {
	ID           uuid.UUID     `db:"id"`
	UserID       uuid.UUID     `db:"user_id"`
	SessionID    uuid.NullUUID `db:"session_id"`
	Amount       int           `db:"amount"`
	TxType       TxType        `db:"tx_type"`
	Description  string        `db:"description"`
	BalanceAfter int           `db:"balance_after"`
	CreatedAt    time.Time     `db:"created_at"`
}

// TransactionResponse is the API projection of a ledger row
type TransactionResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	SessionID       *string `json:"session_id,omitempty"`
	Amount          int     `json:"amount"`
	TransactionType string  `json:"transaction_type"`
	Description     string  `json:"description,omitempty"`
	BalanceAfter    int     `json:"balance_after"`
	CreatedAt       string  `json:"created_at"`
}

// ToResponse converts entity to response
func (t *Transaction) ToResponse() *TransactionResponse {
	resp := &TransactionResponse{
		ID:              t.ID.String(),
		UserID:          t.UserID.String(),
		Amount:          t.Amount,
		TransactionType: string(t.TxType),
		Description:     t.Description,
		BalanceAfter:    t.BalanceAfter,
		CreatedAt:       t.CreatedAt.UTC().Format(time.RFC3339),
	}
	if t.SessionID.Valid {
		s := t.SessionID.UUID.String()
		resp.SessionID = &s
	}
	return resp
}
