package ledger

import "errors"

var (
	// ErrInvalidAmount is returned when amount is not positive
	ErrInvalidAmount = errors.New("invalid amount: must be greater than 0")

	// ErrInsufficientCredits is returned when a debit would go negative
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrAlreadyProcessed is returned when ledger rows for the session
	// already exist; the dedup guard behind exactly-once transfer
	ErrAlreadyProcessed = errors.New("transfer already processed for this session")

	// ErrUserNotFound is returned when a party's user row is absent
	ErrUserNotFound = errors.New("user not found")

	// ErrNotFound is returned when a transaction row is absent
	ErrNotFound = errors.New("transaction not found")

	// ErrSameParty is returned when debtor and creditor are the same user
	ErrSameParty = errors.New("cannot transfer credits to the same user")
)
