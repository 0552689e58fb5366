package ledger

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository provides credit ledger and balance operations. It is the only
// component that mutates user balances.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new ledger repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetBalance returns the cached balance for a user
func (r *Repository) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	var balance int
	err := r.db.GetContext(ctx, &balance, `SELECT credit_balance FROM users WHERE id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	return balance, err
}

// ListByUser returns a page of the user's ledger, newest first
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Transaction, error) {
	var txs []Transaction
	err := r.db.SelectContext(ctx, &txs, `
		SELECT * FROM credit_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	return txs, err
}

// GetByID returns a single ledger row owned by the user
func (r *Repository) GetByID(ctx context.Context, id, userID uuid.UUID) (*Transaction, error) {
	var tx Transaction
	err := r.db.GetContext(ctx, &tx, `
		SELECT * FROM credit_transactions WHERE id = $1 AND user_id = $2
	`, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// CountBySession returns the number of ledger rows carrying the session id
func (r *Repository) CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM credit_transactions WHERE session_id = $1
	`, sessionID)
	return count, err
}

// Transfer moves credits atomically between two users in its own transaction.
func (r *Repository) Transfer(ctx context.Context, fromID, toID uuid.UUID, amount int, sessionID uuid.UUID, description string) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transfer tx: %w", err)
	}
	defer tx.Rollback()

	if err := r.TransferTx(ctx, tx, fromID, toID, amount, sessionID, description); err != nil {
		return err
	}

	return tx.Commit()
}

// TransferTx moves credits within an external transaction. The caller owns
// commit/rollback; session completion uses this so the status flip and the
// transfer land in one atomic unit.
//
// Both user rows are locked FOR UPDATE in ascending id order so two
// transfers touching the same pair cannot deadlock. The session id acts as
// the dedup key: rows already present mean the transfer happened and the
// call fails with ErrAlreadyProcessed without touching balances.
func (r *Repository) TransferTx(ctx context.Context, tx *sqlx.Tx, fromID, toID uuid.UUID, amount int, sessionID uuid.UUID, description string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if fromID == toID {
		return ErrSameParty
	}

	var exists bool
	err := tx.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM credit_transactions WHERE session_id = $1)
	`, sessionID)
	if err != nil {
		return fmt.Errorf("check transfer dedup: %w", err)
	}
	if exists {
		return ErrAlreadyProcessed
	}

	fromBalance, toBalance, err := r.lockPair(ctx, tx, fromID, toID)
	if err != nil {
		return err
	}

	if fromBalance < amount {
		return ErrInsufficientCredits
	}

	fromBalance -= amount
	toBalance += amount

	if err := r.updateBalance(ctx, tx, fromID, fromBalance); err != nil {
		return err
	}
	if err := r.updateBalance(ctx, tx, toID, toBalance); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := r.insertRow(ctx, tx, fromID, -amount, TxTypeSessionSpend, sessionID, description, fromBalance, now); err != nil {
		return err
	}
	if err := r.insertRow(ctx, tx, toID, amount, TxTypeSessionEarn, sessionID, description, toBalance, now); err != nil {
		return err
	}

	return nil
}

// lockPair locks both user rows FOR UPDATE in ascending id order and
// returns their balances.
func (r *Repository) lockPair(ctx context.Context, tx *sqlx.Tx, fromID, toID uuid.UUID) (fromBalance, toBalance int, err error) {
	first, second := fromID, toID
	if bytes.Compare(second[:], first[:]) < 0 {
		first, second = second, first
	}

	balances := map[uuid.UUID]int{}
	for _, id := range []uuid.UUID{first, second} {
		var balance int
		err := tx.GetContext(ctx, &balance, `SELECT credit_balance FROM users WHERE id = $1 FOR UPDATE`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, ErrUserNotFound
		}
		if err != nil {
			return 0, 0, fmt.Errorf("lock user row: %w", err)
		}
		balances[id] = balance
	}

	return balances[fromID], balances[toID], nil
}

func (r *Repository) updateBalance(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, balance int) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE users SET credit_balance = $1, updated_at = now() WHERE id = $2
	`, balance, userID)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	return nil
}

func (r *Repository) insertRow(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int, txType TxType, sessionID uuid.UUID, description string, balanceAfter int, createdAt time.Time) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO credit_transactions (id, user_id, session_id, amount, tx_type, description, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, uuid.New(), userID, sessionID, amount, txType, description, balanceAfter, createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			// unique (session_id, user_id) tripped: a concurrent transfer won
			return ErrAlreadyProcessed
		}
		return fmt.Errorf("insert ledger row: %w", err)
	}
	return nil
}
