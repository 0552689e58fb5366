package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// NewPostgres creates a new PostgreSQL connection pool. queryTimeout is
// applied server-side as statement_timeout and lock_timeout, so a stalled
// peer holding a row lock fails the waiter instead of blocking it forever.
func NewPostgres(databaseURL string, queryTimeout time.Duration) (*sqlx.DB, error) {
	dsn, err := serverTimeoutDSN(databaseURL, queryTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	log.Info().Msg("Connected to PostgreSQL")
	return db, nil
}

// serverTimeoutDSN adds statement_timeout and lock_timeout to the DSN.
// Values already present in the DSN win. Both URL and key/value forms are
// accepted; lib/pq forwards unrecognized parameters to the server as
// run-time settings.
func serverTimeoutDSN(dsn string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		return dsn, nil
	}
	ms := strconv.FormatInt(timeout.Milliseconds(), 10)

	if strings.Contains(dsn, "://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", err
		}
		q := u.Query()
		if q.Get("statement_timeout") == "" {
			q.Set("statement_timeout", ms)
		}
		if q.Get("lock_timeout") == "" {
			q.Set("lock_timeout", ms)
		}
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	if !strings.Contains(dsn, "statement_timeout=") {
		dsn += " statement_timeout=" + ms
	}
	if !strings.Contains(dsn, "lock_timeout=") {
		dsn += " lock_timeout=" + ms
	}
	return strings.TrimSpace(dsn), nil
}

// IsTransient reports whether the error is a timeout or concurrency failure
// the caller may safely retry: lock/statement timeouts, serialization
// failures and deadlocks.
func IsTransient(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code {
	case "55P03", // lock_not_available
		"57014", // query_canceled (statement_timeout)
		"40001", // serialization_failure
		"40P01": // deadlock_detected
		return true
	}
	return false
}

// ClosePostgres closes the database connection
func ClosePostgres(db *sqlx.DB) {
	if db != nil {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing PostgreSQL connection")
		} else {
			log.Info().Msg("PostgreSQL connection closed")
		}
	}
}
