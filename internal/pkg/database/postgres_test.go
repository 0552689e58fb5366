package database

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestServerTimeoutDSNURLForm(t *testing.T) {
	dsn, err := serverTimeoutDSN("postgres://u:p@localhost:5432/app?sslmode=disable", 3*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"statement_timeout=3000", "lock_timeout=3000", "sslmode=disable"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("expected %q in dsn, got %q", want, dsn)
		}
	}
}

func TestServerTimeoutDSNKeyValueForm(t *testing.T) {
	dsn, err := serverTimeoutDSN("host=localhost dbname=app", 1500*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(dsn, "statement_timeout=1500") || !strings.Contains(dsn, "lock_timeout=1500") {
		t.Fatalf("timeouts missing from dsn: %q", dsn)
	}
}

func TestServerTimeoutDSNKeepsExplicitValues(t *testing.T) {
	in := "postgres://u:p@localhost/app?statement_timeout=9000"
	dsn, err := serverTimeoutDSN(in, 3*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(dsn, "statement_timeout=9000") || strings.Contains(dsn, "statement_timeout=3000") {
		t.Fatalf("explicit statement_timeout should win, got %q", dsn)
	}
	if !strings.Contains(dsn, "lock_timeout=3000") {
		t.Fatalf("lock_timeout should still be added, got %q", dsn)
	}
}

func TestServerTimeoutDSNZeroDisables(t *testing.T) {
	in := "postgres://u:p@localhost/app"
	dsn, err := serverTimeoutDSN(in, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dsn != in {
		t.Fatalf("expected dsn unchanged, got %q", dsn)
	}
}

func TestIsTransient(t *testing.T) {
	for _, code := range []pq.ErrorCode{"55P03", "57014", "40001", "40P01"} {
		err := fmt.Errorf("exec: %w", &pq.Error{Code: code})
		if !IsTransient(err) {
			t.Fatalf("expected %s to be transient", code)
		}
	}
	if IsTransient(&pq.Error{Code: "23505"}) {
		t.Fatal("unique violation is not transient")
	}
	if IsTransient(errors.New("plain")) {
		t.Fatal("plain errors are not transient")
	}
}
