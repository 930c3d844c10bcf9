package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestRetrier_PermanentErrorNotRetried(t *testing.T) {
	r := NewRetrier()

	calls := 0
	err := r.Retry(context.Background(), func() error {
		calls++
		return errors.New("syntax error")
	})

	if err == nil {
		t.Fatal("expected error to surface")
	}

	if calls != 1 {
		t.Fatalf("expected a single attempt for a permanent error, got %d", calls)
	}
}

func TestRetrier_RetriesDeadlock(t *testing.T) {
	r := NewRetrier()
	r.initialInterval = 1
	r.maxInterval = 1

	calls := 0
	err := r.Retry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: pgErrDeadlock}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}

	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestRetrier_GivesUpAfterMaxRetries(t *testing.T) {
	r := NewRetrier()
	r.initialInterval = 1
	r.maxInterval = 1

	calls := 0
	err := r.Retry(context.Background(), func() error {
		calls++
		return &pgconn.PgError{Code: pgErrSerializationFailure}
	})

	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}

	// first attempt + maxRetries
	if calls != r.maxRetries+1 {
		t.Fatalf("expected %d attempts, got %d", r.maxRetries+1, calls)
	}
}

func TestIsRetryableError(t *testing.T) {
	if !isRetryableError(&pgconn.PgError{Code: pgErrDeadlock}) {
		t.Fatal("deadlock should be retryable")
	}

	if !isRetryableError(&pgconn.PgError{Code: pgErrSerializationFailure}) {
		t.Fatal("serialization failure should be retryable")
	}

	if isRetryableError(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("unique violation should not be retryable")
	}

	if isRetryableError(errors.New("plain error")) {
		t.Fatal("plain errors should not be retryable")
	}
}
