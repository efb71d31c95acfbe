package todo

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v5"

	"todoapp/internal/store"
)

// StartPolicy decides what happens when schema readiness retries are
// exhausted.
type StartPolicy int

const (
	// DegradedStart logs a warning and lets the process serve traffic
	// without a verified schema. Suited to local orchestration where the
	// database may come up after this service.
	DegradedStart StartPolicy = iota
	// FailFast turns retry exhaustion into a startup error.
	FailFast
)

const (
	readinessAttempts     = 10
	readinessInitialDelay = time.Second
	readinessMaxDelay     = 10 * time.Second
)

// WaitForStore runs the store's schema initialization with exponential
// backoff before the API accepts traffic. Transient connectivity failures
// are retried up to 10 times with a doubling delay capped at 10s; any other
// error aborts immediately. Cancelling ctx stops the loop between attempts.
func WaitForStore(ctx context.Context, s store.Store, policy StartPolicy) error {
	return waitForStore(ctx, s, policy, readinessInitialDelay)
}

func waitForStore(ctx context.Context, s store.Store, policy StartPolicy, initialDelay time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initialDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = readinessMaxDelay

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := s.Init(ctx)
		if err == nil {
			return struct{}{}, nil
		}
		if !isTransient(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		log.Printf("todo: store not ready (attempt %d/%d): %v", attempt, readinessAttempts, err)
		return struct{}{}, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(readinessAttempts))

	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case !isTransient(err):
		return fmt.Errorf("store initialization failed: %w", err)
	case policy == FailFast:
		return fmt.Errorf("store not ready after %d attempts: %w", readinessAttempts, err)
	default:
		log.Printf("todo: store initialization skipped after %d attempts, continuing without verified schema: %v",
			readinessAttempts, err)
		return nil
	}
}

// isTransient classifies errors worth retrying at startup: socket-level
// failures and driver connection errors seen while the database is still
// coming up. Schema and usage errors are not transient.
func isTransient(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.ECONNREFUSED || errno == syscall.ECONNRESET || errno == syscall.ETIMEDOUT
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, io.EOF) {
		return true
	}
	// Postgres rejects connections with a plain error while booting.
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "the database system is starting up")
}
