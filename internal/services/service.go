package services

import (
	"context"
	"time"

	"github.com/pointsledger/referral-backend/internal/apperrors"
)

const (
	// maxAttempts bounds how often a transient store failure is retried
	// before it is surfaced to the caller.
	maxAttempts = 3

	// retryBackoff is the per-attempt backoff unit; attempt n waits n units.
	retryBackoff = 50 * time.Millisecond
)

// withRetry runs op, retrying transient (Unavailable) failures with linear
// backoff. Business outcomes and invalid input pass through on the first
// occurrence; exhausted retries surface the last failure verbatim.
func withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = op()
		if err == nil || !apperrors.IsUnavailable(err) {
			return err
		}
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return apperrors.Wrap(apperrors.CodeUnavailable, "operation cancelled", ctx.Err())
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}
	return err
}
