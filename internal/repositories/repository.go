package repositories

import (
	"context"

	"github.com/pointsledger/referral-backend/internal/models"
)

// UserRepository defines the interface for user ledger data operations.
//
// FindByUserID returns (nil, nil) for an absent user: absence is a normal
// zero-state, never an error. SetReferredBy and CreditReferral are only
// meaningful inside RunTransaction; calling them outside one forfeits the
// exactly-once referral guarantee.
type UserRepository interface {
	// FindByUserID returns the user document, or nil if none exists.
	FindByUserID(ctx context.Context, userID string) (*models.User, error)

	// Upsert merge-writes the profile fields (username) of a user, creating
	// the document if absent, and returns the resulting document. It never
	// touches points or referral fields.
	Upsert(ctx context.Context, userID, username string) (*models.User, error)

	// IncrementPoints atomically adds delta to a user's balance, creating
	// the document at delta if absent, and returns the new balance.
	IncrementPoints(ctx context.Context, userID string, delta int64) (int64, error)

	// TopByPoints returns up to limit users with points > 0, ordered by
	// points descending then user id ascending.
	TopByPoints(ctx context.Context, limit int) ([]*models.User, error)

	// RunTransaction executes fn inside a single atomic transaction. Reads
	// and writes issued through the repository with the context passed to fn
	// bind to that transaction; all writes commit together or not at all.
	// The store retries fn with fresh reads on write conflict.
	RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// SetReferredBy marks the referred user as referred by referrerID,
	// creating the document if absent.
	SetReferredBy(ctx context.Context, userID, referrerID string) error

	// CreditReferral adds bonus points and one referral to the referrer,
	// creating the document if absent, and returns the new referral count.
	CreditReferral(ctx context.Context, referrerID string, bonus int64) (int64, error)
}
