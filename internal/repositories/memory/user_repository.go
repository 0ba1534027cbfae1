package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pointsledger/referral-backend/internal/apperrors"
	"github.com/pointsledger/referral-backend/internal/models"
	"github.com/pointsledger/referral-backend/internal/repositories"
)

// Compile-time check to ensure UserRepository implements the interface
var _ repositories.UserRepository = (*UserRepository)(nil)

// txnKey marks a context as belonging to an open transaction so nested
// repository calls reuse the already-held lock.
type txnKey struct{}

// UserRepository is an in-process implementation of the ledger store,
// used by tests and the STORE_USE_MEMORY development mode. Transactions are
// serialized behind a single mutex: single-writer-per-store is a stricter
// schedule than the optimistic concurrency the MongoDB implementation uses,
// so the same atomicity guarantees hold.
type UserRepository struct {
	mu    sync.Mutex
	users map[string]*models.User
}

// NewUserRepository creates an empty in-memory users collection.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]*models.User),
	}
}

func inTransaction(ctx context.Context) bool {
	return ctx.Value(txnKey{}) != nil
}

// lock acquires the store mutex unless the context already holds it through
// an open transaction. It returns the matching unlock.
func (r *UserRepository) lock(ctx context.Context) func() {
	if inTransaction(ctx) {
		return func() {}
	}
	r.mu.Lock()
	return r.mu.Unlock
}

// FindByUserID returns a copy of the user document, or nil if absent.
func (r *UserRepository) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	defer r.lock(ctx)()

	user, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

// Upsert merge-writes the username, creating the document if absent.
func (r *UserRepository) Upsert(ctx context.Context, userID, username string) (*models.User, error) {
	defer r.lock(ctx)()

	user := r.getOrCreate(userID)
	user.Username = username
	user.LastUpdated = time.Now().UTC()
	copied := *user
	return &copied, nil
}

// IncrementPoints adds delta to the balance and returns the new value.
func (r *UserRepository) IncrementPoints(ctx context.Context, userID string, delta int64) (int64, error) {
	if delta <= 0 {
		return 0, apperrors.New(apperrors.CodeInvalidArgument, "points delta must be positive")
	}

	defer r.lock(ctx)()

	user := r.getOrCreate(userID)
	user.Points += delta
	user.LastUpdated = time.Now().UTC()
	return user.Points, nil
}

// TopByPoints ranks users with a positive balance, points descending and
// user id ascending on ties.
func (r *UserRepository) TopByPoints(ctx context.Context, limit int) ([]*models.User, error) {
	defer r.lock(ctx)()

	ranked := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		if user.Points > 0 {
			copied := *user
			ranked = append(ranked, &copied)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].UserID < ranked[j].UserID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// RunTransaction holds the store mutex for the whole of fn and rolls the
// store back to its pre-transaction state if fn fails, so a transaction
// either fully applies or leaves no trace.
func (r *UserRepository) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTransaction(ctx) {
		return fn(ctx)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make(map[string]*models.User, len(r.users))
	for id, user := range r.users {
		copied := *user
		snapshot[id] = &copied
	}

	if err := fn(context.WithValue(ctx, txnKey{}, struct{}{})); err != nil {
		r.users = snapshot
		return err
	}
	return nil
}

// SetReferredBy marks the referred user's document, creating it if absent.
func (r *UserRepository) SetReferredBy(ctx context.Context, userID, referrerID string) error {
	defer r.lock(ctx)()

	now := time.Now().UTC()
	user := r.getOrCreate(userID)
	user.ReferredBy = referrerID
	user.ReferralTimestamp = now
	user.LastUpdated = now
	return nil
}

// CreditReferral awards the bonus and bumps the referral counter.
func (r *UserRepository) CreditReferral(ctx context.Context, referrerID string, bonus int64) (int64, error) {
	defer r.lock(ctx)()

	user := r.getOrCreate(referrerID)
	user.Points += bonus
	user.ReferralCount++
	user.LastUpdated = time.Now().UTC()
	return user.ReferralCount, nil
}

// getOrCreate must be called with the mutex held.
func (r *UserRepository) getOrCreate(userID string) *models.User {
	user, ok := r.users[userID]
	if !ok {
		user = &models.User{UserID: userID, CreatedAt: time.Now().UTC()}
		r.users[userID] = user
	}
	return user
}
