package services

import (
	"context"

	"github.com/pointsledger/referral-backend/internal/models"
	"github.com/pointsledger/referral-backend/internal/repositories"
)

const (
	// DefaultLeaderboardLimit is used when the caller does not ask for a size.
	DefaultLeaderboardLimit = 20
	// MaxLeaderboardLimit caps the read so one request cannot scan the store.
	MaxLeaderboardLimit = 100
)

// LeaderboardService is a read-only ranked projection over the ledger.
type LeaderboardService struct {
	userRepo repositories.UserRepository
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(userRepo repositories.UserRepository) *LeaderboardService {
	return &LeaderboardService{
		userRepo: userRepo,
	}
}

// TopUsers returns up to limit users ranked by balance descending, ties
// broken by user id ascending. Zero-balance users are excluded. An empty
// board is an empty slice, not an error.
func (s *LeaderboardService) TopUsers(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	var users []*models.User
	err := withRetry(ctx, func() error {
		ranked, err := s.userRepo.TopByPoints(ctx, limit)
		if err != nil {
			return err
		}
		users = ranked
		return nil
	})
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for _, user := range users {
		entries = append(entries, models.LeaderboardEntry{
			UserID:        user.UserID,
			Username:      user.DisplayName(),
			Points:        user.Points,
			ReferralCount: user.ReferralCount,
		})
	}
	return entries, nil
}
