package services

import (
	"context"

	"github.com/pointsledger/referral-backend/internal/apperrors"
	"github.com/pointsledger/referral-backend/internal/repositories"
)

// PointsService owns per-user balance mutation and reads.
type PointsService struct {
	userRepo repositories.UserRepository
}

// NewPointsService creates a new PointsService
func NewPointsService(userRepo repositories.UserRepository) *PointsService {
	return &PointsService{
		userRepo: userRepo,
	}
}

// AddPoints atomically adds amount to the user's balance, creating the record
// at amount if absent, and returns the new balance. Concurrent calls for the
// same user are both reflected: the increment happens in the store, never as
// a read-modify-write in this process.
func (s *PointsService) AddPoints(ctx context.Context, userID string, amount int64) (int64, error) {
	if userID == "" {
		return 0, apperrors.New(apperrors.CodeInvalidArgument, "user_id is required")
	}
	if amount <= 0 {
		return 0, apperrors.New(apperrors.CodeInvalidArgument, "amount must be a positive integer")
	}

	var balance int64
	err := withRetry(ctx, func() error {
		newBalance, err := s.userRepo.IncrementPoints(ctx, userID, amount)
		if err != nil {
			return err
		}
		balance = newBalance
		return nil
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// GetBalance returns the user's balance. A never-seen user reads as 0 and no
// record is created by the read.
func (s *PointsService) GetBalance(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, apperrors.New(apperrors.CodeInvalidArgument, "user_id is required")
	}

	var balance int64
	err := withRetry(ctx, func() error {
		user, err := s.userRepo.FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if user != nil {
			balance = user.Points
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}
