package services

import (
	"context"

	"github.com/pointsledger/referral-backend/internal/apperrors"
	"github.com/pointsledger/referral-backend/internal/models"
	"github.com/pointsledger/referral-backend/internal/repositories"
)

// UserService handles user registration and profile reads.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// Register sets the user's display name, creating the record if absent. It is
// idempotent and never touches points or referral fields.
func (s *UserService) Register(ctx context.Context, userID, username string) (*models.User, error) {
	if userID == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArgument, "user_id is required")
	}
	if username == "" {
		username = models.DefaultUsername
	}

	var user *models.User
	err := withRetry(ctx, func() error {
		upserted, err := s.userRepo.Upsert(ctx, userID, username)
		if err != nil {
			return err
		}
		user = upserted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser returns the user document, or the implicit zero-state for a user
// that has never been written.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArgument, "user_id is required")
	}

	var user *models.User
	err := withRetry(ctx, func() error {
		found, err := s.userRepo.FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &models.User{UserID: userID}
	}
	return user, nil
}
