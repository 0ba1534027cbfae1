package services

import (
	"context"

	"github.com/pointsledger/referral-backend/internal/apperrors"
	"github.com/pointsledger/referral-backend/internal/models"
	"github.com/pointsledger/referral-backend/internal/repositories"
)

// ReferralBonus is the fixed number of points awarded to a referrer the
// first time their referred user is recorded.
const ReferralBonus = 100

// ReferralService owns the one-time referral crediting invariant.
type ReferralService struct {
	userRepo repositories.UserRepository
}

// NewReferralService creates a new ReferralService
func NewReferralService(userRepo repositories.UserRepository) *ReferralService {
	return &ReferralService{
		userRepo: userRepo,
	}
}

// RecordReferral credits referrerID for referring referredID, exactly once.
//
// The already-referred gate and the credit execute inside one store
// transaction: checking referredBy in a separate read before the writes would
// let two concurrent requests both pass the gate and double-credit the
// referrer. When the store retries the transaction after a write conflict the
// whole callback re-runs with fresh reads, so a retry that lost the race
// lands on the gate and reports AlreadyReferred.
func (s *ReferralService) RecordReferral(ctx context.Context, referrerID, referredID string) (*models.ReferralResult, error) {
	if referrerID == "" || referredID == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArgument, "referrer_id and referred_id are required")
	}
	if referrerID == referredID {
		return nil, apperrors.New(apperrors.CodeInvalidArgument, "cannot refer yourself")
	}

	var result *models.ReferralResult
	err := withRetry(ctx, func() error {
		return s.userRepo.RunTransaction(ctx, func(txCtx context.Context) error {
			referred, err := s.userRepo.FindByUserID(txCtx, referredID)
			if err != nil {
				return err
			}
			if referred != nil && referred.ReferredBy != "" {
				return apperrors.Newf(apperrors.CodeAlreadyReferred, "user %s was already referred", referredID)
			}

			if err := s.userRepo.SetReferredBy(txCtx, referredID, referrerID); err != nil {
				return err
			}
			newCount, err := s.userRepo.CreditReferral(txCtx, referrerID, ReferralBonus)
			if err != nil {
				return err
			}

			result = &models.ReferralResult{
				ReferrerID:       referrerID,
				ReferredID:       referredID,
				BonusAwarded:     ReferralBonus,
				NewReferralCount: newCount,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
