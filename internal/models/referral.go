package models

// ReferralResult is returned when a referral credit is recorded.
type ReferralResult struct {
	ReferrerID       string `json:"referrer_id"`
	ReferredID       string `json:"referred_id"`
	BonusAwarded     int64  `json:"bonus_awarded"`
	NewReferralCount int64  `json:"new_referral_count"`
}

// LeaderboardEntry is one row of the ranked standings projection.
type LeaderboardEntry struct {
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	Points        int64  `json:"points"`
	ReferralCount int64  `json:"referral_count"`
}
