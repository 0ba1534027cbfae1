package models

import (
	"time"
)

// DefaultUsername is the display label for users who never registered one.
const DefaultUsername = "Anonymous"

// User represents one document in the users collection. UserID is the
// document key and never changes; ReferredBy is write-once.
type User struct {
	UserID            string    `bson:"_id" json:"user_id"`
	Username          string    `bson:"username,omitempty" json:"username,omitempty"`
	Points            int64     `bson:"points" json:"points"`
	ReferredBy        string    `bson:"referredBy,omitempty" json:"referred_by,omitempty"`
	ReferralCount     int64     `bson:"referralCount" json:"referral_count"`
	ReferralTimestamp time.Time `bson:"referralTimestamp,omitempty" json:"referral_timestamp,omitempty"`
	LastUpdated       time.Time `bson:"lastUpdated,omitempty" json:"last_updated,omitempty"`
	CreatedAt         time.Time `bson:"createdAt,omitempty" json:"created_at,omitempty"`
}

// DisplayName returns the username, falling back to DefaultUsername.
func (u *User) DisplayName() string {
	if u.Username == "" {
		return DefaultUsername
	}
	return u.Username
}
