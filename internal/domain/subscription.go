package domain

import "time"

// SubscriptionTier named plan bounding listing count, image count and
// featured-listing quota
type SubscriptionTier string

const (
	TierFree         SubscriptionTier = "FREE"
	TierPremiumBasic SubscriptionTier = "PREMIUM_BASIC"
	TierPremiumPro   SubscriptionTier = "PREMIUM_PRO"
	TierEnterprise   SubscriptionTier = "ENTERPRISE"
)

// SubscriptionStatus subscription lifecycle state
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionExpired  SubscriptionStatus = "EXPIRED"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
)

// Subscription a user's paid plan window
type Subscription struct {
	ID            uint64             `gorm:"primaryKey" json:"id"`
	UserID        uint64             `gorm:"column:user_id;not null;index" json:"user_id"`
	Tier          SubscriptionTier   `gorm:"column:tier;size:20;not null" json:"tier"`
	Status        SubscriptionStatus `gorm:"column:status;size:20;default:ACTIVE;index" json:"status"`
	StartsAt      time.Time          `gorm:"column:starts_at;not null" json:"starts_at"`
	EndsAt        time.Time          `gorm:"column:ends_at;not null" json:"ends_at"`
	TransactionID *uint64            `gorm:"column:transaction_id" json:"transaction_id,omitempty"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// IsCurrent reports whether the subscription covers the given instant
func (s *Subscription) IsCurrent(now time.Time) bool {
	return s.Status == SubscriptionActive && !now.Before(s.StartsAt) && now.Before(s.EndsAt)
}

// SubscribeRequest subscription purchase payload
type SubscribeRequest struct {
	Tier   SubscriptionTier `json:"tier" binding:"required,oneof=PREMIUM_BASIC PREMIUM_PRO ENTERPRISE"`
	Method PaymentMethod    `json:"method" binding:"required,oneof=ORANGE_MONEY WAVE"`
	Phone  string           `json:"phone" binding:"required,max=30"`
}

// SubscribeResponse payment redirect for subscription activation
type SubscribeResponse struct {
	TransactionID uint64 `json:"transaction_id"`
	Reference     string `json:"reference"`
	RedirectURL   string `json:"redirect_url"`
}
