package repository

import (
	"time"

	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"gorm.io/gorm"
)

// SubscriptionRepository subscription data access
type SubscriptionRepository interface {
	Create(subscription *domain.Subscription) error
	FindCurrentByUser(userID uint64, now time.Time) (*domain.Subscription, error)
	ExpireByUser(userID uint64) error
	ExpireOutdated(now time.Time) (int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(subscription *domain.Subscription) error {
	return r.db.Create(subscription).Error
}

func (r *subscriptionRepository) FindCurrentByUser(userID uint64, now time.Time) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := r.db.Where("user_id = ? AND status = ? AND starts_at <= ? AND ends_at > ?",
		userID, domain.SubscriptionActive, now, now).
		Order("ends_at DESC").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ExpireByUser marks a user's active subscriptions expired, used when a
// new paid subscription replaces the current one.
func (r *subscriptionRepository) ExpireByUser(userID uint64) error {
	return r.db.Model(&domain.Subscription{}).
		Where("user_id = ? AND status = ?", userID, domain.SubscriptionActive).
		Update("status", domain.SubscriptionExpired).Error
}

// ExpireOutdated bulk-expires subscriptions whose window has passed.
func (r *subscriptionRepository) ExpireOutdated(now time.Time) (int64, error) {
	result := r.db.Model(&domain.Subscription{}).
		Where("status = ? AND ends_at <= ?", domain.SubscriptionActive, now).
		Update("status", domain.SubscriptionExpired)
	return result.RowsAffected, result.Error
}
