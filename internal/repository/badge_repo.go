package repository

import (
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"gorm.io/gorm"
)

// BadgeRepository badge and grant data access
type BadgeRepository interface {
	FindAll() ([]*domain.Badge, error)
	GrantedBadgeIDs(userID uint64) (map[uint64]bool, error)
	Grant(grant *domain.UserBadge) error
	ListByUser(userID uint64) ([]*domain.UserBadge, error)
}

type badgeRepository struct {
	db *gorm.DB
}

// NewBadgeRepository creates a new BadgeRepository
func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) FindAll() ([]*domain.Badge, error) {
	var badges []*domain.Badge
	if err := r.db.Order("threshold ASC").Find(&badges).Error; err != nil {
		return nil, err
	}
	return badges, nil
}

func (r *badgeRepository) GrantedBadgeIDs(userID uint64) (map[uint64]bool, error) {
	var ids []uint64
	err := r.db.Model(&domain.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ids).Error
	if err != nil {
		return nil, err
	}
	granted := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		granted[id] = true
	}
	return granted, nil
}

func (r *badgeRepository) Grant(grant *domain.UserBadge) error {
	return r.db.Create(grant).Error
}

func (r *badgeRepository) ListByUser(userID uint64) ([]*domain.UserBadge, error) {
	var grants []*domain.UserBadge
	err := r.db.Preload("Badge").
		Where("user_id = ?", userID).
		Order("granted_at DESC").
		Find(&grants).Error
	if err != nil {
		return nil, err
	}
	return grants, nil
}
