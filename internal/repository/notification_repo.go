package repository

import (
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"gorm.io/gorm"
)

// NotificationRepository in-app notification data access
type NotificationRepository interface {
	Create(notification *domain.Notification) error
	FindByID(id uint64) (*domain.Notification, error)
	ListByUser(userID uint64, page, limit int) ([]*domain.Notification, int64, error)
	UnreadCount(userID uint64) (int64, error)
	MarkRead(id uint64) error
	MarkAllRead(userID uint64) error
	Delete(id uint64) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *domain.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) FindByID(id uint64) (*domain.Notification, error) {
	var notification domain.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) ListByUser(userID uint64, page, limit int) ([]*domain.Notification, int64, error) {
	query := r.db.Model(&domain.Notification{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []*domain.Notification
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) UnreadCount(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(id uint64) error {
	return r.db.Model(&domain.Notification{}).Where("id = ?", id).
		Update("is_read", true).Error
}

func (r *notificationRepository) MarkAllRead(userID uint64) error {
	return r.db.Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (r *notificationRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.Notification{}, id).Error
}
