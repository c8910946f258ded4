package service

import (
	"github.com/agrobissau/agrobissau-backend/internal/authz"
	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/internal/repository"
)

// NotificationService in-app notification reads and lifecycle
type NotificationService interface {
	List(p authz.Principal, page, limit int) (*domain.NotificationListResponse, *common.Meta, error)
	MarkRead(p authz.Principal, id uint64) error
	MarkAllRead(p authz.Principal) error
	Delete(p authz.Principal, id uint64) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(p authz.Principal, page, limit int) (*domain.NotificationListResponse, *common.Meta, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	notifications, total, err := s.repo.ListByUser(p.UserID, page, limit)
	if err != nil {
		return nil, nil, err
	}

	unread, err := s.repo.UnreadCount(p.UserID)
	if err != nil {
		return nil, nil, err
	}

	return &domain.NotificationListResponse{
		Items:       notifications,
		UnreadCount: unread,
	}, common.NewMeta(page, limit, total), nil
}

func (s *notificationService) MarkRead(p authz.Principal, id uint64) error {
	notification, err := s.repo.FindByID(id)
	if err != nil {
		return common.ErrNotFound
	}
	if notification.UserID != p.UserID {
		return common.ErrForbidden
	}
	return s.repo.MarkRead(id)
}

func (s *notificationService) MarkAllRead(p authz.Principal) error {
	return s.repo.MarkAllRead(p.UserID)
}

func (s *notificationService) Delete(p authz.Principal, id uint64) error {
	notification, err := s.repo.FindByID(id)
	if err != nil {
		return common.ErrNotFound
	}
	if notification.UserID != p.UserID && !p.IsAdmin() {
		return common.ErrForbidden
	}
	return s.repo.Delete(id)
}
