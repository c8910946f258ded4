package service

import (
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/internal/repository"
)

// Notifier delivers a notification to a user. In-app delivery is the
// baseline; email and push fan-out hang off the same call.
type Notifier interface {
	Notify(userID uint64, notifType domain.NotificationType, title, message string, relatedType string, relatedID *uint64) error
}

type notifier struct {
	repo repository.NotificationRepository
}

// NewNotifier creates the store-backed Notifier
func NewNotifier(repo repository.NotificationRepository) Notifier {
	return &notifier{repo: repo}
}

func (n *notifier) Notify(userID uint64, notifType domain.NotificationType, title, message string, relatedType string, relatedID *uint64) error {
	return n.repo.Create(&domain.Notification{
		UserID:      userID,
		Type:        notifType,
		Title:       title,
		Message:     message,
		RelatedType: relatedType,
		RelatedID:   relatedID,
	})
}
