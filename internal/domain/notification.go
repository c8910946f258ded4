package domain

import "time"

// NotificationType notification category
type NotificationType string

const (
	NotifContact      NotificationType = "CONTACT"
	NotifMessage      NotificationType = "MESSAGE"
	NotifReview       NotificationType = "REVIEW"
	NotifBadge        NotificationType = "BADGE"
	NotifSubscription NotificationType = "SUBSCRIPTION"
	NotifSystem       NotificationType = "SYSTEM"
)

// Notification in-app notification row
type Notification struct {
	ID          uint64           `gorm:"primaryKey" json:"id"`
	UserID      uint64           `gorm:"column:user_id;not null;index" json:"user_id"`
	Type        NotificationType `gorm:"column:type;size:20;not null" json:"type"`
	Title       string           `gorm:"column:title;size:200;not null" json:"title"`
	Message     string           `gorm:"column:message;type:text" json:"message"`
	RelatedType string           `gorm:"column:related_type;size:30" json:"related_type,omitempty"`
	RelatedID   *uint64          `gorm:"column:related_id" json:"related_id,omitempty"`
	IsRead      bool             `gorm:"column:is_read;default:false;index" json:"is_read"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NotificationListResponse paginated notifications with unread count
type NotificationListResponse struct {
	Items       []*Notification `json:"items"`
	UnreadCount int64           `json:"unread_count"`
}
