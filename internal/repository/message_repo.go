package repository

import (
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"gorm.io/gorm"
)

// MessageRepository message data access
type MessageRepository interface {
	Create(message *domain.Message) error
	// ExistsBetween checks for any prior message between two users
	// scoped to one listing, in either direction.
	ExistsBetween(userA, userB, listingID uint64) (bool, error)
	FindConversation(userID, peerID uint64, listingID *uint64, page, limit int) ([]*domain.Message, int64, error)
	ListConversations(userID uint64) ([]*domain.ConversationSummary, error)
	MarkConversationRead(userID, peerID uint64, listingID *uint64) error
	CountUnread(userID uint64) (int64, error)
	DeleteByListing(listingID uint64) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *domain.Message) error {
	return r.db.Create(message).Error
}

func (r *messageRepository) ExistsBetween(userA, userB, listingID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Message{}).
		Where("listing_id = ?", listingID).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	return count > 0, err
}

func (r *messageRepository) FindConversation(userID, peerID uint64, listingID *uint64, page, limit int) ([]*domain.Message, int64, error) {
	query := r.db.Model(&domain.Message{}).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, peerID, peerID, userID)
	if listingID != nil {
		query = query.Where("listing_id = ?", *listingID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []*domain.Message
	offset := (page - 1) * limit
	err := query.Preload("Sender").
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *messageRepository) ListConversations(userID uint64) ([]*domain.ConversationSummary, error) {
	// Latest message per (peer, listing) pair, with unread counts.
	var summaries []*domain.ConversationSummary
	err := r.db.Raw(`
		SELECT
			peer_id,
			u.name AS peer_name,
			t.listing_id,
			t.content AS last_message,
			t.created_at AS last_at,
			(SELECT COUNT(*) FROM messages m2
				WHERE m2.receiver_id = ? AND m2.sender_id = t.peer_id
				AND (m2.listing_id <=> t.listing_id)
				AND m2.is_read = 0) AS unread_count
		FROM (
			SELECT
				IF(m.sender_id = ?, m.receiver_id, m.sender_id) AS peer_id,
				m.listing_id, m.content, m.created_at,
				ROW_NUMBER() OVER (
					PARTITION BY IF(m.sender_id = ?, m.receiver_id, m.sender_id), m.listing_id
					ORDER BY m.created_at DESC
				) AS rn
			FROM messages m
			WHERE m.sender_id = ? OR m.receiver_id = ?
		) t
		JOIN users u ON u.id = t.peer_id
		WHERE t.rn = 1
		ORDER BY t.created_at DESC
	`, userID, userID, userID, userID, userID).Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *messageRepository) MarkConversationRead(userID, peerID uint64, listingID *uint64) error {
	query := r.db.Model(&domain.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", userID, peerID, false)
	if listingID != nil {
		query = query.Where("listing_id = ?", *listingID)
	}
	return query.Update("is_read", true).Error
}

func (r *messageRepository) CountUnread(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *messageRepository) DeleteByListing(listingID uint64) error {
	return r.db.Where("listing_id = ?", listingID).Delete(&domain.Message{}).Error
}
