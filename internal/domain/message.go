package domain

import "time"

// Message a single direct message, optionally tied to a listing.
// A conversation is derived: all messages between two users scoped to
// one listing, ordered by creation time.
type Message struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	SenderID   uint64    `gorm:"column:sender_id;not null;index" json:"sender_id"`
	ReceiverID uint64    `gorm:"column:receiver_id;not null;index" json:"receiver_id"`
	ListingID  *uint64   `gorm:"column:listing_id;index" json:"listing_id,omitempty"`
	Content    string    `gorm:"column:content;type:text;not null" json:"content"`
	IsRead     bool      `gorm:"column:is_read;default:false" json:"is_read"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Relations
	Sender  *User    `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Listing *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}

// ContactRequest first-contact payload
type ContactRequest struct {
	Message string `json:"message" binding:"omitempty,max=2000"`
}

// SendMessageRequest follow-up message payload
type SendMessageRequest struct {
	ReceiverID uint64  `json:"receiver_id" binding:"required"`
	ListingID  *uint64 `json:"listing_id"`
	Content    string  `json:"content" binding:"required,max=2000"`
}

// ContactResponse outcome of a contact attempt
type ContactResponse struct {
	Existing bool     `json:"existing"`
	Message  *Message `json:"message,omitempty"`
}

// ConversationSummary one row of the conversation list
type ConversationSummary struct {
	PeerID      uint64    `json:"peer_id"`
	PeerName    string    `json:"peer_name,omitempty"`
	ListingID   *uint64   `json:"listing_id,omitempty"`
	LastMessage string    `json:"last_message"`
	LastAt      time.Time `json:"last_at"`
	UnreadCount int64     `json:"unread_count"`
}
