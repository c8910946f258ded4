package domain

import "time"

// Favorite (user, listing) bookmark. The unique index closes the
// duplicate-favorite race at the store instead of relying on the
// pre-check alone.
type Favorite struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:idx_fav_user_listing" json:"user_id"`
	ListingID uint64    `gorm:"column:listing_id;not null;uniqueIndex:idx_fav_user_listing;index" json:"listing_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Relations
	Listing *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// FavoriteResponse favorite with its listing snapshot
type FavoriteResponse struct {
	ID        uint64          `json:"id"`
	Listing   *ListingSummary `json:"listing"`
	CreatedAt time.Time       `json:"created_at"`
}
