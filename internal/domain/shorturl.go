package domain

import "time"

// ShortURL short share link for a listing
type ShortURL struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"column:code;size:16;not null;uniqueIndex" json:"code"`
	TargetURL string    `gorm:"column:target_url;size:500;not null" json:"target_url"`
	ListingID *uint64   `gorm:"column:listing_id;index" json:"listing_id,omitempty"`
	HitCount  uint      `gorm:"column:hit_count;default:0" json:"hit_count"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ShortURL) TableName() string {
	return "short_urls"
}

// CreateShortURLRequest short link creation payload
type CreateShortURLRequest struct {
	TargetURL string  `json:"target_url" binding:"required,url,max=500"`
	ListingID *uint64 `json:"listing_id"`
}
