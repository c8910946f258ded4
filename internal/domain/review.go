package domain

import "time"

// Review seller rating left by a buyer. The unique index enforces at
// most one review per (reviewer, reviewed, listing) at the store.
// MySQL admits multiple NULLs in a unique index, so reviews without a
// listing rely on the service pre-check alone.
type Review struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	ReviewerID uint64    `gorm:"column:reviewer_id;not null;uniqueIndex:idx_review_key" json:"reviewer_id"`
	ReviewedID uint64    `gorm:"column:reviewed_id;not null;uniqueIndex:idx_review_key;index" json:"reviewed_id"`
	ListingID  *uint64   `gorm:"column:listing_id;uniqueIndex:idx_review_key" json:"listing_id,omitempty"`
	Rating     int       `gorm:"column:rating;not null" json:"rating"`
	Comment    string    `gorm:"column:comment;type:text" json:"comment,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Relations
	Reviewer *User    `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Listing  *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

// CreateReviewRequest review submission payload.
// Rating bounds are enforced here, before business logic runs.
type CreateReviewRequest struct {
	ReviewedID uint64  `json:"reviewed_id" binding:"required"`
	ListingID  *uint64 `json:"listing_id"`
	Rating     int     `json:"rating" binding:"required,gte=1,lte=5"`
	Comment    string  `json:"comment" binding:"omitempty,max=2000"`
}

// ReviewListResponse reviews received by a user with their average
type ReviewListResponse struct {
	Reviews       []*Review `json:"reviews"`
	AverageRating float64   `json:"average_rating"`
	Total         int64     `json:"total"`
}
