package domain

import (
	"encoding/json"
	"time"
)

// ListingStatus listing lifecycle state
type ListingStatus string

const (
	ListingStatusDraft     ListingStatus = "DRAFT"
	ListingStatusActive    ListingStatus = "ACTIVE"
	ListingStatusSuspended ListingStatus = "SUSPENDED"
	ListingStatusSold      ListingStatus = "SOLD"
	ListingStatusExpired   ListingStatus = "EXPIRED"
)

// ListingType offer direction
type ListingType string

const (
	ListingTypeSell ListingType = "SELL"
	ListingTypeBuy  ListingType = "BUY"
)

// Listing marketplace listing entity.
// Invariant: FeaturedUntil set implies IsFeatured; the expiry sweep
// clears both once FeaturedUntil passes.
type Listing struct {
	ID              uint64        `gorm:"primaryKey" json:"id"`
	OwnerID         uint64        `gorm:"column:owner_id;not null;index" json:"owner_id"`
	CategoryID      *uint64       `gorm:"column:category_id;index" json:"category_id,omitempty"`
	Title           string        `gorm:"column:title;size:200;not null" json:"title"`
	Description     string        `gorm:"column:description;type:text" json:"description"`
	Price           int64         `gorm:"column:price;not null" json:"price"`
	Unit            string        `gorm:"column:unit;size:30" json:"unit,omitempty"`
	Quantity        int64         `gorm:"column:quantity;default:1" json:"quantity"`
	Currency        string        `gorm:"column:currency;size:3;default:XOF" json:"currency"`
	Type            ListingType   `gorm:"column:type;size:10;default:SELL;index" json:"type"`
	Status          ListingStatus `gorm:"column:status;size:20;default:DRAFT;index" json:"status"`
	Images          string        `gorm:"column:images;type:json" json:"-"` // JSON array
	City            string        `gorm:"column:city;size:100" json:"city,omitempty"`
	Region          string        `gorm:"column:region;size:100;index" json:"region,omitempty"`
	Address         string        `gorm:"column:address;size:255" json:"address,omitempty"`
	Latitude        *float64      `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude       *float64      `gorm:"column:longitude" json:"longitude,omitempty"`
	ViewCount       uint          `gorm:"column:view_count;default:0" json:"view_count"`
	ContactCount    uint          `gorm:"column:contact_count;default:0" json:"contact_count"`
	IsFeatured      bool          `gorm:"column:is_featured;default:false;index" json:"is_featured"`
	FeaturedUntil   *time.Time    `gorm:"column:featured_until" json:"featured_until,omitempty"`
	OriginalPrice   *int64        `gorm:"column:original_price" json:"original_price,omitempty"`
	DiscountPercent *int          `gorm:"column:discount_percent" json:"discount_percent,omitempty"`
	PromotionUntil  *time.Time    `gorm:"column:promotion_until" json:"promotion_until,omitempty"`
	CreatedAt       time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relations
	Owner    *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Listing) TableName() string {
	return "listings"
}

// ImageList decodes the JSON images column
func (l *Listing) ImageList() []string {
	var images []string
	_ = json.Unmarshal([]byte(l.Images), &images)
	return images
}

// IsActive reports whether the listing is visible and contactable
func (l *Listing) IsActive() bool {
	return l.Status == ListingStatusActive
}

// FeaturedActive reports whether the featured flag is currently in effect
func (l *Listing) FeaturedActive(now time.Time) bool {
	return l.IsFeatured && (l.FeaturedUntil == nil || l.FeaturedUntil.After(now))
}

// CreateListingRequest listing creation payload
type CreateListingRequest struct {
	CategoryID  *uint64     `json:"category_id"`
	Title       string      `json:"title" binding:"required,max=200"`
	Description string      `json:"description" binding:"required"`
	Price       int64       `json:"price" binding:"required,gte=0"`
	Unit        string      `json:"unit" binding:"omitempty,max=30"`
	Quantity    int64       `json:"quantity" binding:"omitempty,gte=1"`
	Type        ListingType `json:"type" binding:"required,oneof=SELL BUY"`
	Images      []string    `json:"images" binding:"max=15"`
	City        string      `json:"city" binding:"omitempty,max=100"`
	Region      string      `json:"region" binding:"omitempty,max=100"`
	Address     string      `json:"address" binding:"omitempty,max=255"`
	Latitude    *float64    `json:"latitude"`
	Longitude   *float64    `json:"longitude"`
}

// UpdateListingRequest listing update payload, nil fields untouched
type UpdateListingRequest struct {
	CategoryID  *uint64      `json:"category_id"`
	Title       *string      `json:"title" binding:"omitempty,max=200"`
	Description *string      `json:"description"`
	Price       *int64       `json:"price" binding:"omitempty,gte=0"`
	Unit        *string      `json:"unit" binding:"omitempty,max=30"`
	Quantity    *int64       `json:"quantity" binding:"omitempty,gte=1"`
	Images      []string     `json:"images" binding:"omitempty,max=15"`
	City        *string      `json:"city" binding:"omitempty,max=100"`
	Region      *string      `json:"region" binding:"omitempty,max=100"`
	Address     *string      `json:"address" binding:"omitempty,max=255"`
	Latitude    *float64     `json:"latitude"`
	Longitude   *float64     `json:"longitude"`
}

// UpdateListingStatusRequest status transition payload
type UpdateListingStatusRequest struct {
	Status ListingStatus `json:"status" binding:"required,oneof=DRAFT ACTIVE SUSPENDED SOLD EXPIRED"`
}

// FeatureListingRequest featured promotion payload
type FeatureListingRequest struct {
	Days int `json:"days" binding:"required,gte=1,lte=90"`
}

// PromotionRequest price promotion payload
type PromotionRequest struct {
	DiscountPercent int    `json:"discount_percent" binding:"required,gte=1,lte=90"`
	Days            int    `json:"days" binding:"required,gte=1,lte=90"`
}

// ListingResponse detailed listing response
type ListingResponse struct {
	ID              uint64        `json:"id"`
	OwnerID         uint64        `json:"owner_id"`
	OwnerName       string        `json:"owner_name,omitempty"`
	Category        *Category     `json:"category,omitempty"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Price           int64         `json:"price"`
	Unit            string        `json:"unit,omitempty"`
	Quantity        int64         `json:"quantity"`
	Currency        string        `json:"currency"`
	Type            ListingType   `json:"type"`
	Status          ListingStatus `json:"status"`
	Images          []string      `json:"images"`
	City            string        `json:"city,omitempty"`
	Region          string        `json:"region,omitempty"`
	Address         string        `json:"address,omitempty"`
	Latitude        *float64      `json:"latitude,omitempty"`
	Longitude       *float64      `json:"longitude,omitempty"`
	ViewCount       uint          `json:"view_count"`
	ContactCount    uint          `json:"contact_count"`
	IsFeatured      bool          `json:"is_featured"`
	FeaturedUntil   *time.Time    `json:"featured_until,omitempty"`
	OriginalPrice   *int64        `json:"original_price,omitempty"`
	DiscountPercent *int          `json:"discount_percent,omitempty"`
	PromotionUntil  *time.Time    `json:"promotion_until,omitempty"`
	IsFavorited     bool          `json:"is_favorited"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// ListingSummary compact listing for list pages
type ListingSummary struct {
	ID           uint64        `json:"id"`
	OwnerID      uint64        `json:"owner_id"`
	CategoryName string        `json:"category_name,omitempty"`
	Title        string        `json:"title"`
	Price        int64         `json:"price"`
	Unit         string        `json:"unit,omitempty"`
	Currency     string        `json:"currency"`
	Type         ListingType   `json:"type"`
	Status       ListingStatus `json:"status"`
	City         string        `json:"city,omitempty"`
	Region       string        `json:"region,omitempty"`
	Thumbnail    string        `json:"thumbnail,omitempty"`
	ViewCount    uint          `json:"view_count"`
	IsFeatured   bool          `json:"is_featured"`
	IsFavorited  bool          `json:"is_favorited"`
	CreatedAt    time.Time     `json:"created_at"`
}
