package domain

import "time"

// Category product category (e.g. céréales, fruits, bétail)
type Category struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"column:name;size:100;not null" json:"name"`
	Slug         string    `gorm:"column:slug;size:100;not null;uniqueIndex" json:"slug"`
	Icon         string    `gorm:"column:icon;size:100" json:"icon,omitempty"`
	ListingCount int64     `gorm:"column:listing_count;default:0" json:"listing_count"`
	SortOrder    int       `gorm:"column:sort_order;default:0" json:"sort_order"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}
