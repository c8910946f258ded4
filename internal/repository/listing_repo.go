package repository

import (
	"time"

	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"gorm.io/gorm"
)

// ListingListParams list query filters
type ListingListParams struct {
	CategoryID *uint64
	Type       domain.ListingType
	Status     domain.ListingStatus
	Region     string
	PriceMin   *int64
	PriceMax   *int64
	Search     string
	Featured   bool
	Page       int
	Limit      int
}

// ListingRepository listing data access
type ListingRepository interface {
	Create(listing *domain.Listing) error
	FindByID(id uint64) (*domain.Listing, error)
	Update(listing *domain.Listing) error
	Delete(id uint64) error
	List(params *ListingListParams) ([]*domain.Listing, int64, error)
	ListByOwner(ownerID uint64, page, limit int) ([]*domain.Listing, int64, error)
	UpdateStatus(id uint64, status domain.ListingStatus) error
	CountByOwner(ownerID uint64) (int64, error)

	// Counters. IncrementViewCount only touches ACTIVE listings; the
	// zero-rows case is the silent no-op the view contract requires.
	IncrementViewCount(id uint64) error
	IncrementContactCount(id uint64) error

	// Featured promotion
	SetFeatured(id uint64, until time.Time) error
	ClearFeatured(id uint64) error
	CountActiveFeaturedByOwner(ownerID uint64, now time.Time) (int64, error)
	ClearExpiredFeatured(now time.Time) (int64, error)

	// Price promotion
	SetPromotion(id uint64, originalPrice int64, newPrice int64, discount int, until time.Time) error
	ClearPromotion(id uint64) error

	// Aggregates for the badge evaluator
	SumViewsByOwner(ownerID uint64) (int64, error)
	SumContactsByOwner(ownerID uint64) (int64, error)
}

type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new ListingRepository
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(listing *domain.Listing) error {
	return r.db.Create(listing).Error
}

func (r *listingRepository) FindByID(id uint64) (*domain.Listing, error) {
	var listing domain.Listing
	if err := r.db.Preload("Owner").Preload("Category").First(&listing, id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) Update(listing *domain.Listing) error {
	return r.db.Save(listing).Error
}

func (r *listingRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.Listing{}, id).Error
}

func (r *listingRepository) List(params *ListingListParams) ([]*domain.Listing, int64, error) {
	query := r.db.Model(&domain.Listing{})

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.Type != "" {
		query = query.Where("type = ?", params.Type)
	}
	if params.Region != "" {
		query = query.Where("region = ?", params.Region)
	}
	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}
	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if params.Featured {
		query = query.Where("is_featured = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []*domain.Listing
	offset := (params.Page - 1) * params.Limit
	err := query.Preload("Category").
		Order("is_featured DESC, created_at DESC").
		Offset(offset).Limit(params.Limit).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *listingRepository) ListByOwner(ownerID uint64, page, limit int) ([]*domain.Listing, int64, error) {
	query := r.db.Model(&domain.Listing{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []*domain.Listing
	offset := (page - 1) * limit
	err := query.Preload("Category").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *listingRepository) UpdateStatus(id uint64, status domain.ListingStatus) error {
	return r.db.Model(&domain.Listing{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *listingRepository) CountByOwner(ownerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Listing{}).
		Where("owner_id = ? AND status NOT IN ?", ownerID,
			[]domain.ListingStatus{domain.ListingStatusExpired}).
		Count(&count).Error
	return count, err
}

func (r *listingRepository) IncrementViewCount(id uint64) error {
	return r.db.Model(&domain.Listing{}).
		Where("id = ? AND status = ?", id, domain.ListingStatusActive).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *listingRepository) IncrementContactCount(id uint64) error {
	return r.db.Model(&domain.Listing{}).
		Where("id = ?", id).
		UpdateColumn("contact_count", gorm.Expr("contact_count + 1")).Error
}

func (r *listingRepository) SetFeatured(id uint64, until time.Time) error {
	return r.db.Model(&domain.Listing{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_featured":    true,
			"featured_until": until,
		}).Error
}

func (r *listingRepository) ClearFeatured(id uint64) error {
	return r.db.Model(&domain.Listing{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_featured":    false,
			"featured_until": nil,
		}).Error
}

func (r *listingRepository) CountActiveFeaturedByOwner(ownerID uint64, now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Listing{}).
		Where("owner_id = ? AND is_featured = ?", ownerID, true).
		Where("featured_until IS NULL OR featured_until > ?", now).
		Count(&count).Error
	return count, err
}

// ClearExpiredFeatured is the expiry sweep: one bulk UPDATE, so running
// it twice in succession changes nothing the second time.
func (r *listingRepository) ClearExpiredFeatured(now time.Time) (int64, error) {
	result := r.db.Model(&domain.Listing{}).
		Where("is_featured = ? AND featured_until IS NOT NULL AND featured_until < ?", true, now).
		Updates(map[string]interface{}{
			"is_featured":    false,
			"featured_until": nil,
		})
	return result.RowsAffected, result.Error
}

func (r *listingRepository) SetPromotion(id uint64, originalPrice int64, newPrice int64, discount int, until time.Time) error {
	return r.db.Model(&domain.Listing{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"original_price":   originalPrice,
			"price":            newPrice,
			"discount_percent": discount,
			"promotion_until":  until,
		}).Error
}

func (r *listingRepository) ClearPromotion(id uint64) error {
	return r.db.Model(&domain.Listing{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"price":            gorm.Expr("COALESCE(original_price, price)"),
			"original_price":   nil,
			"discount_percent": nil,
			"promotion_until":  nil,
		}).Error
}

func (r *listingRepository) SumViewsByOwner(ownerID uint64) (int64, error) {
	var sum int64
	err := r.db.Model(&domain.Listing{}).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *listingRepository) SumContactsByOwner(ownerID uint64) (int64, error) {
	var sum int64
	err := r.db.Model(&domain.Listing{}).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(contact_count), 0)").
		Scan(&sum).Error
	return sum, err
}
