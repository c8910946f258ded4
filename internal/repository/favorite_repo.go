package repository

import (
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"gorm.io/gorm"
)

// FavoriteRepository favorite data access
type FavoriteRepository interface {
	Create(favorite *domain.Favorite) error
	// Delete reports the number of rows removed so the caller can
	// distinguish a second removal from a first one.
	Delete(userID, listingID uint64) (int64, error)
	Exists(userID, listingID uint64) (bool, error)
	ListByUser(userID uint64, page, limit int) ([]*domain.Favorite, int64, error)
	FavoritedIDs(userID uint64, listingIDs []uint64) (map[uint64]bool, error)
	DeleteByListing(listingID uint64) error
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new FavoriteRepository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(favorite *domain.Favorite) error {
	return r.db.Create(favorite).Error
}

func (r *favoriteRepository) Delete(userID, listingID uint64) (int64, error) {
	result := r.db.Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&domain.Favorite{})
	return result.RowsAffected, result.Error
}

func (r *favoriteRepository) Exists(userID, listingID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Favorite{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	return count > 0, err
}

func (r *favoriteRepository) ListByUser(userID uint64, page, limit int) ([]*domain.Favorite, int64, error) {
	query := r.db.Model(&domain.Favorite{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var favorites []*domain.Favorite
	offset := (page - 1) * limit
	err := query.Preload("Listing").Preload("Listing.Category").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&favorites).Error
	if err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}

func (r *favoriteRepository) FavoritedIDs(userID uint64, listingIDs []uint64) (map[uint64]bool, error) {
	var ids []uint64
	err := r.db.Model(&domain.Favorite{}).
		Where("user_id = ? AND listing_id IN ?", userID, listingIDs).
		Pluck("listing_id", &ids).Error
	if err != nil {
		return nil, err
	}
	result := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func (r *favoriteRepository) DeleteByListing(listingID uint64) error {
	return r.db.Where("listing_id = ?", listingID).Delete(&domain.Favorite{}).Error
}
