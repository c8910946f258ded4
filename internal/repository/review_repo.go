package repository

import (
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"gorm.io/gorm"
)

// ReviewRepository review data access
type ReviewRepository interface {
	Create(review *domain.Review) error
	FindByID(id uint64) (*domain.Review, error)
	Exists(reviewerID, reviewedID uint64, listingID *uint64) (bool, error)
	ListByReviewed(reviewedID uint64, page, limit int) ([]*domain.Review, int64, error)
	AverageRating(reviewedID uint64) (float64, error)
	Delete(id uint64) error
	CountFiveStar(reviewedID uint64) (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *domain.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) FindByID(id uint64) (*domain.Review, error) {
	var review domain.Review
	if err := r.db.First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Exists(reviewerID, reviewedID uint64, listingID *uint64) (bool, error) {
	query := r.db.Model(&domain.Review{}).
		Where("reviewer_id = ? AND reviewed_id = ?", reviewerID, reviewedID)
	if listingID != nil {
		query = query.Where("listing_id = ?", *listingID)
	} else {
		query = query.Where("listing_id IS NULL")
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) ListByReviewed(reviewedID uint64, page, limit int) ([]*domain.Review, int64, error) {
	query := r.db.Model(&domain.Review{}).Where("reviewed_id = ?", reviewedID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []*domain.Review
	offset := (page - 1) * limit
	err := query.Preload("Reviewer").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *reviewRepository) AverageRating(reviewedID uint64) (float64, error) {
	var avg float64
	err := r.db.Model(&domain.Review{}).
		Where("reviewed_id = ?", reviewedID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	return avg, err
}

func (r *reviewRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.Review{}, id).Error
}

func (r *reviewRepository) CountFiveStar(reviewedID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Review{}).
		Where("reviewed_id = ? AND rating = 5", reviewedID).
		Count(&count).Error
	return count, err
}
