package repository

import (
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"gorm.io/gorm"
)

// CategoryRepository category data access
type CategoryRepository interface {
	FindAll() ([]*domain.Category, error)
	FindByID(id uint64) (*domain.Category, error)
	FindBySlug(slug string) (*domain.Category, error)
	IncrementListingCount(id uint64, delta int) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) FindAll() ([]*domain.Category, error) {
	var categories []*domain.Category
	if err := r.db.Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(id uint64) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindBySlug(slug string) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) IncrementListingCount(id uint64, delta int) error {
	return r.db.Model(&domain.Category{}).
		Where("id = ?", id).
		UpdateColumn("listing_count", gorm.Expr("listing_count + ?", delta)).Error
}
