package repository

import (
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"gorm.io/gorm"
)

// ShortURLRepository short link data access
type ShortURLRepository interface {
	Create(shortURL *domain.ShortURL) error
	FindByCode(code string) (*domain.ShortURL, error)
	IncrementHitCount(id uint64) error
}

type shortURLRepository struct {
	db *gorm.DB
}

// NewShortURLRepository creates a new ShortURLRepository
func NewShortURLRepository(db *gorm.DB) ShortURLRepository {
	return &shortURLRepository{db: db}
}

func (r *shortURLRepository) Create(shortURL *domain.ShortURL) error {
	return r.db.Create(shortURL).Error
}

func (r *shortURLRepository) FindByCode(code string) (*domain.ShortURL, error) {
	var shortURL domain.ShortURL
	if err := r.db.Where("code = ?", code).First(&shortURL).Error; err != nil {
		return nil, err
	}
	return &shortURL, nil
}

func (r *shortURLRepository) IncrementHitCount(id uint64) error {
	return r.db.Model(&domain.ShortURL{}).
		Where("id = ?", id).
		UpdateColumn("hit_count", gorm.Expr("hit_count + 1")).Error
}
