package service

import (
	"context"
	"errors"
	"time"

	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/internal/repository"
	"github.com/agrobissau/agrobissau-backend/pkg/cache"
	"gorm.io/gorm"
)

// CategoryService category read operations
type CategoryService interface {
	List() ([]*domain.Category, error)
	Get(id uint64) (*domain.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	cache        cache.Service
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository, cacheSvc cache.Service) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, cache: cacheSvc}
}

func (s *categoryService) List() ([]*domain.Category, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := cache.PrefixCategories + "all"
	var cached []*domain.Category
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, categories, cache.TTLCategories)
	return categories, nil
}

func (s *categoryService) Get(id uint64) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}
