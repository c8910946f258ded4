package service

import (
	"errors"
	"strings"

	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/internal/repository"
	"gorm.io/gorm"
)

// FavoriteService user/listing bookmarks.
// Removing twice is a not-found on the second call, not a silent
// success: callers rely on that distinction.
type FavoriteService interface {
	Add(userID, listingID uint64) (*domain.Favorite, error)
	Remove(userID, listingID uint64) error
	List(userID uint64, page, limit int) ([]*domain.FavoriteResponse, *common.Meta, error)
	Check(userID, listingID uint64) (bool, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	listingRepo  repository.ListingRepository
}

// NewFavoriteService creates a new FavoriteService
func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	listingRepo repository.ListingRepository,
) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		listingRepo:  listingRepo,
	}
}

func (s *favoriteService) Add(userID, listingID uint64) (*domain.Favorite, error) {
	if _, err := s.listingRepo.FindByID(listingID); err != nil {
		return nil, common.ErrListingNotFound
	}

	exists, err := s.favoriteRepo.Exists(userID, listingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrFavoriteExists
	}

	favorite := &domain.Favorite{
		UserID:    userID,
		ListingID: listingID,
	}
	if err := s.favoriteRepo.Create(favorite); err != nil {
		// The unique index catches the concurrent double-add the
		// pre-check missed.
		if isDuplicateKey(err) {
			return nil, common.ErrFavoriteExists
		}
		return nil, err
	}
	return favorite, nil
}

func (s *favoriteService) Remove(userID, listingID uint64) error {
	removed, err := s.favoriteRepo.Delete(userID, listingID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return common.ErrFavoriteNotFound
	}
	return nil
}

func (s *favoriteService) List(userID uint64, page, limit int) ([]*domain.FavoriteResponse, *common.Meta, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	favorites, total, err := s.favoriteRepo.ListByUser(userID, page, limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*domain.FavoriteResponse, len(favorites))
	for i, fav := range favorites {
		var summary *domain.ListingSummary
		if fav.Listing != nil {
			summary = favoriteListingSummary(fav.Listing)
		}
		responses[i] = &domain.FavoriteResponse{
			ID:        fav.ID,
			Listing:   summary,
			CreatedAt: fav.CreatedAt,
		}
	}

	return responses, common.NewMeta(page, limit, total), nil
}

// Check reports favorite status; absence is false, never an error.
func (s *favoriteService) Check(userID, listingID uint64) (bool, error) {
	return s.favoriteRepo.Exists(userID, listingID)
}

func favoriteListingSummary(listing *domain.Listing) *domain.ListingSummary {
	var thumbnail string
	if images := listing.ImageList(); len(images) > 0 {
		thumbnail = images[0]
	}
	var categoryName string
	if listing.Category != nil {
		categoryName = listing.Category.Name
	}

	return &domain.ListingSummary{
		ID:           listing.ID,
		OwnerID:      listing.OwnerID,
		CategoryName: categoryName,
		Title:        listing.Title,
		Price:        listing.Price,
		Unit:         listing.Unit,
		Currency:     listing.Currency,
		Type:         listing.Type,
		Status:       listing.Status,
		City:         listing.City,
		Region:       listing.Region,
		Thumbnail:    thumbnail,
		ViewCount:    listing.ViewCount,
		IsFeatured:   listing.IsFeatured,
		IsFavorited:  true,
		CreatedAt:    listing.CreatedAt,
	}
}

// isDuplicateKey detects MySQL duplicate entry errors (1062) without
// binding to the driver error type.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "Duplicate entry")
}
