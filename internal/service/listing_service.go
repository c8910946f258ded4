package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/agrobissau/agrobissau-backend/internal/authz"
	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/internal/repository"
	"github.com/agrobissau/agrobissau-backend/pkg/cache"
	"github.com/rs/zerolog"
)

// TierResolver yields a user's current subscription tier, FREE when no
// active subscription exists.
type TierResolver interface {
	CurrentTier(userID uint64) domain.SubscriptionTier
}

// ListingService listing lifecycle and promotion
type ListingService interface {
	Create(p authz.Principal, req *domain.CreateListingRequest) (*domain.ListingResponse, error)
	Get(id uint64, viewer *authz.Principal) (*domain.ListingResponse, error)
	Update(p authz.Principal, id uint64, req *domain.UpdateListingRequest) error
	UpdateStatus(p authz.Principal, id uint64, status domain.ListingStatus) error
	Delete(p authz.Principal, id uint64) error
	List(params *repository.ListingListParams, viewer *authz.Principal) ([]*domain.ListingSummary, *common.Meta, error)
	ListMine(p authz.Principal, page, limit int) ([]*domain.ListingSummary, *common.Meta, error)

	Feature(p authz.Principal, id uint64, days int) error
	Unfeature(p authz.Principal, id uint64) error
	// SweepExpiredFeatured clears every lapsed featured flag in one
	// bulk update. Idempotent, safe to run repeatedly.
	SweepExpiredFeatured() (int64, error)

	SetPromotion(p authz.Principal, id uint64, req *domain.PromotionRequest) error
	ClearPromotion(p authz.Principal, id uint64) error
}

type listingService struct {
	listingRepo  repository.ListingRepository
	categoryRepo repository.CategoryRepository
	favoriteRepo repository.FavoriteRepository
	messageRepo  repository.MessageRepository
	tiers        TierResolver
	cache        cache.Service
	logger       zerolog.Logger
}

// NewListingService creates a new ListingService
func NewListingService(
	listingRepo repository.ListingRepository,
	categoryRepo repository.CategoryRepository,
	favoriteRepo repository.FavoriteRepository,
	messageRepo repository.MessageRepository,
	tiers TierResolver,
	cacheSvc cache.Service,
	logger zerolog.Logger,
) ListingService {
	return &listingService{
		listingRepo:  listingRepo,
		categoryRepo: categoryRepo,
		favoriteRepo: favoriteRepo,
		messageRepo:  messageRepo,
		tiers:        tiers,
		cache:        cacheSvc,
		logger:       logger,
	}
}

func (s *listingService) Create(p authz.Principal, req *domain.CreateListingRequest) (*domain.ListingResponse, error) {
	limits := LimitsFor(s.tiers.CurrentTier(p.UserID))

	count, err := s.listingRepo.CountByOwner(p.UserID)
	if err != nil {
		return nil, err
	}
	if !WithinQuota(count, limits.MaxListings) {
		return nil, common.ErrListingLimit
	}
	if len(req.Images) > limits.MaxImages {
		return nil, common.ErrImageLimit
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*req.CategoryID); err != nil {
			return nil, common.ErrCategoryNotFound
		}
	}

	imagesJSON, _ := json.Marshal(req.Images)
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	listing := &domain.Listing{
		OwnerID:     p.UserID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Unit:        req.Unit,
		Quantity:    quantity,
		Type:        req.Type,
		Status:      domain.ListingStatusActive,
		Images:      string(imagesJSON),
		City:        req.City,
		Region:      req.Region,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if err := s.listingRepo.Create(listing); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		_ = s.categoryRepo.IncrementListingCount(*req.CategoryID, 1)
	}
	s.invalidateListPages()

	return s.toResponse(listing, false), nil
}

func (s *listingService) Get(id uint64, viewer *authz.Principal) (*domain.ListingResponse, error) {
	listing, err := s.listingRepo.FindByID(id)
	if err != nil {
		return nil, common.ErrListingNotFound
	}

	// View counter is best-effort and only moves on ACTIVE listings
	// viewed by someone other than the owner; the repository's status
	// guard makes non-ACTIVE views a silent no-op.
	if viewer == nil || viewer.UserID != listing.OwnerID {
		if err := s.listingRepo.IncrementViewCount(id); err != nil {
			s.logger.Warn().Err(err).Uint64("listing_id", id).Msg("view count update failed")
		} else if listing.IsActive() {
			listing.ViewCount++
		}
	}

	var isFavorited bool
	if viewer != nil {
		isFavorited, _ = s.favoriteRepo.Exists(viewer.UserID, id)
	}

	return s.toResponse(listing, isFavorited), nil
}

func (s *listingService) Update(p authz.Principal, id uint64, req *domain.UpdateListingRequest) error {
	listing, err := s.listingRepo.FindByID(id)
	if err != nil {
		return common.ErrListingNotFound
	}
	if !authz.Allow(p, authz.ActionUpdate, listing.OwnerID) {
		return common.ErrForbidden
	}

	if req.Images != nil {
		limits := LimitsFor(s.tiers.CurrentTier(listing.OwnerID))
		if len(req.Images) > limits.MaxImages {
			return common.ErrImageLimit
		}
	}

	oldCategoryID := listing.CategoryID

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*req.CategoryID); err != nil {
			return common.ErrCategoryNotFound
		}
		listing.CategoryID = req.CategoryID
	}
	if req.Title != nil {
		listing.Title = *req.Title
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.Price != nil {
		listing.Price = *req.Price
	}
	if req.Unit != nil {
		listing.Unit = *req.Unit
	}
	if req.Quantity != nil {
		listing.Quantity = *req.Quantity
	}
	if req.Images != nil {
		imagesJSON, _ := json.Marshal(req.Images)
		listing.Images = string(imagesJSON)
	}
	if req.City != nil {
		listing.City = *req.City
	}
	if req.Region != nil {
		listing.Region = *req.Region
	}
	if req.Address != nil {
		listing.Address = *req.Address
	}
	if req.Latitude != nil {
		listing.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		listing.Longitude = req.Longitude
	}

	if err := s.listingRepo.Update(listing); err != nil {
		return err
	}

	if req.CategoryID != nil && (oldCategoryID == nil || *oldCategoryID != *req.CategoryID) {
		if oldCategoryID != nil {
			_ = s.categoryRepo.IncrementListingCount(*oldCategoryID, -1)
		}
		_ = s.categoryRepo.IncrementListingCount(*req.CategoryID, 1)
	}
	s.invalidateListPages()

	return nil
}

func (s *listingService) UpdateStatus(p authz.Principal, id uint64, status domain.ListingStatus) error {
	listing, err := s.listingRepo.FindByID(id)
	if err != nil {
		return common.ErrListingNotFound
	}
	if !authz.Allow(p, authz.ActionUpdate, listing.OwnerID) {
		return common.ErrForbidden
	}

	if err := s.listingRepo.UpdateStatus(id, status); err != nil {
		return err
	}
	s.invalidateListPages()
	return nil
}

func (s *listingService) Delete(p authz.Principal, id uint64) error {
	listing, err := s.listingRepo.FindByID(id)
	if err != nil {
		return common.ErrListingNotFound
	}
	if !authz.Allow(p, authz.ActionDelete, listing.OwnerID) {
		return common.ErrForbidden
	}

	// Cascade to rows referencing the listing.
	_ = s.favoriteRepo.DeleteByListing(id)
	_ = s.messageRepo.DeleteByListing(id)
	if listing.CategoryID != nil {
		_ = s.categoryRepo.IncrementListingCount(*listing.CategoryID, -1)
	}

	if err := s.listingRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateListPages()
	return nil
}

func (s *listingService) List(params *repository.ListingListParams, viewer *authz.Principal) ([]*domain.ListingSummary, *common.Meta, error) {
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Limit <= 0 {
		params.Limit = 20
	}
	if params.Limit > 100 {
		params.Limit = 100
	}
	if params.Status == "" {
		params.Status = domain.ListingStatusActive
	}

	listings, total, err := s.listingRepo.List(params)
	if err != nil {
		return nil, nil, err
	}

	var favorited map[uint64]bool
	if viewer != nil && len(listings) > 0 {
		ids := make([]uint64, len(listings))
		for i, l := range listings {
			ids[i] = l.ID
		}
		favorited, _ = s.favoriteRepo.FavoritedIDs(viewer.UserID, ids)
	}

	summaries := make([]*domain.ListingSummary, len(listings))
	for i, l := range listings {
		summaries[i] = s.toSummary(l, favorited != nil && favorited[l.ID])
	}

	return summaries, common.NewMeta(params.Page, params.Limit, total), nil
}

func (s *listingService) ListMine(p authz.Principal, page, limit int) ([]*domain.ListingSummary, *common.Meta, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	listings, total, err := s.listingRepo.ListByOwner(p.UserID, page, limit)
	if err != nil {
		return nil, nil, err
	}

	summaries := make([]*domain.ListingSummary, len(listings))
	for i, l := range listings {
		summaries[i] = s.toSummary(l, false)
	}

	return summaries, common.NewMeta(page, limit, total), nil
}

func (s *listingService) Feature(p authz.Principal, id uint64, days int) error {
	listing, err := s.listingRepo.FindByID(id)
	if err != nil {
		return common.ErrListingNotFound
	}
	if !authz.Allow(p, authz.ActionFeature, listing.OwnerID) {
		return common.ErrForbidden
	}

	now := time.Now()
	if listing.FeaturedActive(now) {
		return common.ErrAlreadyFeatured
	}

	// Quota applies to the listing owner's subscription, also when an
	// admin features on their behalf.
	limits := LimitsFor(s.tiers.CurrentTier(listing.OwnerID))
	if limits.FeaturedQuota == 0 {
		return &common.QuotaError{
			Current:      0,
			Limit:        0,
			RequiredTier: string(RequiredTierForFeatured(0)),
		}
	}

	// Check-then-act: two concurrent calls near the boundary can both
	// pass and exceed the quota by one. The source tolerates this and
	// so do we.
	count, err := s.listingRepo.CountActiveFeaturedByOwner(listing.OwnerID, now)
	if err != nil {
		return err
	}
	if !WithinQuota(count, limits.FeaturedQuota) {
		return &common.QuotaError{
			Current:      int(count),
			Limit:        limits.FeaturedQuota,
			RequiredTier: string(RequiredTierForFeatured(int(count))),
		}
	}

	if err := s.listingRepo.SetFeatured(id, now.AddDate(0, 0, days)); err != nil {
		return err
	}
	s.invalidateListPages()
	return nil
}

func (s *listingService) Unfeature(p authz.Principal, id uint64) error {
	listing, err := s.listingRepo.FindByID(id)
	if err != nil {
		return common.ErrListingNotFound
	}
	if !authz.Allow(p, authz.ActionFeature, listing.OwnerID) {
		return common.ErrForbidden
	}

	if err := s.listingRepo.ClearFeatured(id); err != nil {
		return err
	}
	s.invalidateListPages()
	return nil
}

func (s *listingService) SweepExpiredFeatured() (int64, error) {
	cleared, err := s.listingRepo.ClearExpiredFeatured(time.Now())
	if err != nil {
		return 0, err
	}
	if cleared > 0 {
		s.logger.Info().Int64("cleared", cleared).Msg("featured expiry sweep")
		s.invalidateListPages()
	}
	return cleared, nil
}

func (s *listingService) SetPromotion(p authz.Principal, id uint64, req *domain.PromotionRequest) error {
	listing, err := s.listingRepo.FindByID(id)
	if err != nil {
		return common.ErrListingNotFound
	}
	if !authz.Allow(p, authz.ActionUpdate, listing.OwnerID) {
		return common.ErrForbidden
	}

	originalPrice := listing.Price
	if listing.OriginalPrice != nil {
		originalPrice = *listing.OriginalPrice
	}
	newPrice := originalPrice - originalPrice*int64(req.DiscountPercent)/100
	until := time.Now().AddDate(0, 0, req.Days)

	if err := s.listingRepo.SetPromotion(id, originalPrice, newPrice, req.DiscountPercent, until); err != nil {
		return err
	}
	s.invalidateListPages()
	return nil
}

func (s *listingService) ClearPromotion(p authz.Principal, id uint64) error {
	listing, err := s.listingRepo.FindByID(id)
	if err != nil {
		return common.ErrListingNotFound
	}
	if !authz.Allow(p, authz.ActionUpdate, listing.OwnerID) {
		return common.ErrForbidden
	}

	if err := s.listingRepo.ClearPromotion(id); err != nil {
		return err
	}
	s.invalidateListPages()
	return nil
}

func (s *listingService) invalidateListPages() {
	if err := s.cache.DeleteByPrefix(context.Background(), cache.PrefixListings); err != nil {
		s.logger.Warn().Err(err).Msg("listing cache invalidation failed")
	}
}

func (s *listingService) toResponse(listing *domain.Listing, isFavorited bool) *domain.ListingResponse {
	var ownerName string
	if listing.Owner != nil {
		ownerName = listing.Owner.Name
	}

	return &domain.ListingResponse{
		ID:              listing.ID,
		OwnerID:         listing.OwnerID,
		OwnerName:       ownerName,
		Category:        listing.Category,
		Title:           listing.Title,
		Description:     listing.Description,
		Price:           listing.Price,
		Unit:            listing.Unit,
		Quantity:        listing.Quantity,
		Currency:        listing.Currency,
		Type:            listing.Type,
		Status:          listing.Status,
		Images:          listing.ImageList(),
		City:            listing.City,
		Region:          listing.Region,
		Address:         listing.Address,
		Latitude:        listing.Latitude,
		Longitude:       listing.Longitude,
		ViewCount:       listing.ViewCount,
		ContactCount:    listing.ContactCount,
		IsFeatured:      listing.IsFeatured,
		FeaturedUntil:   listing.FeaturedUntil,
		OriginalPrice:   listing.OriginalPrice,
		DiscountPercent: listing.DiscountPercent,
		PromotionUntil:  listing.PromotionUntil,
		IsFavorited:     isFavorited,
		CreatedAt:       listing.CreatedAt,
		UpdatedAt:       listing.UpdatedAt,
	}
}

func (s *listingService) toSummary(listing *domain.Listing, isFavorited bool) *domain.ListingSummary {
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
		IsFavorited:  isFavorited,
		CreatedAt:    listing.CreatedAt,
	}
}
