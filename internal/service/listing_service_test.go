package service

import (
	"errors"
	"testing"
	"time"

	"github.com/agrobissau/agrobissau-backend/internal/authz"
	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/pkg/cache"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newListingServiceForTest(
	listingRepo *MockListingRepository,
	categoryRepo *MockCategoryRepository,
	favoriteRepo *MockFavoriteRepository,
	messageRepo *MockMessageRepository,
	tiers *MockTierResolver,
) ListingService {
	return NewListingService(listingRepo, categoryRepo, favoriteRepo, messageRepo, tiers, cache.New(nil), zerolog.Nop())
}

func sellerPrincipal(id uint64) authz.Principal {
	return authz.Principal{UserID: id, Name: "Mamadou", Role: domain.RoleUser}
}

func timeInFuture() time.Time {
	return time.Now().Add(24 * time.Hour)
}

func TestCreate_ListingQuotaExceeded(t *testing.T) {
	listingRepo := new(MockListingRepository)
	tiers := new(MockTierResolver)
	svc := newListingServiceForTest(listingRepo, new(MockCategoryRepository), new(MockFavoriteRepository), new(MockMessageRepository), tiers)

	tiers.On("CurrentTier", uint64(1)).Return(domain.TierFree)
	listingRepo.On("CountByOwner", uint64(1)).Return(int64(3), nil)

	_, err := svc.Create(sellerPrincipal(1), &domain.CreateListingRequest{
		Title: "Riz local", Price: 15000, Type: domain.ListingTypeSell,
	})

	assert.ErrorIs(t, err, common.ErrListingLimit)
	listingRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreate_ImageQuotaExceeded(t *testing.T) {
	listingRepo := new(MockListingRepository)
	tiers := new(MockTierResolver)
	svc := newListingServiceForTest(listingRepo, new(MockCategoryRepository), new(MockFavoriteRepository), new(MockMessageRepository), tiers)

	tiers.On("CurrentTier", uint64(1)).Return(domain.TierFree)
	listingRepo.On("CountByOwner", uint64(1)).Return(int64(0), nil)

	_, err := svc.Create(sellerPrincipal(1), &domain.CreateListingRequest{
		Title: "Riz local", Price: 15000, Type: domain.ListingTypeSell,
		Images: []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"},
	})

	assert.ErrorIs(t, err, common.ErrImageLimit)
}

func TestCreate_EnterpriseUnlimited(t *testing.T) {
	listingRepo := new(MockListingRepository)
	tiers := new(MockTierResolver)
	svc := newListingServiceForTest(listingRepo, new(MockCategoryRepository), new(MockFavoriteRepository), new(MockMessageRepository), tiers)

	tiers.On("CurrentTier", uint64(1)).Return(domain.TierEnterprise)
	listingRepo.On("CountByOwner", uint64(1)).Return(int64(5000), nil)
	listingRepo.On("Create", mock.AnythingOfType("*domain.Listing")).Return(nil)

	resp, err := svc.Create(sellerPrincipal(1), &domain.CreateListingRequest{
		Title: "Cajou brut", Price: 800000, Type: domain.ListingTypeSell,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ListingStatusActive, resp.Status)
	listingRepo.AssertExpectations(t)
}

func TestGet_OwnerViewNotCounted(t *testing.T) {
	listingRepo := new(MockListingRepository)
	favoriteRepo := new(MockFavoriteRepository)
	svc := newListingServiceForTest(listingRepo, new(MockCategoryRepository), favoriteRepo, new(MockMessageRepository), new(MockTierResolver))

	listing := &domain.Listing{ID: 10, OwnerID: 1, Status: domain.ListingStatusActive, ViewCount: 7}
	listingRepo.On("FindByID", uint64(10)).Return(listing, nil)
	favoriteRepo.On("Exists", uint64(1), uint64(10)).Return(false, nil)

	owner := sellerPrincipal(1)
	resp, err := svc.Get(10, &owner)

	assert.NoError(t, err)
	assert.Equal(t, uint(7), resp.ViewCount)
	listingRepo.AssertNotCalled(t, "IncrementViewCount", mock.Anything)
}

func TestGet_VisitorViewCounted(t *testing.T) {
	listingRepo := new(MockListingRepository)
	svc := newListingServiceForTest(listingRepo, new(MockCategoryRepository), new(MockFavoriteRepository), new(MockMessageRepository), new(MockTierResolver))

	listing := &domain.Listing{ID: 10, OwnerID: 1, Status: domain.ListingStatusActive, ViewCount: 7}
	listingRepo.On("FindByID", uint64(10)).Return(listing, nil)
	listingRepo.On("IncrementViewCount", uint64(10)).Return(nil)

	resp, err := svc.Get(10, nil)

	assert.NoError(t, err)
	assert.Equal(t, uint(8), resp.ViewCount)
	listingRepo.AssertExpectations(t)
}

func TestGet_SuspendedListingViewNotCounted(t *testing.T) {
	listingRepo := new(MockListingRepository)
	svc := newListingServiceForTest(listingRepo, new(MockCategoryRepository), new(MockFavoriteRepository), new(MockMessageRepository), new(MockTierResolver))

	listing := &domain.Listing{ID: 10, OwnerID: 1, Status: domain.ListingStatusSuspended, ViewCount: 7}
	listingRepo.On("FindByID", uint64(10)).Return(listing, nil)
	// The status guard in the UPDATE matches zero rows; the in-memory
	// count must stay put too.
	listingRepo.On("IncrementViewCount", uint64(10)).Return(nil)

	resp, err := svc.Get(10, nil)

	assert.NoError(t, err)
	assert.Equal(t, uint(7), resp.ViewCount)
}

func TestGet_CounterFailureDoesNotFailRead(t *testing.T) {
	listingRepo := new(MockListingRepository)
	svc := newListingServiceForTest(listingRepo, new(MockCategoryRepository), new(MockFavoriteRepository), new(MockMessageRepository), new(MockTierResolver))

	listing := &domain.Listing{ID: 10, OwnerID: 1, Status: domain.ListingStatusActive, ViewCount: 7}
	listingRepo.On("FindByID", uint64(10)).Return(listing, nil)
	listingRepo.On("IncrementViewCount", uint64(10)).Return(errors.New("db gone"))

	resp, err := svc.Get(10, nil)

	assert.NoError(t, err)
	assert.Equal(t, uint(7), resp.ViewCount)
}

func TestGet_NotFound(t *testing.T) {
	listingRepo := new(MockListingRepository)
	svc := newListingServiceForTest(listingRepo, new(MockCategoryRepository), new(MockFavoriteRepository), new(MockMessageRepository), new(MockTierResolver))

	listingRepo.On("FindByID", uint64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(99, nil)

	assert.ErrorIs(t, err, common.ErrListingNotFound)
}

func TestUpdate_NotOwner(t *testing.T) {
	listingRepo := new(MockListingRepository)
	svc := newListingServiceForTest(listingRepo, new(MockCategoryRepository), new(MockFavoriteRepository), new(MockMessageRepository), new(MockTierResolver))

	listingRepo.On("FindByID", uint64(10)).Return(&domain.Listing{ID: 10, OwnerID: 1}, nil)

	title := "Nouveau titre"
	err := svc.Update(sellerPrincipal(2), 10, &domain.UpdateListingRequest{Title: &title})

	assert.ErrorIs(t, err, common.ErrForbidden)
	listingRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdate_AdminBypassesOwnership(t *testing.T) {
	listingRepo := new(MockListingRepository)
	svc := newListingServiceForTest(listingRepo, new(MockCategoryRepository), new(MockFavoriteRepository), new(MockMessageRepository), new(MockTierResolver))

	listingRepo.On("FindByID", uint64(10)).Return(&domain.Listing{ID: 10, OwnerID: 1}, nil)
	listingRepo.On("Update", mock.AnythingOfType("*domain.Listing")).Return(nil)

	title := "Titre modéré"
	admin := authz.Principal{UserID: 99, Name: "Admin", Role: domain.RoleAdmin}
	err := svc.Update(admin, 10, &domain.UpdateListingRequest{Title: &title})

	assert.NoError(t, err)
	listingRepo.AssertExpectations(t)
}

func TestDelete_CascadesFavoritesAndMessages(t *testing.T) {
	listingRepo := new(MockListingRepository)
	favoriteRepo := new(MockFavoriteRepository)
	messageRepo := new(MockMessageRepository)
	svc := newListingServiceForTest(listingRepo, new(MockCategoryRepository), favoriteRepo, messageRepo, new(MockTierResolver))

	listingRepo.On("FindByID", uint64(10)).Return(&domain.Listing{ID: 10, OwnerID: 1}, nil)
	favoriteRepo.On("DeleteByListing", uint64(10)).Return(nil)
	messageRepo.On("DeleteByListing", uint64(10)).Return(nil)
	listingRepo.On("Delete", uint64(10)).Return(nil)

	err := svc.Delete(sellerPrincipal(1), 10)

	assert.NoError(t, err)
	favoriteRepo.AssertExpectations(t)
	messageRepo.AssertExpectations(t)
}

func TestFeature_FreeTierRejected(t *testing.T) {
	listingRepo := new(MockListingRepository)
	tiers := new(MockTierResolver)
	svc := newListingServiceForTest(listingRepo, new(MockCategoryRepository), new(MockFavoriteRepository), new(MockMessageRepository), tiers)

	listingRepo.On("FindByID", uint64(10)).Return(&domain.Listing{ID: 10, OwnerID: 1}, nil)
	tiers.On("CurrentTier", uint64(1)).Return(domain.TierFree)

	err := svc.Feature(sellerPrincipal(1), 10, 7)

	qe, ok := common.AsQuotaError(err)
	assert.True(t, ok)
	assert.Equal(t, 0, qe.Limit)
	assert.Equal(t, string(domain.TierPremiumBasic), qe.RequiredTier)
	listingRepo.AssertNotCalled(t, "SetFeatured", mock.Anything, mock.Anything)
}

func TestFeature_QuotaReached(t *testing.T) {
	listingRepo := new(MockListingRepository)
	tiers := new(MockTierResolver)
	svc := newListingServiceForTest(listingRepo, new(MockCategoryRepository), new(MockFavoriteRepository), new(MockMessageRepository), tiers)

	listingRepo.On("FindByID", uint64(10)).Return(&domain.Listing{ID: 10, OwnerID: 1}, nil)
	tiers.On("CurrentTier", uint64(1)).Return(domain.TierPremiumBasic)
	listingRepo.On("CountActiveFeaturedByOwner", uint64(1), mock.AnythingOfType("time.Time")).Return(int64(1), nil)

	err := svc.Feature(sellerPrincipal(1), 10, 7)

	qe, ok := common.AsQuotaError(err)
	assert.True(t, ok)
	assert.Equal(t, 1, qe.Current)
	assert.Equal(t, 1, qe.Limit)
	assert.Equal(t, string(domain.TierPremiumPro), qe.RequiredTier)
}

func TestFeature_WithinQuota(t *testing.T) {
	listingRepo := new(MockListingRepository)
	tiers := new(MockTierResolver)
	svc := newListingServiceForTest(listingRepo, new(MockCategoryRepository), new(MockFavoriteRepository), new(MockMessageRepository), tiers)

	listingRepo.On("FindByID", uint64(10)).Return(&domain.Listing{ID: 10, OwnerID: 1}, nil)
	tiers.On("CurrentTier", uint64(1)).Return(domain.TierPremiumPro)
	listingRepo.On("CountActiveFeaturedByOwner", uint64(1), mock.AnythingOfType("time.Time")).Return(int64(2), nil)
	listingRepo.On("SetFeatured", uint64(10), mock.AnythingOfType("time.Time")).Return(nil)

	err := svc.Feature(sellerPrincipal(1), 10, 7)

	assert.NoError(t, err)
	listingRepo.AssertExpectations(t)
}

func TestFeature_AlreadyFeatured(t *testing.T) {
	listingRepo := new(MockListingRepository)
	svc := newListingServiceForTest(listingRepo, new(MockCategoryRepository), new(MockFavoriteRepository), new(MockMessageRepository), new(MockTierResolver))

	until := timeInFuture()
	listingRepo.On("FindByID", uint64(10)).Return(&domain.Listing{
		ID: 10, OwnerID: 1, IsFeatured: true, FeaturedUntil: &until,
	}, nil)

	err := svc.Feature(sellerPrincipal(1), 10, 7)

	assert.ErrorIs(t, err, common.ErrAlreadyFeatured)
}

func TestSweepExpiredFeatured(t *testing.T) {
	listingRepo := new(MockListingRepository)
	svc := newListingServiceForTest(listingRepo, new(MockCategoryRepository), new(MockFavoriteRepository), new(MockMessageRepository), new(MockTierResolver))

	listingRepo.On("ClearExpiredFeatured", mock.AnythingOfType("time.Time")).Return(int64(3), nil)

	cleared, err := svc.SweepExpiredFeatured()

	assert.NoError(t, err)
	assert.Equal(t, int64(3), cleared)
}

func TestSweepExpiredFeatured_NothingToClear(t *testing.T) {
	listingRepo := new(MockListingRepository)
	svc := newListingServiceForTest(listingRepo, new(MockCategoryRepository), new(MockFavoriteRepository), new(MockMessageRepository), new(MockTierResolver))

	listingRepo.On("ClearExpiredFeatured", mock.AnythingOfType("time.Time")).Return(int64(0), nil)

	cleared, err := svc.SweepExpiredFeatured()

	assert.NoError(t, err)
	assert.Zero(t, cleared)
}

func TestSetPromotion_ComputesDiscountedPrice(t *testing.T) {
	listingRepo := new(MockListingRepository)
	svc := newListingServiceForTest(listingRepo, new(MockCategoryRepository), new(MockFavoriteRepository), new(MockMessageRepository), new(MockTierResolver))

	listingRepo.On("FindByID", uint64(10)).Return(&domain.Listing{ID: 10, OwnerID: 1, Price: 10000}, nil)
	listingRepo.On("SetPromotion", uint64(10), int64(10000), int64(8000), 20, mock.AnythingOfType("time.Time")).Return(nil)

	err := svc.SetPromotion(sellerPrincipal(1), 10, &domain.PromotionRequest{DiscountPercent: 20, Days: 7})

	assert.NoError(t, err)
	listingRepo.AssertExpectations(t)
}

func TestSetPromotion_RestacksFromOriginalPrice(t *testing.T) {
	listingRepo := new(MockListingRepository)
	svc := newListingServiceForTest(listingRepo, new(MockCategoryRepository), new(MockFavoriteRepository), new(MockMessageRepository), new(MockTierResolver))

	original := int64(10000)
	listingRepo.On("FindByID", uint64(10)).Return(&domain.Listing{
		ID: 10, OwnerID: 1, Price: 8000, OriginalPrice: &original,
	}, nil)
	listingRepo.On("SetPromotion", uint64(10), int64(10000), int64(7000), 30, mock.AnythingOfType("time.Time")).Return(nil)

	err := svc.SetPromotion(sellerPrincipal(1), 10, &domain.PromotionRequest{DiscountPercent: 30, Days: 7})

	assert.NoError(t, err)
	listingRepo.AssertExpectations(t)
}
