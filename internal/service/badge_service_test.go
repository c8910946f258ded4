package service

import (
	"errors"
	"testing"

	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func badgeFixtures() []*domain.Badge {
	return []*domain.Badge{
		{ID: 1, Name: "Premier pas", Criterion: domain.CriterionListingsPosted, Threshold: 1},
		{ID: 2, Name: "Vendeur actif", Criterion: domain.CriterionListingsPosted, Threshold: 10},
		{ID: 3, Name: "Visible", Criterion: domain.CriterionTotalViews, Threshold: 100},
		{ID: 4, Name: "Apprécié", Criterion: domain.CriterionFiveStarReviews, Threshold: 5},
	}
}

func setStats(listingRepo *MockListingRepository, reviewRepo *MockReviewRepository, userID uint64, listings, views, contacts, fiveStar int64) {
	listingRepo.On("CountByOwner", userID).Return(listings, nil)
	listingRepo.On("SumViewsByOwner", userID).Return(views, nil)
	listingRepo.On("SumContactsByOwner", userID).Return(contacts, nil)
	reviewRepo.On("CountFiveStar", userID).Return(fiveStar, nil)
}

func TestBadgeEvaluate_GrantsNewlySatisfied(t *testing.T) {
	badgeRepo := new(MockBadgeRepository)
	listingRepo := new(MockListingRepository)
	reviewRepo := new(MockReviewRepository)
	notifier := new(MockNotifier)
	svc := NewBadgeService(badgeRepo, listingRepo, reviewRepo, notifier)

	setStats(listingRepo, reviewRepo, 1, 12, 50, 3, 0)
	badgeRepo.On("FindAll").Return(badgeFixtures(), nil)
	badgeRepo.On("GrantedBadgeIDs", uint64(1)).Return(map[uint64]bool{1: true}, nil)
	badgeRepo.On("Grant", mock.AnythingOfType("*domain.UserBadge")).Return(nil)
	notifier.On("Notify", uint64(1), domain.NotifBadge, mock.Anything, mock.Anything, "badge", mock.Anything).Return(nil)

	granted, err := svc.Evaluate(1)

	assert.NoError(t, err)
	// 12 listings satisfies badge 2; badge 1 is already held, views
	// and reviews are below threshold.
	assert.Len(t, granted, 1)
	assert.Equal(t, uint64(2), granted[0].ID)
	badgeRepo.AssertNumberOfCalls(t, "Grant", 1)
}

func TestBadgeEvaluate_MultipleThresholdsInOnePass(t *testing.T) {
	badgeRepo := new(MockBadgeRepository)
	listingRepo := new(MockListingRepository)
	reviewRepo := new(MockReviewRepository)
	notifier := new(MockNotifier)
	svc := NewBadgeService(badgeRepo, listingRepo, reviewRepo, notifier)

	setStats(listingRepo, reviewRepo, 1, 15, 200, 0, 6)
	badgeRepo.On("FindAll").Return(badgeFixtures(), nil)
	badgeRepo.On("GrantedBadgeIDs", uint64(1)).Return(map[uint64]bool{}, nil)
	badgeRepo.On("Grant", mock.AnythingOfType("*domain.UserBadge")).Return(nil)
	notifier.On("Notify", uint64(1), domain.NotifBadge, mock.Anything, mock.Anything, "badge", mock.Anything).Return(nil)

	granted, err := svc.Evaluate(1)

	assert.NoError(t, err)
	assert.Len(t, granted, 4)
}

func TestBadgeEvaluate_Monotonic(t *testing.T) {
	badgeRepo := new(MockBadgeRepository)
	listingRepo := new(MockListingRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewBadgeService(badgeRepo, listingRepo, reviewRepo, new(MockNotifier))

	// Stats dropped below every threshold, yet held badges stay held:
	// nothing is granted and nothing is revoked.
	setStats(listingRepo, reviewRepo, 1, 0, 0, 0, 0)
	badgeRepo.On("FindAll").Return(badgeFixtures(), nil)
	badgeRepo.On("GrantedBadgeIDs", uint64(1)).Return(map[uint64]bool{1: true, 2: true}, nil)

	granted, err := svc.Evaluate(1)

	assert.NoError(t, err)
	assert.Empty(t, granted)
	badgeRepo.AssertNotCalled(t, "Grant", mock.Anything)
}

func TestBadgeEvaluate_ConcurrentGrantTolerated(t *testing.T) {
	badgeRepo := new(MockBadgeRepository)
	listingRepo := new(MockListingRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewBadgeService(badgeRepo, listingRepo, reviewRepo, new(MockNotifier))

	setStats(listingRepo, reviewRepo, 1, 1, 0, 0, 0)
	badgeRepo.On("FindAll").Return(badgeFixtures(), nil)
	badgeRepo.On("GrantedBadgeIDs", uint64(1)).Return(map[uint64]bool{}, nil)
	badgeRepo.On("Grant", mock.AnythingOfType("*domain.UserBadge")).Return(errors.New("Duplicate entry '1-1' for key 'idx_user_badge'"))

	granted, err := svc.Evaluate(1)

	assert.NoError(t, err)
	assert.Empty(t, granted)
}

func TestBadgeEvaluate_NotificationFailureKeepsGrant(t *testing.T) {
	badgeRepo := new(MockBadgeRepository)
	listingRepo := new(MockListingRepository)
	reviewRepo := new(MockReviewRepository)
	notifier := new(MockNotifier)
	svc := NewBadgeService(badgeRepo, listingRepo, reviewRepo, notifier)

	setStats(listingRepo, reviewRepo, 1, 1, 0, 0, 0)
	badgeRepo.On("FindAll").Return(badgeFixtures(), nil)
	badgeRepo.On("GrantedBadgeIDs", uint64(1)).Return(map[uint64]bool{}, nil)
	badgeRepo.On("Grant", mock.AnythingOfType("*domain.UserBadge")).Return(nil)
	notifier.On("Notify", uint64(1), domain.NotifBadge, mock.Anything, mock.Anything, "badge", mock.Anything).Return(errors.New("notify down"))

	_, err := svc.Evaluate(1)

	assert.NoError(t, err)
	badgeRepo.AssertNumberOfCalls(t, "Grant", 1)
}
