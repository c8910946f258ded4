package service

import (
	"context"
	"time"

	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/internal/gateway"
	"github.com/agrobissau/agrobissau-backend/internal/repository"
	"github.com/stretchr/testify/mock"
)

// MockListingRepository is a mock implementation of ListingRepository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(listing *domain.Listing) error {
	args := m.Called(listing)
	return args.Error(0)
}

func (m *MockListingRepository) FindByID(id uint64) (*domain.Listing, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingRepository) Update(listing *domain.Listing) error {
	args := m.Called(listing)
	return args.Error(0)
}

func (m *MockListingRepository) Delete(id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockListingRepository) List(params *repository.ListingListParams) ([]*domain.Listing, int64, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Listing), args.Get(1).(int64), args.Error(2)
}

func (m *MockListingRepository) ListByOwner(ownerID uint64, page, limit int) ([]*domain.Listing, int64, error) {
	args := m.Called(ownerID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Listing), args.Get(1).(int64), args.Error(2)
}

func (m *MockListingRepository) UpdateStatus(id uint64, status domain.ListingStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockListingRepository) CountByOwner(ownerID uint64) (int64, error) {
	args := m.Called(ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) IncrementViewCount(id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockListingRepository) IncrementContactCount(id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockListingRepository) SetFeatured(id uint64, until time.Time) error {
	args := m.Called(id, until)
	return args.Error(0)
}

func (m *MockListingRepository) ClearFeatured(id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockListingRepository) CountActiveFeaturedByOwner(ownerID uint64, now time.Time) (int64, error) {
	args := m.Called(ownerID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) ClearExpiredFeatured(now time.Time) (int64, error) {
	args := m.Called(now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) SetPromotion(id uint64, originalPrice int64, newPrice int64, discount int, until time.Time) error {
	args := m.Called(id, originalPrice, newPrice, discount, until)
	return args.Error(0)
}

func (m *MockListingRepository) ClearPromotion(id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockListingRepository) SumViewsByOwner(ownerID uint64) (int64, error) {
	args := m.Called(ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) SumContactsByOwner(ownerID uint64) (int64, error) {
	args := m.Called(ownerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindAll() ([]*domain.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByID(id uint64) (*domain.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(slug string) (*domain.Category, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) IncrementListingCount(id uint64, delta int) error {
	args := m.Called(id, delta)
	return args.Error(0)
}

// MockFavoriteRepository is a mock implementation of FavoriteRepository
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Create(favorite *domain.Favorite) error {
	args := m.Called(favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Delete(userID, listingID uint64) (int64, error) {
	args := m.Called(userID, listingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFavoriteRepository) Exists(userID, listingID uint64) (bool, error) {
	args := m.Called(userID, listingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) ListByUser(userID uint64, page, limit int) ([]*domain.Favorite, int64, error) {
	args := m.Called(userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Favorite), args.Get(1).(int64), args.Error(2)
}

func (m *MockFavoriteRepository) FavoritedIDs(userID uint64, listingIDs []uint64) (map[uint64]bool, error) {
	args := m.Called(userID, listingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint64]bool), args.Error(1)
}

func (m *MockFavoriteRepository) DeleteByListing(listingID uint64) error {
	args := m.Called(listingID)
	return args.Error(0)
}

// MockMessageRepository is a mock implementation of MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(message *domain.Message) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockMessageRepository) ExistsBetween(userA, userB, listingID uint64) (bool, error) {
	args := m.Called(userA, userB, listingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMessageRepository) FindConversation(userID, peerID uint64, listingID *uint64, page, limit int) ([]*domain.Message, int64, error) {
	args := m.Called(userID, peerID, listingID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Message), args.Get(1).(int64), args.Error(2)
}

func (m *MockMessageRepository) ListConversations(userID uint64) ([]*domain.ConversationSummary, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ConversationSummary), args.Error(1)
}

func (m *MockMessageRepository) MarkConversationRead(userID, peerID uint64, listingID *uint64) error {
	args := m.Called(userID, peerID, listingID)
	return args.Error(0)
}

func (m *MockMessageRepository) CountUnread(userID uint64) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) DeleteByListing(listingID uint64) error {
	args := m.Called(listingID)
	return args.Error(0)
}

// MockReviewRepository is a mock implementation of ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *domain.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(id uint64) (*domain.Review, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) Exists(reviewerID, reviewedID uint64, listingID *uint64) (bool, error) {
	args := m.Called(reviewerID, reviewedID, listingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) ListByReviewed(reviewedID uint64, page, limit int) ([]*domain.Review, int64, error) {
	args := m.Called(reviewedID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) AverageRating(reviewedID uint64) (float64, error) {
	args := m.Called(reviewedID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockReviewRepository) Delete(id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockReviewRepository) CountFiveStar(reviewedID uint64) (int64, error) {
	args := m.Called(reviewedID)
	return args.Get(0).(int64), args.Error(1)
}

// MockBadgeRepository is a mock implementation of BadgeRepository
type MockBadgeRepository struct {
	mock.Mock
}

func (m *MockBadgeRepository) FindAll() ([]*domain.Badge, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Badge), args.Error(1)
}

func (m *MockBadgeRepository) GrantedBadgeIDs(userID uint64) (map[uint64]bool, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint64]bool), args.Error(1)
}

func (m *MockBadgeRepository) Grant(grant *domain.UserBadge) error {
	args := m.Called(grant)
	return args.Error(0)
}

func (m *MockBadgeRepository) ListByUser(userID uint64) ([]*domain.UserBadge, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserBadge), args.Error(1)
}

// MockReportRepository is a mock implementation of ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(report *domain.Report) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *MockReportRepository) FindByID(id uint64) (*domain.Report, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepository) CountByReporterSince(reporterID uint64, since time.Time) (int64, error) {
	args := m.Called(reporterID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) List(status domain.ReportStatus, page, limit int) ([]*domain.Report, int64, error) {
	args := m.Called(status, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Report), args.Get(1).(int64), args.Error(2)
}

func (m *MockReportRepository) UpdateStatus(id uint64, status domain.ReportStatus, resolvedBy uint64) error {
	args := m.Called(id, status, resolvedBy)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id uint64) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*domain.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(subscription *domain.Subscription) error {
	args := m.Called(subscription)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) FindCurrentByUser(userID uint64, now time.Time) (*domain.Subscription, error) {
	args := m.Called(userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ExpireByUser(userID uint64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) ExpireOutdated(now time.Time) (int64, error) {
	args := m.Called(now)
	return args.Get(0).(int64), args.Error(1)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(transaction *domain.Transaction) error {
	args := m.Called(transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindByID(id uint64) (*domain.Transaction, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByReference(reference string) (*domain.Transaction, error) {
	args := m.Called(reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Update(transaction *domain.Transaction) error {
	args := m.Called(transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByUser(userID uint64, page, limit int) ([]*domain.Transaction, int64, error) {
	args := m.Called(userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Transaction), args.Get(1).(int64), args.Error(2)
}

// MockShortURLRepository is a mock implementation of ShortURLRepository
type MockShortURLRepository struct {
	mock.Mock
}

func (m *MockShortURLRepository) Create(shortURL *domain.ShortURL) error {
	args := m.Called(shortURL)
	return args.Error(0)
}

func (m *MockShortURLRepository) FindByCode(code string) (*domain.ShortURL, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockShortURLRepository) IncrementHitCount(id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(userID uint64, notifType domain.NotificationType, title, message string, relatedType string, relatedID *uint64) error {
	args := m.Called(userID, notifType, title, message, relatedType, relatedID)
	return args.Error(0)
}

// MockTierResolver is a mock implementation of TierResolver
type MockTierResolver struct {
	mock.Mock
}

func (m *MockTierResolver) CurrentTier(userID uint64) domain.SubscriptionTier {
	args := m.Called(userID)
	return args.Get(0).(domain.SubscriptionTier)
}

// MockPaymentGateway is a mock implementation of gateway.PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Provider() domain.PaymentMethod {
	args := m.Called()
	return args.Get(0).(domain.PaymentMethod)
}

func (m *MockPaymentGateway) Prepare(ctx context.Context, req *gateway.PrepareRequest) (*gateway.PrepareResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.PrepareResponse), args.Error(1)
}

func (m *MockPaymentGateway) Verify(ctx context.Context, externalRef string, amount int64) error {
	args := m.Called(ctx, externalRef, amount)
	return args.Error(0)
}

func (m *MockPaymentGateway) ParseCallback(payload []byte) (*gateway.CallbackResult, error) {
	args := m.Called(payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.CallbackResult), args.Error(1)
}
