package service

import (
	"fmt"

	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/internal/repository"
)

// BadgeService evaluates badge criteria and manages grants
type BadgeService interface {
	// Evaluate recomputes the user's aggregate stats and grants every
	// not-yet-granted badge whose threshold is now met. A grant is
	// permanent: regressing stats never revoke it, and the unique
	// index on (user, badge) makes re-evaluation a no-op.
	Evaluate(userID uint64) ([]*domain.Badge, error)
	ListUserBadges(userID uint64) ([]*domain.UserBadge, error)
	ListBadges() ([]*domain.Badge, error)
}

type badgeService struct {
	badgeRepo   repository.BadgeRepository
	listingRepo repository.ListingRepository
	reviewRepo  repository.ReviewRepository
	notifier    Notifier
}

// NewBadgeService creates a new BadgeService
func NewBadgeService(
	badgeRepo repository.BadgeRepository,
	listingRepo repository.ListingRepository,
	reviewRepo repository.ReviewRepository,
	notifier Notifier,
) BadgeService {
	return &badgeService{
		badgeRepo:   badgeRepo,
		listingRepo: listingRepo,
		reviewRepo:  reviewRepo,
		notifier:    notifier,
	}
}

func (s *badgeService) Evaluate(userID uint64) ([]*domain.Badge, error) {
	stats, err := s.computeStats(userID)
	if err != nil {
		return nil, err
	}

	badges, err := s.badgeRepo.FindAll()
	if err != nil {
		return nil, err
	}

	granted, err := s.badgeRepo.GrantedBadgeIDs(userID)
	if err != nil {
		return nil, err
	}

	// Several thresholds can be crossed in one pass, e.g. a user
	// jumping from 0 to 60 views.
	var newlyGranted []*domain.Badge
	for _, badge := range badges {
		if granted[badge.ID] {
			continue
		}
		if stats.StatFor(badge.Criterion) < badge.Threshold {
			continue
		}

		if err := s.badgeRepo.Grant(&domain.UserBadge{
			UserID:  userID,
			BadgeID: badge.ID,
		}); err != nil {
			// Duplicate grant under concurrent evaluation is fine,
			// the unique index keeps it single.
			continue
		}
		newlyGranted = append(newlyGranted, badge)

		badgeID := badge.ID
		if err := s.notifier.Notify(userID, domain.NotifBadge,
			"Nouveau badge obtenu !",
			fmt.Sprintf("Félicitations, vous avez obtenu le badge « %s ».", badge.Name),
			"badge", &badgeID); err != nil {
			// Grant stands even when the notification fails.
			continue
		}
	}

	return newlyGranted, nil
}

func (s *badgeService) computeStats(userID uint64) (domain.UserStats, error) {
	var stats domain.UserStats
	var err error

	if stats.ListingCount, err = s.listingRepo.CountByOwner(userID); err != nil {
		return stats, err
	}
	if stats.TotalViews, err = s.listingRepo.SumViewsByOwner(userID); err != nil {
		return stats, err
	}
	if stats.ContactsReceived, err = s.listingRepo.SumContactsByOwner(userID); err != nil {
		return stats, err
	}
	if stats.FiveStarReviews, err = s.reviewRepo.CountFiveStar(userID); err != nil {
		return stats, err
	}
	return stats, nil
}

func (s *badgeService) ListUserBadges(userID uint64) ([]*domain.UserBadge, error) {
	return s.badgeRepo.ListByUser(userID)
}

func (s *badgeService) ListBadges() ([]*domain.Badge, error) {
	return s.badgeRepo.FindAll()
}
