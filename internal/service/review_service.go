package service

import (
	"context"
	"fmt"

	"github.com/agrobissau/agrobissau-backend/internal/authz"
	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/internal/repository"
	"github.com/agrobissau/agrobissau-backend/internal/worker"
)

// ReviewService seller reviews. There is no update path: a changed
// opinion is delete-then-recreate.
type ReviewService interface {
	Create(p authz.Principal, req *domain.CreateReviewRequest) (*domain.Review, error)
	ListByUser(reviewedID uint64, page, limit int) (*domain.ReviewListResponse, *common.Meta, error)
	Delete(p authz.Principal, id uint64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
	badges     BadgeService
	notifier   Notifier
	outbox     *worker.Outbox
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	userRepo repository.UserRepository,
	badges BadgeService,
	notifier Notifier,
	outbox *worker.Outbox,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		badges:     badges,
		notifier:   notifier,
		outbox:     outbox,
	}
}

func (s *reviewService) Create(p authz.Principal, req *domain.CreateReviewRequest) (*domain.Review, error) {
	if req.ReviewedID == p.UserID {
		return nil, common.ErrSelfReview
	}
	if _, err := s.userRepo.FindByID(req.ReviewedID); err != nil {
		return nil, common.ErrUserNotFound
	}

	exists, err := s.reviewRepo.Exists(p.UserID, req.ReviewedID, req.ListingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrReviewExists
	}

	review := &domain.Review{
		ReviewerID: p.UserID,
		ReviewedID: req.ReviewedID,
		ListingID:  req.ListingID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if isDuplicateKey(err) {
			return nil, common.ErrReviewExists
		}
		return nil, err
	}

	reviewedID := req.ReviewedID
	reviewerName := p.Name
	rating := req.Rating
	s.outbox.Enqueue(worker.Job{
		Name: "review-notify",
		Run: func(ctx context.Context) error {
			return s.notifier.Notify(reviewedID, domain.NotifReview,
				"Nouvel avis reçu",
				fmt.Sprintf("%s vous a laissé un avis (%d/5).", reviewerName, rating),
				"review", &review.ID)
		},
	})
	s.outbox.Enqueue(worker.Job{
		Name: "review-badge-eval",
		Run: func(ctx context.Context) error {
			_, err := s.badges.Evaluate(reviewedID)
			return err
		},
	})

	return review, nil
}

func (s *reviewService) ListByUser(reviewedID uint64, page, limit int) (*domain.ReviewListResponse, *common.Meta, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	reviews, total, err := s.reviewRepo.ListByReviewed(reviewedID, page, limit)
	if err != nil {
		return nil, nil, err
	}

	avg, err := s.reviewRepo.AverageRating(reviewedID)
	if err != nil {
		return nil, nil, err
	}

	return &domain.ReviewListResponse{
		Reviews:       reviews,
		AverageRating: avg,
		Total:         total,
	}, common.NewMeta(page, limit, total), nil
}

func (s *reviewService) Delete(p authz.Principal, id uint64) error {
	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		return common.ErrNotFound
	}
	if !authz.Allow(p, authz.ActionDelete, review.ReviewerID) {
		return common.ErrForbidden
	}
	return s.reviewRepo.Delete(id)
}
