package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agrobissau/agrobissau-backend/internal/authz"
	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/internal/gateway"
	"github.com/agrobissau/agrobissau-backend/internal/repository"
	"github.com/agrobissau/agrobissau-backend/internal/worker"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// subscriptionDays length of one paid subscription window
const subscriptionDays = 30

// SubscriptionService paid tiers and their payment flow
type SubscriptionService interface {
	TierResolver
	Current(userID uint64) (*domain.Subscription, error)
	Subscribe(ctx context.Context, p authz.Principal, req *domain.SubscribeRequest) (*domain.SubscribeResponse, error)
	// HandleCallback processes a gateway webhook. Replayed callbacks
	// for an already-final transaction are a no-op.
	HandleCallback(ctx context.Context, method domain.PaymentMethod, payload []byte) error
	ListTransactions(p authz.Principal, page, limit int) ([]*domain.Transaction, *common.Meta, error)
	// SweepExpired bulk-expires lapsed subscription windows.
	SweepExpired() (int64, error)
}

type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	transactionRepo  repository.TransactionRepository
	gateways         map[domain.PaymentMethod]gateway.PaymentGateway
	notifier         Notifier
	outbox           *worker.Outbox
	callbackBaseURL  string
	logger           zerolog.Logger
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(
	subscriptionRepo repository.SubscriptionRepository,
	transactionRepo repository.TransactionRepository,
	gateways map[domain.PaymentMethod]gateway.PaymentGateway,
	notifier Notifier,
	outbox *worker.Outbox,
	callbackBaseURL string,
	logger zerolog.Logger,
) SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		transactionRepo:  transactionRepo,
		gateways:         gateways,
		notifier:         notifier,
		outbox:           outbox,
		callbackBaseURL:  callbackBaseURL,
		logger:           logger,
	}
}

// CurrentTier implements TierResolver; no active subscription means FREE.
func (s *subscriptionService) CurrentTier(userID uint64) domain.SubscriptionTier {
	sub, err := s.subscriptionRepo.FindCurrentByUser(userID, time.Now())
	if err != nil {
		return domain.TierFree
	}
	return sub.Tier
}

// Current returns the active subscription, or nil when the user is on
// the FREE tier. Absence is not an error.
func (s *subscriptionService) Current(userID uint64) (*domain.Subscription, error) {
	sub, err := s.subscriptionRepo.FindCurrentByUser(userID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) Subscribe(ctx context.Context, p authz.Principal, req *domain.SubscribeRequest) (*domain.SubscribeResponse, error) {
	price, ok := PriceFor(req.Tier)
	if !ok {
		return nil, common.ErrInvalidInput
	}

	gw, ok := s.gateways[req.Method]
	if !ok {
		return nil, common.ErrInvalidInput
	}

	reference := fmt.Sprintf("SUB-%s", uuid.NewString())
	tx := &domain.Transaction{
		UserID:    p.UserID,
		Amount:    price,
		Currency:  "XOF",
		Method:    req.Method,
		Status:    domain.TransactionPending,
		Reference: reference,
		Tier:      req.Tier,
	}
	if err := s.transactionRepo.Create(tx); err != nil {
		return nil, err
	}

	prepared, err := gw.Prepare(ctx, &gateway.PrepareRequest{
		Reference:   reference,
		Amount:      price,
		Currency:    "XOF",
		Description: fmt.Sprintf("Abonnement AgroBissau %s", req.Tier),
		Phone:       req.Phone,
		ReturnURL:   s.callbackBaseURL + "/payments/return",
		CancelURL:   s.callbackBaseURL + "/payments/cancel",
		NotifyURL:   fmt.Sprintf("%s/api/v1/payments/callback/%s", s.callbackBaseURL, methodSlug(req.Method)),
	})
	if err != nil {
		tx.Status = domain.TransactionFailed
		if updateErr := s.transactionRepo.Update(tx); updateErr != nil {
			s.logger.Error().Err(updateErr).Str("reference", reference).Msg("transaction fail-mark failed")
		}
		return nil, common.ErrPaymentFailed
	}

	tx.ExternalRef = prepared.ExternalRef
	if err := s.transactionRepo.Update(tx); err != nil {
		return nil, err
	}

	return &domain.SubscribeResponse{
		TransactionID: tx.ID,
		Reference:     reference,
		RedirectURL:   prepared.RedirectURL,
	}, nil
}

func (s *subscriptionService) HandleCallback(ctx context.Context, method domain.PaymentMethod, payload []byte) error {
	gw, ok := s.gateways[method]
	if !ok {
		return common.ErrInvalidInput
	}

	result, err := gw.ParseCallback(payload)
	if err != nil {
		return common.ErrInvalidInput
	}

	tx, err := s.transactionRepo.FindByReference(result.Reference)
	if err != nil {
		return common.ErrTransactionNotFound
	}

	// Idempotency: a replayed callback for a settled transaction
	// changes nothing.
	if tx.Status != domain.TransactionPending {
		return nil
	}

	tx.Payload = result.RawPayload
	if result.ExternalRef != "" {
		tx.ExternalRef = result.ExternalRef
	}

	if result.Status != domain.TransactionSuccess {
		tx.Status = domain.TransactionFailed
		return s.transactionRepo.Update(tx)
	}

	// Confirm with the provider before activating anything; transient
	// upstream failures are retried with doubling delays.
	if err := gateway.VerifyWithBackoff(ctx, gw, tx.ExternalRef, tx.Amount); err != nil {
		s.logger.Error().Err(err).Str("reference", tx.Reference).Msg("payment verification failed")
		tx.Status = domain.TransactionFailed
		return s.transactionRepo.Update(tx)
	}

	tx.Status = domain.TransactionSuccess
	if err := s.transactionRepo.Update(tx); err != nil {
		return err
	}

	return s.activate(tx)
}

// activate replaces the user's current subscription with the paid tier.
func (s *subscriptionService) activate(tx *domain.Transaction) error {
	if err := s.subscriptionRepo.ExpireByUser(tx.UserID); err != nil {
		return err
	}

	now := time.Now()
	txID := tx.ID
	sub := &domain.Subscription{
		UserID:        tx.UserID,
		Tier:          tx.Tier,
		Status:        domain.SubscriptionActive,
		StartsAt:      now,
		EndsAt:        now.AddDate(0, 0, subscriptionDays),
		TransactionID: &txID,
	}
	if err := s.subscriptionRepo.Create(sub); err != nil {
		return err
	}

	userID := tx.UserID
	tier := tx.Tier
	s.outbox.Enqueue(worker.Job{
		Name: "subscription-notify",
		Run: func(ctx context.Context) error {
			return s.notifier.Notify(userID, domain.NotifSubscription,
				"Abonnement activé",
				fmt.Sprintf("Votre abonnement %s est actif pour %d jours.", tier, subscriptionDays),
				"subscription", &sub.ID)
		},
	})

	return nil
}

func (s *subscriptionService) ListTransactions(p authz.Principal, page, limit int) ([]*domain.Transaction, *common.Meta, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	transactions, total, err := s.transactionRepo.ListByUser(p.UserID, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return transactions, common.NewMeta(page, limit, total), nil
}

func (s *subscriptionService) SweepExpired() (int64, error) {
	expired, err := s.subscriptionRepo.ExpireOutdated(time.Now())
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		s.logger.Info().Int64("expired", expired).Msg("subscription expiry sweep")
	}
	return expired, nil
}

func methodSlug(method domain.PaymentMethod) string {
	switch method {
	case domain.PaymentOrangeMoney:
		return "orange-money"
	case domain.PaymentWave:
		return "wave"
	default:
		return "unknown"
	}
}
