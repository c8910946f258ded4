package service

import (
	"context"
	"fmt"

	"github.com/agrobissau/agrobissau-backend/internal/authz"
	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/internal/repository"
	"github.com/agrobissau/agrobissau-backend/internal/worker"
	"github.com/rs/zerolog"
)

// ContactService conversation initiation and messaging
type ContactService interface {
	// Contact opens a conversation between the caller and a listing's
	// owner. On first contact it creates a templated opening message
	// and bumps the listing's contact counter exactly once; later
	// contacts just report the existing conversation.
	Contact(p authz.Principal, listingID uint64, req *domain.ContactRequest) (*domain.ContactResponse, error)
	Send(p authz.Principal, req *domain.SendMessageRequest) (*domain.Message, error)
	Conversations(p authz.Principal) ([]*domain.ConversationSummary, error)
	Thread(p authz.Principal, peerID uint64, listingID *uint64, page, limit int) ([]*domain.Message, *common.Meta, error)
	UnreadCount(p authz.Principal) (int64, error)
}

type contactService struct {
	messageRepo repository.MessageRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	badges      BadgeService
	notifier    Notifier
	outbox      *worker.Outbox
	logger      zerolog.Logger
}

// NewContactService creates a new ContactService
func NewContactService(
	messageRepo repository.MessageRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	badges BadgeService,
	notifier Notifier,
	outbox *worker.Outbox,
	logger zerolog.Logger,
) ContactService {
	return &contactService{
		messageRepo: messageRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		badges:      badges,
		notifier:    notifier,
		outbox:      outbox,
		logger:      logger,
	}
}

func (s *contactService) Contact(p authz.Principal, listingID uint64, req *domain.ContactRequest) (*domain.ContactResponse, error) {
	listing, err := s.listingRepo.FindByID(listingID)
	if err != nil {
		return nil, common.ErrListingNotFound
	}
	if listing.OwnerID == p.UserID {
		return nil, common.ErrSelfContact
	}
	if !listing.IsActive() {
		return nil, common.ErrListingNotActive
	}

	// First-contact dedup is a pre-check, not a constraint: two
	// concurrent first contacts can both pass. Accepted tolerance.
	exists, err := s.messageRepo.ExistsBetween(p.UserID, listing.OwnerID, listingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return &domain.ContactResponse{Existing: true}, nil
	}

	content := req.Message
	if content == "" {
		content = fmt.Sprintf("Bonjour, je suis intéressé(e) par votre annonce « %s ». Est-elle toujours disponible ?", listing.Title)
	}

	message := &domain.Message{
		SenderID:   p.UserID,
		ReceiverID: listing.OwnerID,
		ListingID:  &listingID,
		Content:    content,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	// Best-effort: a failed counter update never fails the contact.
	if err := s.listingRepo.IncrementContactCount(listingID); err != nil {
		s.logger.Warn().Err(err).Uint64("listing_id", listingID).Msg("contact count update failed")
	}

	ownerID := listing.OwnerID
	senderName := p.Name
	listingTitle := listing.Title
	s.outbox.Enqueue(worker.Job{
		Name: "contact-notify",
		Run: func(ctx context.Context) error {
			return s.notifier.Notify(ownerID, domain.NotifContact,
				"Nouveau contact",
				fmt.Sprintf("%s est intéressé(e) par votre annonce « %s ».", senderName, listingTitle),
				"listing", &listingID)
		},
	})
	s.outbox.Enqueue(worker.Job{
		Name: "contact-badge-eval",
		Run: func(ctx context.Context) error {
			_, err := s.badges.Evaluate(ownerID)
			return err
		},
	})

	return &domain.ContactResponse{Existing: false, Message: message}, nil
}

func (s *contactService) Send(p authz.Principal, req *domain.SendMessageRequest) (*domain.Message, error) {
	if req.ReceiverID == p.UserID {
		return nil, common.ErrSelfContact
	}
	if _, err := s.userRepo.FindByID(req.ReceiverID); err != nil {
		return nil, common.ErrUserNotFound
	}
	if req.ListingID != nil {
		if _, err := s.listingRepo.FindByID(*req.ListingID); err != nil {
			return nil, common.ErrListingNotFound
		}
	}

	message := &domain.Message{
		SenderID:   p.UserID,
		ReceiverID: req.ReceiverID,
		ListingID:  req.ListingID,
		Content:    req.Content,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	receiverID := req.ReceiverID
	senderName := p.Name
	s.outbox.Enqueue(worker.Job{
		Name: "message-notify",
		Run: func(ctx context.Context) error {
			return s.notifier.Notify(receiverID, domain.NotifMessage,
				"Nouveau message",
				fmt.Sprintf("Vous avez reçu un message de %s.", senderName),
				"message", &message.ID)
		},
	})

	return message, nil
}

func (s *contactService) Conversations(p authz.Principal) ([]*domain.ConversationSummary, error) {
	return s.messageRepo.ListConversations(p.UserID)
}

func (s *contactService) Thread(p authz.Principal, peerID uint64, listingID *uint64, page, limit int) ([]*domain.Message, *common.Meta, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}

	messages, total, err := s.messageRepo.FindConversation(p.UserID, peerID, listingID, page, limit)
	if err != nil {
		return nil, nil, err
	}

	// Opening a thread marks received messages read; best-effort.
	if err := s.messageRepo.MarkConversationRead(p.UserID, peerID, listingID); err != nil {
		s.logger.Warn().Err(err).Msg("mark conversation read failed")
	}

	return messages, common.NewMeta(page, limit, total), nil
}

func (s *contactService) UnreadCount(p authz.Principal) (int64, error) {
	return s.messageRepo.CountUnread(p.UserID)
}
