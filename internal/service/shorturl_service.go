package service

import (
	"crypto/sha256"

	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	shortCodeLength   = 8
	shortCodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	shortCodeRetries  = 3
)

// ShortURLService share links for listings
type ShortURLService interface {
	Create(req *domain.CreateShortURLRequest) (*domain.ShortURL, error)
	// Resolve looks up a code and counts the hit.
	Resolve(code string) (*domain.ShortURL, error)
}

type shortURLService struct {
	repo   repository.ShortURLRepository
	logger zerolog.Logger
}

// NewShortURLService creates a new ShortURLService
func NewShortURLService(repo repository.ShortURLRepository, logger zerolog.Logger) ShortURLService {
	return &shortURLService{repo: repo, logger: logger}
}

func (s *shortURLService) Create(req *domain.CreateShortURLRequest) (*domain.ShortURL, error) {
	// Fresh UUID entropy per attempt; a duplicate code just means
	// another roll.
	for attempt := 0; attempt < shortCodeRetries; attempt++ {
		shortURL := &domain.ShortURL{
			Code:      generateShortCode(),
			TargetURL: req.TargetURL,
			ListingID: req.ListingID,
		}
		err := s.repo.Create(shortURL)
		if err == nil {
			return shortURL, nil
		}
		if !isDuplicateKey(err) {
			return nil, err
		}
	}
	return nil, common.ErrConflict
}

func (s *shortURLService) Resolve(code string) (*domain.ShortURL, error) {
	shortURL, err := s.repo.FindByCode(code)
	if err != nil {
		return nil, common.ErrNotFound
	}

	if err := s.repo.IncrementHitCount(shortURL.ID); err != nil {
		s.logger.Warn().Err(err).Str("code", code).Msg("short url hit count update failed")
	}

	return shortURL, nil
}

// generateShortCode derives a base62 code from UUID entropy
func generateShortCode() string {
	sum := sha256.Sum256([]byte(uuid.NewString()))
	code := make([]byte, shortCodeLength)
	for i := 0; i < shortCodeLength; i++ {
		code[i] = shortCodeAlphabet[int(sum[i])%len(shortCodeAlphabet)]
	}
	return string(code)
}
