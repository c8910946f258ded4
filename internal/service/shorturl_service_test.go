package service

import (
	"errors"
	"testing"

	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestShortURLCreate_Success(t *testing.T) {
	repo := new(MockShortURLRepository)
	svc := NewShortURLService(repo, zerolog.Nop())

	repo.On("Create", mock.AnythingOfType("*domain.ShortURL")).Return(nil)

	shortURL, err := svc.Create(&domain.CreateShortURLRequest{TargetURL: "https://agrobissau.gw/listings/10"})

	assert.NoError(t, err)
	assert.Len(t, shortURL.Code, 8)
	assert.Equal(t, "https://agrobissau.gw/listings/10", shortURL.TargetURL)
}

func TestShortURLCreate_RetriesOnCodeCollision(t *testing.T) {
	repo := new(MockShortURLRepository)
	svc := NewShortURLService(repo, zerolog.Nop())

	repo.On("Create", mock.AnythingOfType("*domain.ShortURL")).Return(gorm.ErrDuplicatedKey).Once()
	repo.On("Create", mock.AnythingOfType("*domain.ShortURL")).Return(nil).Once()

	shortURL, err := svc.Create(&domain.CreateShortURLRequest{TargetURL: "https://agrobissau.gw/listings/10"})

	assert.NoError(t, err)
	assert.NotEmpty(t, shortURL.Code)
	repo.AssertNumberOfCalls(t, "Create", 2)
}

func TestShortURLCreate_GivesUpAfterRetries(t *testing.T) {
	repo := new(MockShortURLRepository)
	svc := NewShortURLService(repo, zerolog.Nop())

	repo.On("Create", mock.AnythingOfType("*domain.ShortURL")).Return(gorm.ErrDuplicatedKey)

	_, err := svc.Create(&domain.CreateShortURLRequest{TargetURL: "https://agrobissau.gw/listings/10"})

	assert.ErrorIs(t, err, common.ErrConflict)
	repo.AssertNumberOfCalls(t, "Create", 3)
}

func TestShortURLResolve_IncrementsHits(t *testing.T) {
	repo := new(MockShortURLRepository)
	svc := NewShortURLService(repo, zerolog.Nop())

	repo.On("FindByCode", "aB3xK9mQ").Return(&domain.ShortURL{ID: 1, Code: "aB3xK9mQ", TargetURL: "https://agrobissau.gw/listings/10"}, nil)
	repo.On("IncrementHitCount", uint64(1)).Return(nil)

	shortURL, err := svc.Resolve("aB3xK9mQ")

	assert.NoError(t, err)
	assert.Equal(t, "https://agrobissau.gw/listings/10", shortURL.TargetURL)
	repo.AssertExpectations(t)
}

func TestShortURLResolve_HitCountFailureDoesNotFailResolve(t *testing.T) {
	repo := new(MockShortURLRepository)
	svc := NewShortURLService(repo, zerolog.Nop())

	repo.On("FindByCode", "aB3xK9mQ").Return(&domain.ShortURL{ID: 1, Code: "aB3xK9mQ", TargetURL: "https://agrobissau.gw/listings/10"}, nil)
	repo.On("IncrementHitCount", uint64(1)).Return(errors.New("db gone"))

	_, err := svc.Resolve("aB3xK9mQ")

	assert.NoError(t, err)
}

func TestShortURLResolve_UnknownCode(t *testing.T) {
	repo := new(MockShortURLRepository)
	svc := NewShortURLService(repo, zerolog.Nop())

	repo.On("FindByCode", "zzzzzzzz").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Resolve("zzzzzzzz")

	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGenerateShortCode_Base62(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := generateShortCode()
		assert.Len(t, code, 8)
		for _, r := range code {
			assert.True(t, (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'))
		}
		seen[code] = true
	}
	// Collisions over 100 draws from a 62^8 space would point at a
	// broken generator.
	assert.Len(t, seen, 100)
}
