package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agrobissau/agrobissau-backend/internal/authz"
	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(p authz.Principal, req *domain.CreateReviewRequest) (*domain.Review, error) {
	args := m.Called(p, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewService) ListByUser(reviewedID uint64, page, limit int) (*domain.ReviewListResponse, *common.Meta, error) {
	args := m.Called(reviewedID, page, limit)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.ReviewListResponse), args.Get(1).(*common.Meta), args.Error(2)
}

func (m *MockReviewService) Delete(p authz.Principal, id uint64) error {
	args := m.Called(p, id)
	return args.Error(0)
}

func newReviewRouter(svc *MockReviewService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("principal", authz.Principal{UserID: 1, Name: "Mamadou", Role: domain.RoleUser})
		c.Next()
	})
	r.POST("/reviews", NewReviewHandler(svc).Create)
	return r
}

func TestReviewCreate_RatingOutOfRange(t *testing.T) {
	svc := new(MockReviewService)
	r := newReviewRouter(svc)

	body := bytes.NewBufferString(`{"reviewed_id": 2, "rating": 6}`)
	req, _ := http.NewRequest("POST", "/reviews", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewCreate_RatingZero(t *testing.T) {
	svc := new(MockReviewService)
	r := newReviewRouter(svc)

	body := bytes.NewBufferString(`{"reviewed_id": 2, "rating": 0}`)
	req, _ := http.NewRequest("POST", "/reviews", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewCreate_ValidRating(t *testing.T) {
	svc := new(MockReviewService)
	r := newReviewRouter(svc)

	svc.On("Create", mock.Anything, mock.AnythingOfType("*domain.CreateReviewRequest")).
		Return(&domain.Review{ID: 5, ReviewerID: 1, ReviewedID: 2, Rating: 5}, nil)

	body := bytes.NewBufferString(`{"reviewed_id": 2, "rating": 5, "comment": "Très bon vendeur"}`)
	req, _ := http.NewRequest("POST", "/reviews", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}
