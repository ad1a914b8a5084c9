package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"ecoluxe/storefront-service/internal/app/storefront/entity"
	"ecoluxe/storefront-service/internal/app/storefront/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockFeedService struct {
	mock.Mock
}

func (m *mockFeedService) GetPersonalizedFeed(ctx context.Context, email string, page, limit int) (*entity.FeedResponse, error) {
	args := m.Called(ctx, email, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FeedResponse), args.Error(1)
}

func newFeedRouter() (*gin.Engine, *mockFeedService) {
	svc := new(mockFeedService)
	h := NewFeedHandler(svc)

	router := gin.New()
	router.GET("/feed/personalized", h.GetPersonalizedFeed)
	return router, svc
}

func TestGetPersonalizedFeed_Success(t *testing.T) {
	router, svc := newFeedRouter()

	feed := &entity.FeedResponse{
		Products: []entity.ScoredProduct{
			{Product: entity.Product{ID: primitive.NewObjectID(), Name: "Top Pick"}, Score: 7},
		},
		TotalPages:    1,
		CurrentPage:   1,
		TotalProducts: 1,
	}
	svc.On("GetPersonalizedFeed", mock.Anything, "user@example.com", 1, 6).Return(feed, nil)

	w := performRequest(router, http.MethodGet, "/feed/personalized?email=user@example.com", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Top Pick")
	assert.Contains(t, w.Body.String(), `"score":7`)
	svc.AssertExpectations(t)
}

func TestGetPersonalizedFeed_CustomPageAndLimit(t *testing.T) {
	router, svc := newFeedRouter()

	svc.On("GetPersonalizedFeed", mock.Anything, "user@example.com", 3, 12).
		Return(&entity.FeedResponse{CurrentPage: 3}, nil)

	w := performRequest(router, http.MethodGet, "/feed/personalized?email=user@example.com&page=3&limit=12", "")

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestGetPersonalizedFeed_RequiresEmail(t *testing.T) {
	router, svc := newFeedRouter()

	w := performRequest(router, http.MethodGet, "/feed/personalized", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email is required")
	svc.AssertNotCalled(t, "GetPersonalizedFeed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPersonalizedFeed_RejectsBadPagination(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"нулевая страница", "&page=0"},
		{"нечисловой лимит", "&limit=ten"},
		{"отрицательный лимит", "&limit=-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newFeedRouter()

			w := performRequest(router, http.MethodGet, "/feed/personalized?email=user@example.com"+tt.query, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			svc.AssertNotCalled(t, "GetPersonalizedFeed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGetPersonalizedFeed_UserNotFound(t *testing.T) {
	router, svc := newFeedRouter()

	svc.On("GetPersonalizedFeed", mock.Anything, "ghost@example.com", 1, 6).
		Return(nil, service.ErrUserNotFound)

	w := performRequest(router, http.MethodGet, "/feed/personalized?email=ghost@example.com", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestGetPersonalizedFeed_ServiceError(t *testing.T) {
	router, svc := newFeedRouter()

	svc.On("GetPersonalizedFeed", mock.Anything, "user@example.com", 1, 6).
		Return(nil, errors.New("mongo down"))

	w := performRequest(router, http.MethodGet, "/feed/personalized?email=user@example.com", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
