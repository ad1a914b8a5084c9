package handler

import (
	"context"
	"net/http"
	"testing"

	"ecoluxe/storefront-service/internal/app/storefront/entity"
	"ecoluxe/storefront-service/internal/app/storefront/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetPreferences(ctx context.Context, email string) (*entity.Preferences, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Preferences), args.Error(1)
}

func (m *mockUserService) UpdatePreferences(ctx context.Context, email string, prefs *entity.Preferences) error {
	args := m.Called(ctx, email, prefs)
	return args.Error(0)
}

func newUserRouter() (*gin.Engine, *mockUserService) {
	svc := new(mockUserService)
	h := NewUserHandler(svc)

	router := gin.New()
	router.GET("/user/preferences/:email", h.GetPreferences)
	router.PUT("/user/preferences", h.UpdatePreferences)
	return router, svc
}

func TestGetPreferencesHandler_Success(t *testing.T) {
	router, svc := newUserRouter()

	prefs := &entity.Preferences{
		Categories: []string{"books"},
		PriceRange: entity.PriceRange{Min: 10, Max: 500},
	}
	svc.On("GetPreferences", mock.Anything, "user@example.com").Return(prefs, nil)

	w := performRequest(router, http.MethodGet, "/user/preferences/user@example.com", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "books")
	svc.AssertExpectations(t)
}

func TestGetPreferencesHandler_UserNotFound(t *testing.T) {
	router, svc := newUserRouter()

	svc.On("GetPreferences", mock.Anything, "ghost@example.com").Return(nil, service.ErrUserNotFound)

	w := performRequest(router, http.MethodGet, "/user/preferences/ghost@example.com", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdatePreferencesHandler_Success(t *testing.T) {
	router, svc := newUserRouter()

	wantPrefs := &entity.Preferences{
		Categories: []string{"electronics"},
		PriceRange: entity.PriceRange{Min: 0, Max: 2000},
	}
	svc.On("UpdatePreferences", mock.Anything, "user@example.com", wantPrefs).Return(nil)

	w := performRequest(router, http.MethodPut, "/user/preferences",
		`{"email":"user@example.com","preferences":{"categories":["electronics"],"priceRange":{"min":0,"max":2000}}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Preferences updated")
	svc.AssertExpectations(t)
}

func TestUpdatePreferencesHandler_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"невалидный JSON", `{"email":`},
		{"нет email", `{"preferences":{"categories":[]}}`},
		{"нет предпочтений", `{"email":"user@example.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newUserRouter()

			w := performRequest(router, http.MethodPut, "/user/preferences", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			svc.AssertNotCalled(t, "UpdatePreferences", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdatePreferencesHandler_UserNotFound(t *testing.T) {
	router, svc := newUserRouter()

	svc.On("UpdatePreferences", mock.Anything, "ghost@example.com", mock.Anything).
		Return(service.ErrUserNotFound)

	w := performRequest(router, http.MethodPut, "/user/preferences",
		`{"email":"ghost@example.com","preferences":{"categories":[],"priceRange":{"min":0,"max":100}}}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
