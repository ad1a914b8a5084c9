package service

import (
	"context"
	"errors"
	"testing"

	"ecoluxe/storefront-service/internal/app/storefront/entity"
	"ecoluxe/storefront-service/internal/app/storefront/repository"
	"ecoluxe/storefront-service/internal/app/storefront/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPreferences_ReturnsStoredPreferences(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	svc := NewUserService(userRepo)
	ctx := context.Background()

	prefs := &entity.Preferences{
		Categories: []string{"books"},
		PriceRange: entity.PriceRange{Min: 10, Max: 500},
	}
	userRepo.On("GetByEmail", ctx, testEmail).Return(&entity.User{Email: testEmail, Preferences: prefs}, nil)

	got, err := svc.GetPreferences(ctx, testEmail)

	require.NoError(t, err)
	assert.Equal(t, prefs, got)
}

func TestGetPreferences_DefaultsWithoutWrite(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	svc := NewUserService(userRepo)
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, testEmail).Return(&entity.User{Email: testEmail}, nil)

	got, err := svc.GetPreferences(ctx, testEmail)

	require.NoError(t, err)
	assert.Equal(t, entity.DefaultPreferences(), got)
	userRepo.AssertNotCalled(t, "SetPreferences", ctx, testEmail, got)
}

func TestGetPreferences_UserNotFound(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	svc := NewUserService(userRepo)
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, testEmail).Return(nil, repository.ErrUserNotFound)

	got, err := svc.GetPreferences(ctx, testEmail)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdatePreferences_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	svc := NewUserService(userRepo)
	ctx := context.Background()

	prefs := &entity.Preferences{
		Categories: []string{"electronics"},
		PriceRange: entity.PriceRange{Min: 0, Max: 2000},
	}
	userRepo.On("SetPreferences", ctx, testEmail, prefs).Return(nil)

	err := svc.UpdatePreferences(ctx, testEmail, prefs)

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestUpdatePreferences_UserNotFound(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	svc := NewUserService(userRepo)
	ctx := context.Background()

	prefs := entity.DefaultPreferences()
	userRepo.On("SetPreferences", ctx, testEmail, prefs).Return(repository.ErrUserNotFound)

	err := svc.UpdatePreferences(ctx, testEmail, prefs)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdatePreferences_StoreError(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	svc := NewUserService(userRepo)
	ctx := context.Background()

	prefs := entity.DefaultPreferences()
	userRepo.On("SetPreferences", ctx, testEmail, prefs).Return(errors.New("connection reset"))

	err := svc.UpdatePreferences(ctx, testEmail, prefs)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}
