package service

import (
	"context"
	"errors"
	"fmt"

	"ecoluxe/storefront-service/internal/app/storefront/entity"
	"ecoluxe/storefront-service/internal/app/storefront/repository"
)

// UserService обрабатывает чтение и обновление предпочтений пользователя
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetPreferences возвращает предпочтения пользователя
// Для записей без предпочтений возвращает значения по умолчанию без записи в БД
func (s *UserService) GetPreferences(ctx context.Context, email string) (*entity.Preferences, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.Preferences == nil {
		return entity.DefaultPreferences(), nil
	}

	return user.Preferences, nil
}

// UpdatePreferences заменяет предпочтения пользователя целиком
func (s *UserService) UpdatePreferences(ctx context.Context, email string, prefs *entity.Preferences) error {
	if err := s.userRepo.SetPreferences(ctx, email, prefs); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update preferences: %w", err)
	}

	return nil
}
