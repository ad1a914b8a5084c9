package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ecoluxe/pkg/logger"
	"ecoluxe/pkg/metrics"
	"ecoluxe/storefront-service/internal/app/storefront/entity"
	"ecoluxe/storefront-service/internal/app/storefront/repository"
)

// TrackingService фиксирует просмотры и покупки товаров
// Единственный код, мутирующий счетчики viewCount/purchaseCount
type TrackingService struct {
	productRepo   repository.ProductRepository
	userRepo      repository.UserRepository
	activityRepo  repository.ActivityRepository
	kafkaProducer MessagePublisher
}

// NewTrackingService создает новый сервис трекинга с внедрением зависимостей
func NewTrackingService(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
	kafkaProducer MessagePublisher,
) *TrackingService {
	return &TrackingService{
		productRepo:   productRepo,
		userRepo:      userRepo,
		activityRepo:  activityRepo,
		kafkaProducer: kafkaProducer,
	}
}

// TrackView фиксирует просмотр товара пользователем
// 1. Инкрементирует viewCount товара
// 2. Добавляет товар в историю просмотров (последние 20)
// 3. Добавляет товар в множество просмотренного в активности (upsert)
// 4. Отправляет событие PRODUCT_VIEWED в Kafka
func (s *TrackingService) TrackView(ctx context.Context, email, productID string) error {
	if _, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.productRepo.IncrementViewCount(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to increment view count: %w", err)
	}

	if err := s.userRepo.AppendRecentlyViewed(ctx, email, productID); err != nil {
		return fmt.Errorf("failed to append recently viewed: %w", err)
	}

	if err := s.activityRepo.AddView(ctx, email, productID); err != nil {
		return fmt.Errorf("failed to record view activity: %w", err)
	}

	metrics.ProductViewsTracked.Inc()
	s.publishTrackingEvent(ctx, entity.EventProductViewed, email, productID)

	return nil
}

// TrackPurchase фиксирует покупку товара пользователем
func (s *TrackingService) TrackPurchase(ctx context.Context, email, productID string) error {
	if _, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.productRepo.IncrementPurchaseCount(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to increment purchase count: %w", err)
	}

	if err := s.activityRepo.AddPurchase(ctx, email, productID); err != nil {
		return fmt.Errorf("failed to record purchase activity: %w", err)
	}

	metrics.ProductPurchasesTracked.Inc()
	s.publishTrackingEvent(ctx, entity.EventProductPurchased, email, productID)

	return nil
}

// publishTrackingEvent отправляет событие трекинга в Kafka
// Ошибка отправки логируется и не прерывает выполнение: данные уже записаны
func (s *TrackingService) publishTrackingEvent(ctx context.Context, eventType, email, productID string) {
	event := entity.TrackingEvent{
		EventType: eventType,
		ProductID: productID,
		Email:     email,
		Timestamp: time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("Failed to marshal tracking event")
		return
	}

	if err := s.kafkaProducer.PublishMessage(ctx, productID, eventData); err != nil {
		logger.Warn().Err(err).Str("event_type", eventType).Str("product_id", productID).
			Msg("Failed to publish tracking event")
	}
}
