package service

import (
	"context"
	"time"

	"ecoluxe/storefront-service/internal/app/storefront/entity"
)

// MessagePublisher интерфейс для отправки событий в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// TrendingCache интерфейс кеша трендовых товаров (Redis)
type TrendingCache interface {
	GetTrending(ctx context.Context) ([]entity.Product, error)
	SetTrending(ctx context.Context, products []entity.Product, ttl time.Duration) error
}

// TrendingProvider отдает актуальный топ трендовых товаров
// Реализуется CatalogService, чтобы лента переиспользовала его кеш
type TrendingProvider interface {
	Trending(ctx context.Context) ([]entity.Product, error)
}
