package repository

import (
	"context"

	"ecoluxe/storefront-service/internal/app/storefront/entity"
)

// ProductRepository определяет методы для работы с товарами в MongoDB
type ProductRepository interface {
	Find(ctx context.Context, filter entity.ProductFilter, sort entity.ProductSort, skip, limit int) ([]entity.Product, error)
	Count(ctx context.Context, filter entity.ProductFilter) (int64, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string, limit int) ([]entity.Product, error)
	GetAll(ctx context.Context) ([]entity.Product, error)
	FindByCategories(ctx context.Context, categories []string) ([]entity.Product, error)
	FindByPriceRange(ctx context.Context, min, max float64) ([]entity.Product, error)
	Trending(ctx context.Context, limit int) ([]entity.Product, error)
	MostViewedCategory(ctx context.Context, productIDs []string) (string, error)
	FindSimilar(ctx context.Context, category string, excludeIDs []string, limit int) ([]entity.Product, error)
	Suggestions(ctx context.Context, query string, limit int) ([]entity.Suggestion, error)
	IncrementViewCount(ctx context.Context, id string) error
	IncrementPurchaseCount(ctx context.Context, id string) error
}

// UserRepository определяет методы для работы с пользователями и их предпочтениями
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	SetPreferences(ctx context.Context, email string, prefs *entity.Preferences) error
	AppendRecentlyViewed(ctx context.Context, email string, productID string) error
}

// ActivityRepository определяет методы для работы с активностью пользователей
type ActivityRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.UserActivity, error)
	AddView(ctx context.Context, email string, productID string) error
	AddPurchase(ctx context.Context, email string, productID string) error
}
