package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecoluxe/pkg/logger"
	"ecoluxe/pkg/metrics"
	"ecoluxe/storefront-service/internal/app/storefront/entity"
	"ecoluxe/storefront-service/internal/app/storefront/repository"
)

const (
	trendingLimit   = 10
	trendingTTL     = 5 * time.Minute
	similarLimit    = 4
	suggestionLimit = 5
)

// CategoryAll специальное значение фильтра категории, означающее "без фильтра"
const CategoryAll = "all"

// CatalogService обрабатывает выборку, поиск и сортировку каталога
// Координирует работу репозитория товаров и Redis кеша трендов
type CatalogService struct {
	productRepo repository.ProductRepository
	cache       TrendingCache
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(productRepo repository.ProductRepository, cache TrendingCache) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		cache:       cache,
	}
}

// ListProducts возвращает страницу каталога по фильтрам и сортировке
// Счетчик totalProducts считается независимым запросом по тому же фильтру
func (s *CatalogService) ListProducts(ctx context.Context, q *entity.ProductQuery) (*entity.ProductListResponse, error) {
	metrics.SearchRequests.WithLabelValues("products").Inc()

	category := q.Category
	if category == CategoryAll {
		category = ""
	}

	filter := entity.ProductFilter{
		Search:    q.Search,
		Category:  category,
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		MinRating: q.MinRating,
	}

	return s.page(ctx, filter, q.Sort, q.Page, q.Limit)
}

// SearchProducts ищет подстроку в имени, описании и категории товара
func (s *CatalogService) SearchProducts(ctx context.Context, query string, page, limit int) (*entity.ProductListResponse, error) {
	metrics.SearchRequests.WithLabelValues("search").Inc()

	filter := entity.ProductFilter{
		Search:          query,
		SearchAllFields: true,
	}

	return s.page(ctx, filter, entity.SortRelevant, page, limit)
}

func (s *CatalogService) page(ctx context.Context, filter entity.ProductFilter, sort entity.ProductSort, page, limit int) (*entity.ProductListResponse, error) {
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	skip := (page - 1) * limit
	products, err := s.productRepo.Find(ctx, filter, sort, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return &entity.ProductListResponse{
		Products:      products,
		TotalPages:    int((total + int64(limit) - 1) / int64(limit)),
		CurrentPage:   page,
		TotalProducts: int(total),
	}, nil
}

// Suggestions возвращает до 5 подсказок по имени или категории
func (s *CatalogService) Suggestions(ctx context.Context, query string) ([]entity.Suggestion, error) {
	metrics.SearchRequests.WithLabelValues("suggestions").Inc()

	suggestions, err := s.productRepo.Suggestions(ctx, query, suggestionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestions: %w", err)
	}

	return suggestions, nil
}

// Trending возвращает топ-10 товаров по (viewCount desc, purchaseCount desc)
// Сначала проверяет кеш Redis, при промахе загружает из MongoDB и кеширует
func (s *CatalogService) Trending(ctx context.Context) ([]entity.Product, error) {
	products, err := s.cache.GetTrending(ctx)
	if err != nil {
		// Проблемы кеша не критичны, деградируем до чтения из MongoDB
		logger.Warn().Err(err).Msg("Failed to read trending cache")
	}
	if len(products) > 0 {
		return products, nil
	}

	products, err = s.productRepo.Trending(ctx, trendingLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get trending products: %w", err)
	}

	if err := s.cache.SetTrending(ctx, products, trendingTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache trending products")
	}

	return products, nil
}

// RefreshTrending пересчитывает топ трендов и перезаписывает кеш
// Вызывается cron-планировщиком, чтобы лента и /products/trending били в кеш
func (s *CatalogService) RefreshTrending(ctx context.Context) error {
	products, err := s.productRepo.Trending(ctx, trendingLimit)
	if err != nil {
		metrics.TrendingRefreshes.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to load trending products: %w", err)
	}

	if err := s.cache.SetTrending(ctx, products, trendingTTL); err != nil {
		metrics.TrendingRefreshes.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to cache trending products: %w", err)
	}

	metrics.TrendingRefreshes.WithLabelValues("success").Inc()
	return nil
}

// SimilarProducts возвращает до 4 товаров категории переданного товара
func (s *CatalogService) SimilarProducts(ctx context.Context, productID string) ([]entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	similar, err := s.productRepo.FindSimilar(ctx, product.Category, []string{productID}, similarLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to find similar products: %w", err)
	}

	return similar, nil
}
