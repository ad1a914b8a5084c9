package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"ecoluxe/pkg/logger"
	"ecoluxe/pkg/metrics"
	"ecoluxe/storefront-service/internal/app/storefront/entity"
	"ecoluxe/storefront-service/internal/app/storefront/repository"
)

// Веса вкладов в скор товара, вклады независимы и суммируются
const (
	scoreFavoriteCategory = 3 // Категория товара в любимых категориях
	scoreInPriceRange     = 1 // Цена в предпочитаемом диапазоне (границы включительно)
	scoreViewed           = 2 // Товар в множестве просмотренных
	scorePurchased        = 4 // Товар в множестве купленных
	scoreTrending         = 1 // Товар в глобальном топ-10 по счетчикам
)

const (
	recentlyViewedLimit = 4
	feedSimilarLimit    = 4
)

// FeedService строит персонализированную ленту товаров
// Чистое чтение: счетчики просмотров и покупок здесь никогда не мутируются
type FeedService struct {
	productRepo  repository.ProductRepository
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
	trending     TrendingProvider
}

// NewFeedService создает новый сервис ленты с внедрением зависимостей
func NewFeedService(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
	trending TrendingProvider,
) *FeedService {
	return &FeedService{
		productRepo:  productRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		trending:     trending,
	}
}

// GetPersonalizedFeed вычисляет скор каждого товара каталога для пользователя
// и возвращает отсортированную страницу плюс вспомогательные списки
func (s *FeedService) GetPersonalizedFeed(ctx context.Context, email string, page, limit int) (*entity.FeedResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			metrics.FeedRequests.WithLabelValues("user_not_found").Inc()
			return nil, ErrUserNotFound
		}
		metrics.FeedRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	prefs := user.Preferences
	if prefs == nil {
		// Старые записи без предпочтений дозаполняем значениями по умолчанию
		prefs = entity.DefaultPreferences()
		if err := s.userRepo.SetPreferences(ctx, email, prefs); err != nil {
			logger.Warn().Err(err).Str("email", email).Msg("Failed to backfill default preferences")
		}
	}

	activity, err := s.activityRepo.GetByEmail(ctx, email)
	if err != nil {
		metrics.FeedRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to get user activity: %w", err)
	}

	scoringTimer := metrics.NewTimer()

	scores := make(map[string]int)

	// 1. Любимые категории
	if len(prefs.Categories) > 0 {
		categoryProducts, err := s.productRepo.FindByCategories(ctx, prefs.Categories)
		if err != nil {
			return nil, fmt.Errorf("failed to find products by categories: %w", err)
		}
		for _, p := range categoryProducts {
			scores[p.ID.Hex()] += scoreFavoriteCategory
		}
	}

	// 2. Предпочитаемый диапазон цен
	priceProducts, err := s.productRepo.FindByPriceRange(ctx, prefs.PriceRange.Min, prefs.PriceRange.Max)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by price range: %w", err)
	}
	for _, p := range priceProducts {
		scores[p.ID.Hex()] += scoreInPriceRange
	}

	// 3. История просмотров
	for _, id := range activity.ViewedProducts {
		scores[id] += scoreViewed
	}

	// 4. История покупок
	for _, id := range activity.PurchasedProducts {
		scores[id] += scorePurchased
	}

	// 5. Глобальный топ-10, тот же список возвращается в trendingProducts
	trendingProducts, err := s.trending.Trending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get trending products: %w", err)
	}
	for _, p := range trendingProducts {
		scores[p.ID.Hex()] += scoreTrending
	}

	allProducts, err := s.productRepo.GetAll(ctx)
	if err != nil {
		metrics.FeedRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	scored := make([]entity.ScoredProduct, 0, len(allProducts))
	for _, p := range allProducts {
		scored = append(scored, entity.ScoredProduct{
			Product: p,
			Score:   scores[p.ID.Hex()],
		})
	}

	// Скор по убыванию, при равенстве - идентификатор по возрастанию,
	// чтобы порядок и нарезка страниц были стабильны между запросами
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ID.Hex() < scored[j].ID.Hex()
	})

	metrics.FeedScoringDuration.Observe(scoringTimer.Seconds())

	total := len(scored)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	pageProducts := scored[start:end]

	recentlyViewed := []entity.Product{}
	if len(prefs.RecentlyViewed) > 0 {
		recentlyViewed, err = s.productRepo.GetByIDs(ctx, prefs.RecentlyViewed, recentlyViewedLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to get recently viewed products: %w", err)
		}
	}

	similarProducts, err := s.similarByMostViewedCategory(ctx, activity)
	if err != nil {
		return nil, err
	}

	metrics.FeedRequests.WithLabelValues("success").Inc()

	return &entity.FeedResponse{
		Products:         pageProducts,
		TotalPages:       totalPages,
		CurrentPage:      page,
		TotalProducts:    total,
		RecentlyViewed:   recentlyViewed,
		SimilarProducts:  similarProducts,
		TrendingProducts: trendingProducts,
	}, nil
}

// similarByMostViewedCategory подбирает товары той категории, которую
// пользователь просматривал чаще всего, исключая уже просмотренное и купленное
func (s *FeedService) similarByMostViewedCategory(ctx context.Context, activity *entity.UserActivity) ([]entity.Product, error) {
	category, err := s.productRepo.MostViewedCategory(ctx, activity.ViewedProducts)
	if err != nil {
		return nil, fmt.Errorf("failed to determine most viewed category: %w", err)
	}
	if category == "" {
		return []entity.Product{}, nil
	}

	exclude := make([]string, 0, len(activity.ViewedProducts)+len(activity.PurchasedProducts))
	exclude = append(exclude, activity.ViewedProducts...)
	exclude = append(exclude, activity.PurchasedProducts...)

	similar, err := s.productRepo.FindSimilar(ctx, category, exclude, feedSimilarLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to find similar products: %w", err)
	}

	return similar, nil
}
