package handler

import (
	"context"
	"errors"
	"net/http"

	"ecoluxe/storefront-service/internal/app/storefront/entity"
	"ecoluxe/storefront-service/internal/app/storefront/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultListPage    = 1
	defaultListLimit   = 12
	defaultSearchLimit = 6
)

type CatalogServiceInterface interface {
	ListProducts(ctx context.Context, q *entity.ProductQuery) (*entity.ProductListResponse, error)
	SearchProducts(ctx context.Context, query string, page, limit int) (*entity.ProductListResponse, error)
	Suggestions(ctx context.Context, query string) ([]entity.Suggestion, error)
	Trending(ctx context.Context) ([]entity.Product, error)
	SimilarProducts(ctx context.Context, productID string) ([]entity.Product, error)
}

type CatalogHandler struct {
	catalogService CatalogServiceInterface
}

func NewCatalogHandler(catalogService CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetProducts обрабатывает GET /products
// Все фильтры опциональны, отсутствие параметра означает отсутствие ограничения
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	query, err := h.parseProductQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.catalogService.ListProducts(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *CatalogHandler) parseProductQuery(c *gin.Context) (*entity.ProductQuery, error) {
	page, err := parsePositiveInt(c, "page", defaultListPage)
	if err != nil {
		return nil, err
	}

	limit, err := parsePositiveInt(c, "limit", defaultListLimit)
	if err != nil {
		return nil, err
	}

	minPrice, err := parseOptionalFloat(c, "minPrice")
	if err != nil {
		return nil, err
	}

	maxPrice, err := parseOptionalFloat(c, "maxPrice")
	if err != nil {
		return nil, err
	}

	// Цены в каталоге неотрицательны, отрицательные границы - ошибка клиента
	if minPrice != nil && *minPrice < 0 {
		return nil, errors.New("minPrice must not be negative")
	}
	if maxPrice != nil && *maxPrice < 0 {
		return nil, errors.New("maxPrice must not be negative")
	}
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		return nil, errors.New("minPrice must not exceed maxPrice")
	}

	minRating, err := parseOptionalFloat(c, "minRating")
	if err != nil {
		return nil, err
	}
	if minRating != nil && (*minRating < 0 || *minRating > 5) {
		return nil, errors.New("minRating must be between 0 and 5")
	}

	sort := entity.ProductSort(c.DefaultQuery("sort", string(entity.SortRelevant)))
	if !entity.ValidSort(sort) {
		return nil, errors.New("unknown sort mode")
	}

	return &entity.ProductQuery{
		Search:    c.Query("search"),
		Category:  c.DefaultQuery("category", service.CategoryAll),
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		MinRating: minRating,
		Sort:      sort,
		Page:      page,
		Limit:     limit,
	}, nil
}

// SearchProducts обрабатывает GET /search
// Поисковая строка обязательна, без нее запрос к хранилищу не выполняется
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	page, err := parsePositiveInt(c, "page", defaultListPage)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit, err := parsePositiveInt(c, "limit", defaultSearchLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.catalogService.SearchProducts(c.Request.Context(), query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetSuggestions обрабатывает GET /search/suggestions
func (h *CatalogHandler) GetSuggestions(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	suggestions, err := h.catalogService.Suggestions(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get suggestions"})
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

// GetTrending обрабатывает GET /products/trending
func (h *CatalogHandler) GetTrending(c *gin.Context) {
	products, err := h.catalogService.Trending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get trending products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetSimilarProducts обрабатывает GET /products/similar/:productId
func (h *CatalogHandler) GetSimilarProducts(c *gin.Context) {
	productID := c.Param("productId")

	products, err := h.catalogService.SimilarProducts(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get similar products"})
		return
	}

	c.JSON(http.StatusOK, products)
}
