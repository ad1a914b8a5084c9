package entity

// ProductSort режим сортировки каталога
type ProductSort string

const (
	SortRelevant  ProductSort = "relevant"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortNewest    ProductSort = "newest"
	SortRating    ProductSort = "rating"
	SortPopular   ProductSort = "popular"
)

// ValidSort проверяет, что режим сортировки известен
func ValidSort(s ProductSort) bool {
	switch s {
	case SortRelevant, SortPriceAsc, SortPriceDesc, SortNewest, SortRating, SortPopular:
		return true
	}
	return false
}

// ProductFilter набор условий выборки товаров
// Переводится в MongoDB запрос на уровне репозитория
type ProductFilter struct {
	Search          string   // Подстрока без учета регистра
	SearchAllFields bool     // false: только name; true: name, description, category
	Category        string   // Пустая строка - без фильтра по категории
	MinPrice        *float64 // Включительно
	MaxPrice        *float64 // Включительно
	MinRating       *float64 // Включительно, нижняя граница
}

// ProductQuery распарсенные параметры запроса листинга товаров
type ProductQuery struct {
	Search    string
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Sort      ProductSort
	Page      int
	Limit     int
}

// ScoredProduct товар с вычисленным скором релевантности
// Скор существует только в рамках одного запроса ленты
type ScoredProduct struct {
	Product `bson:",inline"`
	Score   int `json:"score"`
}

// FeedResponse ответ персонализированной ленты
type FeedResponse struct {
	Products         []ScoredProduct `json:"products"`
	TotalPages       int             `json:"totalPages"`
	CurrentPage      int             `json:"currentPage"`
	TotalProducts    int             `json:"totalProducts"`
	RecentlyViewed   []Product       `json:"recentlyViewed"`
	SimilarProducts  []Product       `json:"similarProducts"`
	TrendingProducts []Product       `json:"trendingProducts"`
}

// ProductListResponse страница каталога с метаданными пагинации
type ProductListResponse struct {
	Products      []Product `json:"products"`
	TotalPages    int       `json:"totalPages"`
	CurrentPage   int       `json:"currentPage"`
	TotalProducts int       `json:"totalProducts"`
}

// Suggestion подсказка поиска
type Suggestion struct {
	Name     string `json:"name" bson:"name"`
	Category string `json:"category" bson:"category"`
}

// TrackRequest запрос на фиксацию просмотра или покупки
type TrackRequest struct {
	Email     string `json:"email" validate:"required,email"`
	ProductID string `json:"productId" validate:"required"`
}

// UpdatePreferencesRequest запрос на обновление предпочтений
type UpdatePreferencesRequest struct {
	Email       string       `json:"email" validate:"required,email"`
	Preferences *Preferences `json:"preferences" validate:"required"`
}

// ErrorResponse стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
