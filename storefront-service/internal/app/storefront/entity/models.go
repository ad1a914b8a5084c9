package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product товар каталога
// Счетчики viewCount/purchaseCount инкрементируются трекингом просмотров и покупок
type Product struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Category      string             `json:"category" bson:"category"`
	Price         float64            `json:"price" bson:"price"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	Rating        float64            `json:"rating" bson:"rating"` // Средняя оценка от 0 до 5
	ViewCount     int64              `json:"viewCount" bson:"viewCount"`
	PurchaseCount int64              `json:"purchaseCount" bson:"purchaseCount"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

// PriceRange предпочитаемый диапазон цен пользователя, min <= max
type PriceRange struct {
	Min float64 `json:"min" bson:"min" validate:"gte=0"`
	Max float64 `json:"max" bson:"max" validate:"gtefield=Min"`
}

// Preferences предпочтения пользователя для персонализации ленты
// recentlyViewed хранит последние 20 просмотренных товаров, старые вытесняются
type Preferences struct {
	Categories       []string   `json:"categories" bson:"categories"`
	PriceRange       PriceRange `json:"priceRange" bson:"priceRange"`
	RecentlyViewed   []string   `json:"recentlyViewed" bson:"recentlyViewed"`
	FavoriteProducts []string   `json:"favoriteProducts" bson:"favoriteProducts"`
}

// DefaultPreferences значения по умолчанию для пользователей без предпочтений
func DefaultPreferences() *Preferences {
	return &Preferences{
		Categories:       []string{},
		PriceRange:       PriceRange{Min: 0, Max: 1000},
		RecentlyViewed:   []string{},
		FavoriteProducts: []string{},
	}
}

// User запись пользователя, ключ - email
// Аутентификация выполняется внешним identity provider
type User struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	Photo       string             `json:"photo,omitempty" bson:"photo,omitempty"`
	Preferences *Preferences       `json:"preferences,omitempty" bson:"preferences,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// UserActivity агрегат активности пользователя, ключ - email
// viewedProducts/purchasedProducts - множества (только добавление)
type UserActivity struct {
	ID                primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email             string             `json:"email" bson:"email"`
	ViewedProducts    []string           `json:"viewedProducts" bson:"viewedProducts"`
	PurchasedProducts []string           `json:"purchasedProducts" bson:"purchasedProducts"`
	LastViewed        time.Time          `json:"lastViewed,omitempty" bson:"lastViewed,omitempty"`
	LastPurchased     time.Time          `json:"lastPurchased,omitempty" bson:"lastPurchased,omitempty"`
}

// TrackingEvent событие о просмотре или покупке товара
type TrackingEvent struct {
	EventType string    `json:"event_type"` // PRODUCT_VIEWED / PRODUCT_PURCHASED
	ProductID string    `json:"product_id"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventProductViewed    = "PRODUCT_VIEWED"
	EventProductPurchased = "PRODUCT_PURCHASED"
)
