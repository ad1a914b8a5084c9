package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecoluxe/pkg/logger"
	"ecoluxe/storefront-service/internal/app/storefront/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

// recentlyViewedCap максимальная длина истории просмотров, старые вытесняются
const recentlyViewedCap = 20

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository создает новый репозиторий пользователей
// Создает уникальный индекс по email - все выборки идут по нему
func NewUserRepository(db *mongo.Database) UserRepository {
	collection := db.Collection("users")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_idx").SetUnique(true),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Warn().Err(err).Msg("Failed to create index on users.email")
	}

	return &userRepository{collection: collection}
}

// GetByEmail получает пользователя по email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// SetPreferences заменяет предпочтения пользователя целиком
func (r *userRepository) SetPreferences(ctx context.Context, email string, prefs *entity.Preferences) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"preferences": prefs}},
	)
	if err != nil {
		return fmt.Errorf("failed to set preferences: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

// AppendRecentlyViewed добавляет товар в конец истории просмотров
// $slice с отрицательным значением оставляет последние recentlyViewedCap записей
func (r *userRepository) AppendRecentlyViewed(ctx context.Context, email string, productID string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{"$push": bson.M{
			"preferences.recentlyViewed": bson.M{
				"$each":  bson.A{productID},
				"$slice": -recentlyViewedCap,
			},
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to append recently viewed: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}
