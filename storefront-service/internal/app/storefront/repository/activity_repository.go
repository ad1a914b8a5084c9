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

type activityRepository struct {
	collection *mongo.Collection
}

// NewActivityRepository создает новый репозиторий активности пользователей
func NewActivityRepository(db *mongo.Database) ActivityRepository {
	collection := db.Collection("userActivity")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_idx").SetUnique(true),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Warn().Err(err).Msg("Failed to create index on userActivity.email")
	}

	return &activityRepository{collection: collection}
}

// GetByEmail получает активность пользователя
// Для пользователя без событий возвращает пустую запись, а не ошибку
func (r *activityRepository) GetByEmail(ctx context.Context, email string) (*entity.UserActivity, error) {
	var activity entity.UserActivity
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&activity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &entity.UserActivity{Email: email}, nil
		}
		return nil, fmt.Errorf("failed to get user activity: %w", err)
	}

	return &activity, nil
}

// AddView добавляет товар в множество просмотренных (upsert)
// $addToSet не создает дубликатов при повторных просмотрах
func (r *activityRepository) AddView(ctx context.Context, email string, productID string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{
			"$addToSet": bson.M{"viewedProducts": productID},
			"$set":      bson.M{"lastViewed": time.Now()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to add viewed product: %w", err)
	}

	return nil
}

// AddPurchase добавляет товар в множество купленных (upsert)
func (r *activityRepository) AddPurchase(ctx context.Context, email string, productID string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{
			"$addToSet": bson.M{"purchasedProducts": productID},
			"$set":      bson.M{"lastPurchased": time.Now()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to add purchased product: %w", err)
	}

	return nil
}
