package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"ecoluxe/pkg/logger"
	"ecoluxe/pkg/metrics"
	"ecoluxe/storefront-service/internal/app/storefront/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrProductNotFound = errors.New("product not found")
)

const serviceName = "storefront"

type productRepository struct {
	collection *mongo.Collection
}

// NewProductRepository создает новый репозиторий товаров
// Создает индексы по category и по счетчикам для выборки трендов
func NewProductRepository(db *mongo.Database) ProductRepository {
	collection := db.Collection("products")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("category_idx"),
		},
		{
			Keys:    bson.D{{Key: "viewCount", Value: -1}, {Key: "purchaseCount", Value: -1}},
			Options: options.Index().SetName("trending_idx"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("created_at_idx"),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		// Индексы могут уже существовать, работу не прерываем
		logger.Warn().Err(err).Msg("Failed to create product indexes")
	}

	return &productRepository{collection: collection}
}

// buildFilter переводит ProductFilter в MongoDB запрос
// Поиск - литеральная подстрока без учета регистра, спецсимволы экранируются
func buildFilter(f entity.ProductFilter) bson.M {
	query := bson.M{}

	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		if f.SearchAllFields {
			query["$or"] = bson.A{
				bson.M{"name": pattern},
				bson.M{"description": pattern},
				bson.M{"category": pattern},
			}
		} else {
			query["name"] = pattern
		}
	}

	if f.Category != "" {
		query["category"] = f.Category
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		query["price"] = price
	}

	if f.MinRating != nil {
		query["rating"] = bson.M{"$gte": *f.MinRating}
	}

	return query
}

// buildSort переводит режим сортировки в MongoDB sort-документ
// Все режимы завершаются _id по возрастанию для детерминированной пагинации
func buildSort(sort entity.ProductSort) bson.D {
	var d bson.D
	switch sort {
	case entity.SortPriceAsc:
		d = bson.D{{Key: "price", Value: 1}}
	case entity.SortPriceDesc:
		d = bson.D{{Key: "price", Value: -1}}
	case entity.SortNewest:
		d = bson.D{{Key: "createdAt", Value: -1}}
	case entity.SortRating:
		d = bson.D{{Key: "rating", Value: -1}, {Key: "viewCount", Value: -1}}
	case entity.SortPopular:
		d = bson.D{{Key: "viewCount", Value: -1}, {Key: "purchaseCount", Value: -1}}
	default:
		// relevant: и с поисковой строкой, и без нее сортируем по новизне
		d = bson.D{{Key: "createdAt", Value: -1}}
	}
	return append(d, bson.E{Key: "_id", Value: 1})
}

// Find получает страницу товаров по фильтру с сортировкой
func (r *productRepository) Find(ctx context.Context, filter entity.ProductFilter, sort entity.ProductSort, skip, limit int) ([]entity.Product, error) {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpFind, "products")
	defer timer.ObserveDuration()

	opts := options.Find().
		SetSort(buildSort(sort)).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []entity.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// Count считает товары по фильтру независимо от пагинации
func (r *productRepository) Count(ctx context.Context, filter entity.ProductFilter) (int64, error) {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpCount, "products")
	defer timer.ObserveDuration()

	count, err := r.collection.CountDocuments(ctx, buildFilter(filter))
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpCount)
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

// GetByID получает товар по ID
// Невалидный hex идентификатора трактуется как неразрешимый, то есть not found
func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	var product entity.Product
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// GetByIDs получает товары по списку идентификаторов
// Невалидные идентификаторы пропускаются
func (r *productRepository) GetByIDs(ctx context.Context, ids []string, limit int) ([]entity.Product, error) {
	oids := toObjectIDs(ids)
	if len(oids) == 0 {
		return []entity.Product{}, nil
	}

	opts := options.Find().SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by ids: %w", err)
	}
	defer cursor.Close(ctx)

	products := []entity.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// GetAll получает весь каталог товаров
func (r *productRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpFind, "products")
	defer timer.ObserveDuration()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []entity.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// FindByCategories получает товары из набора категорий
func (r *productRepository) FindByCategories(ctx context.Context, categories []string) ([]entity.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"category": bson.M{"$in": categories}})
	if err != nil {
		return nil, fmt.Errorf("failed to find products by categories: %w", err)
	}
	defer cursor.Close(ctx)

	products := []entity.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// FindByPriceRange получает товары в диапазоне цен, границы включительно
func (r *productRepository) FindByPriceRange(ctx context.Context, min, max float64) ([]entity.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"price": bson.M{"$gte": min, "$lte": max}})
	if err != nil {
		return nil, fmt.Errorf("failed to find products by price range: %w", err)
	}
	defer cursor.Close(ctx)

	products := []entity.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// Trending получает топ товаров по (viewCount desc, purchaseCount desc)
// Использует индекс trending_idx
func (r *productRepository) Trending(ctx context.Context, limit int) ([]entity.Product, error) {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpFind, "products")
	defer timer.ObserveDuration()

	opts := options.Find().
		SetSort(bson.D{
			{Key: "viewCount", Value: -1},
			{Key: "purchaseCount", Value: -1},
			{Key: "_id", Value: 1},
		}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to find trending products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []entity.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode trending products: %w", err)
	}

	return products, nil
}

// MostViewedCategory определяет категорию с наибольшим числом просмотренных товаров
// Возвращает пустую строку, если просмотров нет
func (r *productRepository) MostViewedCategory(ctx context.Context, productIDs []string) (string, error) {
	oids := toObjectIDs(productIDs)
	if len(oids) == 0 {
		return "", nil
	}

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpAggregate, "products")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": bson.M{"$in": oids}}}},
		{{Key: "$group", Value: bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}}},
		// Вторичный ключ _id делает выбор категории при равных счетчиках детерминированным
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: 1}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpAggregate)
		return "", fmt.Errorf("failed to aggregate viewed categories: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Category string `bson:"_id"`
		Count    int    `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return "", fmt.Errorf("failed to decode category aggregation: %w", err)
	}

	if len(results) == 0 {
		return "", nil
	}
	return results[0].Category, nil
}

// FindSimilar получает товары категории, исключая переданные идентификаторы
func (r *productRepository) FindSimilar(ctx context.Context, category string, excludeIDs []string, limit int) ([]entity.Product, error) {
	query := bson.M{"category": category}
	if oids := toObjectIDs(excludeIDs); len(oids) > 0 {
		query["_id"] = bson.M{"$nin": oids}
	}

	opts := options.Find().SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find similar products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []entity.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode similar products: %w", err)
	}

	return products, nil
}

// Suggestions получает подсказки поиска по имени или категории
func (r *productRepository) Suggestions(ctx context.Context, query string, limit int) ([]entity.Suggestion, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"category": pattern},
	}}

	opts := options.Find().
		SetProjection(bson.M{"name": 1, "category": 1, "_id": 0}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find suggestions: %w", err)
	}
	defer cursor.Close(ctx)

	suggestions := []entity.Suggestion{}
	if err := cursor.All(ctx, &suggestions); err != nil {
		return nil, fmt.Errorf("failed to decode suggestions: %w", err)
	}

	return suggestions, nil
}

// IncrementViewCount увеличивает счетчик просмотров товара
func (r *productRepository) IncrementViewCount(ctx context.Context, id string) error {
	return r.incrementCounter(ctx, id, "viewCount")
}

// IncrementPurchaseCount увеличивает счетчик покупок товара
func (r *productRepository) IncrementPurchaseCount(ctx context.Context, id string) error {
	return r.incrementCounter(ctx, id, "purchaseCount")
}

func (r *productRepository) incrementCounter(ctx context.Context, id string, field string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrProductNotFound
	}

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpUpdate, "products")
	defer timer.ObserveDuration()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$inc": bson.M{field: 1}})
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpUpdate)
		return fmt.Errorf("failed to increment %s: %w", field, err)
	}

	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}

	return nil
}

// toObjectIDs конвертирует hex строки в ObjectID, пропуская невалидные
func toObjectIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	return oids
}
