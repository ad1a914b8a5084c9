package util

import (
	"context"
	"testing"
	"time"

	"ecoluxe/storefront-service/internal/app/storefront/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestRedisClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisClientFromExisting(client), mr
}

func TestSetAndGetTrending(t *testing.T) {
	rc, _ := newTestRedisClient(t)
	ctx := context.Background()

	products := []entity.Product{
		{ID: primitive.NewObjectID(), Name: "Hot Item", ViewCount: 100, PurchaseCount: 20},
		{ID: primitive.NewObjectID(), Name: "Second", ViewCount: 50, PurchaseCount: 30},
	}

	require.NoError(t, rc.SetTrending(ctx, products, 5*time.Minute))

	got, err := rc.GetTrending(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, products[0].ID, got[0].ID)
	assert.Equal(t, products[0].Name, got[0].Name)
	assert.Equal(t, products[1].ViewCount, got[1].ViewCount)
}

func TestGetTrending_CacheMiss(t *testing.T) {
	rc, _ := newTestRedisClient(t)
	ctx := context.Background()

	got, err := rc.GetTrending(ctx)

	// Промах кеша не ошибка, вызывающий код идет в MongoDB
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetTrending_ExpiredKey(t *testing.T) {
	rc, mr := newTestRedisClient(t)
	ctx := context.Background()

	products := []entity.Product{{ID: primitive.NewObjectID(), Name: "Hot Item"}}
	require.NoError(t, rc.SetTrending(ctx, products, time.Minute))

	mr.FastForward(2 * time.Minute)

	got, err := rc.GetTrending(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteTrending(t *testing.T) {
	rc, _ := newTestRedisClient(t)
	ctx := context.Background()

	products := []entity.Product{{ID: primitive.NewObjectID(), Name: "Hot Item"}}
	require.NoError(t, rc.SetTrending(ctx, products, 5*time.Minute))

	require.NoError(t, rc.DeleteTrending(ctx))

	got, err := rc.GetTrending(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSetTrending_OverwritesPrevious(t *testing.T) {
	rc, _ := newTestRedisClient(t)
	ctx := context.Background()

	first := []entity.Product{{ID: primitive.NewObjectID(), Name: "Old"}}
	second := []entity.Product{{ID: primitive.NewObjectID(), Name: "New"}}

	require.NoError(t, rc.SetTrending(ctx, first, 5*time.Minute))
	require.NoError(t, rc.SetTrending(ctx, second, 5*time.Minute))

	got, err := rc.GetTrending(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "New", got[0].Name)
}
