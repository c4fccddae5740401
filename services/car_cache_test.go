package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"car-rental-backend/models"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarCache_MissThenSet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCarCache(client)
	ctx := context.Background()

	mock.ExpectGet(carListCacheKey).RedisNil()
	cars, ok := cache.GetVisible(ctx)
	assert.False(t, ok)
	assert.Nil(t, cars)

	fleet := []models.Car{{ID: "car-1", Name: "Dacia Duster", Status: models.CarAvailable}}
	raw, err := json.Marshal(fleet)
	require.NoError(t, err)

	mock.ExpectSet(carListCacheKey, raw, 60*time.Second).SetVal("OK")
	cache.SetVisible(ctx, fleet)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCarCache_Hit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCarCache(client)

	fleet := []models.Car{{ID: "car-1", Name: "Renault Clio", Status: models.CarAvailable}}
	raw, err := json.Marshal(fleet)
	require.NoError(t, err)

	mock.ExpectGet(carListCacheKey).SetVal(string(raw))
	cars, ok := cache.GetVisible(context.Background())
	require.True(t, ok)
	require.Len(t, cars, 1)
	assert.Equal(t, "Renault Clio", cars[0].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCarCache_Invalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCarCache(client)

	mock.ExpectDel(carListCacheKey).SetVal(1)
	cache.Invalidate(context.Background())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCarCache_NilIsNoOp(t *testing.T) {
	var cache *CarCache
	ctx := context.Background()

	cars, ok := cache.GetVisible(ctx)
	assert.False(t, ok)
	assert.Nil(t, cars)

	// must not panic
	cache.SetVisible(ctx, []models.Car{{ID: "car-1"}})
	cache.Invalidate(ctx)

	assert.Nil(t, NewCarCache(nil))
}
