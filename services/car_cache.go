package services

import (
	"context"
	"encoding/json"
	"time"

	"car-rental-backend/models"

	"github.com/redis/go-redis/v9"
)

const carListCacheKey = "cars:visible"

// CarCache keeps the customer-facing catalog listing in redis for a short
// TTL. All methods are nil-receiver safe so the service layer can run
// without redis configured.
type CarCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewCarCache(client *redis.Client) *CarCache {
	if client == nil {
		return nil
	}
	return &CarCache{Client: client, TTL: 60 * time.Second}
}

func (c *CarCache) GetVisible(ctx context.Context) ([]models.Car, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.Client.Get(ctx, carListCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var cars []models.Car
	if err := json.Unmarshal(raw, &cars); err != nil {
		return nil, false
	}
	return cars, true
}

func (c *CarCache) SetVisible(ctx context.Context, cars []models.Car) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(cars)
	if err != nil {
		return
	}
	c.Client.Set(ctx, carListCacheKey, raw, c.TTL)
}

func (c *CarCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	c.Client.Del(ctx, carListCacheKey)
}
