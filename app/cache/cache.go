package cache

import (
	"context"
	"encoding/json"
	"time"

	"carmarket/app/models"

	"github.com/redis/go-redis/v9"
)

// ListingCache keeps serialized listing details in redis. A nil cache is
// valid and turns every operation into a no-op, so the server runs the same
// with redis disabled.
type ListingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewListingCache(rdb *redis.Client, ttl time.Duration) *ListingCache {
	if rdb == nil {
		return nil
	}
	return &ListingCache{rdb: rdb, ttl: ttl}
}

func key(id string) string { return "car:" + id }

func (c *ListingCache) Get(ctx context.Context, id string) (*models.Car, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var car models.Car
	if err := json.Unmarshal(data, &car); err != nil {
		return nil, false
	}
	return &car, true
}

func (c *ListingCache) Set(ctx context.Context, car *models.Car) {
	if c == nil || car == nil {
		return
	}
	data, err := json.Marshal(car)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key(car.ID), data, c.ttl)
}

func (c *ListingCache) Invalidate(ctx context.Context, id string) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, key(id))
}
