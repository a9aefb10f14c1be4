package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Vitinho0102/LoginDoGameRate/internal/models"
)

const (
	catalogKey = "catalog:steam-games"
	catalogTTL = 30 * time.Minute
)

// NewRedisClient creates and pings a Redis client with optional password auth.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

// CatalogCache keeps the transformed Steam game snapshot in Redis so a
// restart doesn't have to re-fetch the upstream list immediately.
type CatalogCache struct {
	rdb *redis.Client
}

func NewCatalogCache(rdb *redis.Client) *CatalogCache {
	return &CatalogCache{rdb: rdb}
}

// Get returns the cached snapshot, or ErrNotFound when absent or expired.
func (c *CatalogCache) Get(ctx context.Context) ([]models.Game, error) {
	raw, err := c.rdb.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var games []models.Game
	if err := json.Unmarshal(raw, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// Set stores the snapshot with the catalogue TTL.
func (c *CatalogCache) Set(ctx context.Context, games []models.Game) error {
	raw, err := json.Marshal(games)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, catalogKey, raw, catalogTTL).Err()
}
