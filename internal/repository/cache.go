package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/config"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/metrics"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/logging"
)

const (
	comandaKeyPrefix = "comanda:"
	defaultCacheTTL  = 5 * time.Minute
)

// RedisComandaCache implements ComandaCache using Redis.
type RedisComandaCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewRedisComandaCache creates a new Redis-based comanda cache.
func NewRedisComandaCache(cfg config.RedisConfig) *RedisComandaCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &RedisComandaCache{
		client: client,
		ttl:    ttl,
		logger: logging.New("comanda-cache"),
	}
}

// Get retrieves a comanda from cache. A miss returns (nil, nil).
func (c *RedisComandaCache) Get(ctx context.Context, id string) (*models.Comanda, error) {
	key := comandaKeyPrefix + id

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		metrics.CacheMisses.Inc()
		c.logger.Debug("Cache miss", logging.Fields{"comanda_id": id})
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Cache get error", logging.Fields{
			"comanda_id": id,
			"error":      err.Error(),
		})
		return nil, err
	}

	var comanda models.Comanda
	if err := json.Unmarshal(data, &comanda); err != nil {
		return nil, err
	}

	metrics.CacheHits.Inc()
	c.logger.Debug("Cache hit", logging.Fields{"comanda_id": id})
	return &comanda, nil
}

// Set stores a comanda in cache.
func (c *RedisComandaCache) Set(ctx context.Context, comanda *models.Comanda) error {
	key := comandaKeyPrefix + comanda.ID

	data, err := json.Marshal(comanda)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Error("Cache set error", logging.Fields{
			"comanda_id": comanda.ID,
			"error":      err.Error(),
		})
		return err
	}
	return nil
}

// Delete removes a comanda from cache.
func (c *RedisComandaCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, comandaKeyPrefix+id).Err(); err != nil {
		c.logger.Error("Cache delete error", logging.Fields{
			"comanda_id": id,
			"error":      err.Error(),
		})
		return err
	}
	return nil
}
