// Package cache кеширует ответы статистики в Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iurnickita/autosalon/internal/cache/config"
	"github.com/iurnickita/autosalon/internal/model"
)

const (
	keyAutoSalon = "stats:autosalon"
	keySupplier  = "stats:supplier"
	keyCustomer  = "stats:customer"
)

// StatsSource - источник статистики (хранилище)
type StatsSource interface {
	StatsAutoSalon(ctx context.Context) ([]model.AutoSalonStats, error)
	StatsSupplier(ctx context.Context) ([]model.SupplierStats, error)
	StatsCustomer(ctx context.Context) (model.CustomerStats, error)
}

type Stats interface {
	StatsSource
	// Invalidate drops every cached stats answer.
	Invalidate(ctx context.Context)
}

func ConnectRedis(cfg config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

type cachedStats struct {
	source StatsSource
	redis  *redis.Client
	ttl    time.Duration
	zaplog *zap.Logger
}

// NewCachedStats wraps source with a read-through cache. A nil client disables caching.
func NewCachedStats(source StatsSource, rdb *redis.Client, ttl time.Duration, zaplog *zap.Logger) Stats {
	return &cachedStats{
		source: source,
		redis:  rdb,
		ttl:    ttl,
		zaplog: zaplog,
	}
}

func (c *cachedStats) StatsAutoSalon(ctx context.Context) ([]model.AutoSalonStats, error) {
	return readThrough(ctx, c, keyAutoSalon, c.source.StatsAutoSalon)
}

func (c *cachedStats) StatsSupplier(ctx context.Context) ([]model.SupplierStats, error) {
	return readThrough(ctx, c, keySupplier, c.source.StatsSupplier)
}

func (c *cachedStats) StatsCustomer(ctx context.Context) (model.CustomerStats, error) {
	return readThrough(ctx, c, keyCustomer, c.source.StatsCustomer)
}

func (c *cachedStats) Invalidate(ctx context.Context) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, keyAutoSalon, keySupplier, keyCustomer).Err(); err != nil {
		c.zaplog.Warn("failed to invalidate stats cache", zap.Error(err))
	}
}

// readThrough: ошибки Redis не ломают запрос, идем в источник
func readThrough[T any](ctx context.Context, c *cachedStats, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if c.redis == nil {
		return load(ctx)
	}

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
		c.zaplog.Warn("failed to unmarshal cached stats", zap.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		c.zaplog.Warn("redis error, continuing with database", zap.String("key", key), zap.Error(err))
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	data, err = json.Marshal(v)
	if err != nil {
		c.zaplog.Warn("failed to marshal stats", zap.String("key", key), zap.Error(err))
		return v, nil
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.zaplog.Warn("failed to cache stats", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}
