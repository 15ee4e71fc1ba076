// Package cache keeps the investigation stats payload in redis so the
// dashboard poll does not run an aggregate query on every tick.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"safety_reports/internal/config"
	"safety_reports/internal/services"
)

const statsKey = "safety_reports:investigation_stats"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewClient connects to redis and pings it once.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// StatsCache implements services.StatsCache. Redis failures are logged and
// treated as misses; the database stays the source of truth.
type StatsCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewStatsCache(client redis.Cmdable, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

func (c *StatsCache) Get(ctx context.Context) (*services.Stats, bool) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logrus.WithError(err).Warn("stats cache: get failed")
		}
		return nil, false
	}
	var s services.Stats
	if err := json.Unmarshal(raw, &s); err != nil {
		logrus.WithError(err).Warn("stats cache: dropping undecodable entry")
		c.Invalidate(ctx)
		return nil, false
	}
	return &s, true
}

func (c *StatsCache) Set(ctx context.Context, s *services.Stats) {
	raw, err := json.Marshal(s)
	if err != nil {
		logrus.WithError(err).Warn("stats cache: encode failed")
		return
	}
	if err := c.client.Set(ctx, statsKey, raw, c.ttl).Err(); err != nil {
		logrus.WithError(err).Warn("stats cache: set failed")
	}
}

func (c *StatsCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, statsKey).Err(); err != nil {
		logrus.WithError(err).Warn("stats cache: invalidate failed")
	}
}
