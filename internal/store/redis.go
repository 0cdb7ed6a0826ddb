package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/avlok/vidfeed_server/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	trendingChannelsKey = "home:trending_channels"
	platformStatsKey    = "home:stats"

	homeCacheTTL = 60 * time.Second
)

func ConnectRedis() (*redis.Client, error) {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
		Protocol: 2,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	return client, nil
}

// RedisHomeCache keeps the home-page sidebar (trending channels, platform
// stats) out of the Postgres request path. Entries expire after a minute;
// a miss falls through to the underlying stores.
type RedisHomeCache struct {
	client *redis.Client
}

func NewRedisHomeCache(client *redis.Client) *RedisHomeCache {
	return &RedisHomeCache{client: client}
}

type HomeCache interface {
	GetTrendingChannels(ctx context.Context) ([]models.Channel, bool)
	SetTrendingChannels(ctx context.Context, channels []models.Channel) error
	GetPlatformStats(ctx context.Context) (*PlatformStats, bool)
	SetPlatformStats(ctx context.Context, stats *PlatformStats) error
}

func (rc *RedisHomeCache) GetTrendingChannels(ctx context.Context) ([]models.Channel, bool) {
	payload, err := rc.client.Get(ctx, trendingChannelsKey).Bytes()
	if err != nil {
		return nil, false
	}

	var channels []models.Channel
	if err := json.Unmarshal(payload, &channels); err != nil {
		return nil, false
	}

	return channels, true
}

func (rc *RedisHomeCache) SetTrendingChannels(ctx context.Context, channels []models.Channel) error {
	payload, err := json.Marshal(channels)
	if err != nil {
		return fmt.Errorf("failed to encode trending channels: %w", err)
	}

	if err := rc.client.Set(ctx, trendingChannelsKey, payload, homeCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache trending channels: %w", err)
	}

	return nil
}

func (rc *RedisHomeCache) GetPlatformStats(ctx context.Context) (*PlatformStats, bool) {
	payload, err := rc.client.Get(ctx, platformStatsKey).Bytes()
	if err != nil {
		return nil, false
	}

	var stats PlatformStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil, false
	}

	return &stats, true
}

func (rc *RedisHomeCache) SetPlatformStats(ctx context.Context, stats *PlatformStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode platform stats: %w", err)
	}

	if err := rc.client.Set(ctx, platformStatsKey, payload, homeCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache platform stats: %w", err)
	}

	return nil
}
