package service

import (
	"context"
	"encoding/json"
	"time"

	"sorty/internal/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// AssetCache keeps AssetResponse snapshots keyed by asset code. Cache failures
// are logged and never surface to callers.
type AssetCache interface {
	Get(ctx context.Context, code string) (*dto.AssetResponse, bool)
	Set(ctx context.Context, a *dto.AssetResponse)
	Invalidate(ctx context.Context, codes ...string)
}

const assetCachePrefix = "asset:code:"

type redisAssetCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewAssetCache returns a redis-backed cache, or a no-op cache when rdb is nil.
func NewAssetCache(rdb *redis.Client, ttl time.Duration) AssetCache {
	if rdb == nil {
		return noopAssetCache{}
	}
	return &redisAssetCache{rdb: rdb, ttl: ttl}
}

func (c *redisAssetCache) Get(ctx context.Context, code string) (*dto.AssetResponse, bool) {
	raw, err := c.rdb.Get(ctx, assetCachePrefix+code).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("code", code).Msg("asset cache: get failed")
		}
		return nil, false
	}
	var a dto.AssetResponse
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, false
	}
	return &a, true
}

func (c *redisAssetCache) Set(ctx context.Context, a *dto.AssetResponse) {
	data, err := json.Marshal(a)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, assetCachePrefix+a.Code, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("code", a.Code).Msg("asset cache: set failed")
	}
}

func (c *redisAssetCache) Invalidate(ctx context.Context, codes ...string) {
	if len(codes) == 0 {
		return
	}
	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = assetCachePrefix + code
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("asset cache: invalidate failed")
	}
}

type noopAssetCache struct{}

func (noopAssetCache) Get(context.Context, string) (*dto.AssetResponse, bool) { return nil, false }
func (noopAssetCache) Set(context.Context, *dto.AssetResponse)                {}
func (noopAssetCache) Invalidate(context.Context, ...string)                  {}
