// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package manga

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/valeXeich/Mangalib/internal/platform/constants"
	"github.com/valeXeich/Mangalib/internal/platform/ctxutil"
)

// Discovery cache keys, namespaced under the shared prefix.
const (
	CacheKeyPopular             = "popular"
	CacheKeyNewest              = "new"
	CacheKeyPopularWithChapters = "popular-chapters"
)

// # Redis Discovery Cache

// discoveryCache implements [DiscoveryCache] on Redis with JSON payloads.
//
// The cache is strictly best-effort: every failure degrades to a SQL
// read, logged at warn level, never surfaced to the caller.
type discoveryCache struct {
	client *redis.Client
}

// NewDiscoveryCache constructs a Redis backed [DiscoveryCache].
func NewDiscoveryCache(client *redis.Client) DiscoveryCache {
	return &discoveryCache{client: client}
}

// Get returns the cached list for a discovery key, and whether the key
// was present and decodable.
func (cache *discoveryCache) Get(context context.Context, key string) ([]*Manga, bool) {

	// Namespaced fetch
	payload, err := cache.client.Get(context, constants.RedisPrefixDiscovery+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			ctxutil.GetLogger(context).Warn("discovery cache read failed",
				slog.String("key", key), slog.String("error", err.Error()))
		}
		return nil, false
	}

	// Payload decoding
	var mangas []*Manga
	if err := json.Unmarshal(payload, &mangas); err != nil {
		ctxutil.GetLogger(context).Warn("discovery cache payload corrupt",
			slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}

	return mangas, true
}

// Set stores a discovery list under the key with the standard TTL.
func (cache *discoveryCache) Set(context context.Context, key string, mangas []*Manga) {

	// Payload encoding
	payload, err := json.Marshal(mangas)
	if err != nil {
		ctxutil.GetLogger(context).Warn("discovery cache encode failed",
			slog.String("key", key), slog.String("error", err.Error()))
		return
	}

	// TTL-bounded write
	err = cache.client.Set(context,
		constants.RedisPrefixDiscovery+key, payload, constants.RedisDiscoveryTTL).Err()
	if err != nil {
		ctxutil.GetLogger(context).Warn("discovery cache write failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
}
