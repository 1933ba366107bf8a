// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package chapter

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/valeXeich/Mangalib/internal/platform/constants"
	"github.com/valeXeich/Mangalib/internal/platform/ctxutil"
)

// cacheKeyLatest addresses the latest-chapters feed under the shared
// discovery prefix.
const cacheKeyLatest = constants.RedisPrefixDiscovery + "latest-chapters"

// # Redis Latest-Feed Cache

// latestCache implements [LatestCache] on Redis with JSON payloads.
// Best-effort: failures degrade to a SQL read.
type latestCache struct {
	client *redis.Client
}

// NewLatestCache constructs a Redis backed [LatestCache].
func NewLatestCache(client *redis.Client) LatestCache {
	return &latestCache{client: client}
}

// Get returns the cached feed and whether it was present and decodable.
func (cache *latestCache) Get(context context.Context) ([]*Chapter, bool) {

	payload, err := cache.client.Get(context, cacheKeyLatest).Bytes()
	if err != nil {
		if err != redis.Nil {
			ctxutil.GetLogger(context).Warn("latest-chapters cache read failed",
				slog.String("error", err.Error()))
		}
		return nil, false
	}

	var chapters []*Chapter
	if err := json.Unmarshal(payload, &chapters); err != nil {
		ctxutil.GetLogger(context).Warn("latest-chapters cache payload corrupt",
			slog.String("error", err.Error()))
		return nil, false
	}

	return chapters, true
}

// Set stores the feed with the standard TTL.
func (cache *latestCache) Set(context context.Context, chapters []*Chapter) {

	payload, err := json.Marshal(chapters)
	if err != nil {
		ctxutil.GetLogger(context).Warn("latest-chapters cache encode failed",
			slog.String("error", err.Error()))
		return
	}

	err = cache.client.Set(context, cacheKeyLatest, payload, constants.RedisDiscoveryTTL).Err()
	if err != nil {
		ctxutil.GetLogger(context).Warn("latest-chapters cache write failed",
			slog.String("error", err.Error()))
	}
}
