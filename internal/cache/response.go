// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	responseKeyPrefix = "api:"

	// DefaultResponseTTL is how long a public response stays cached. It also
	// bounds how long sample data served during a database outage lingers.
	DefaultResponseTTL = time.Minute
)

// Responses caches encoded public API bodies keyed by language and URI.
// A nil *Responses is a valid, always-missing cache.
type Responses struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponses returns a response cache. A zero ttl selects DefaultResponseTTL.
func NewResponses(client *redis.Client, ttl time.Duration) *Responses {
	if client == nil {
		return nil
	}
	if ttl == 0 {
		ttl = DefaultResponseTTL
	}
	return &Responses{client: client, ttl: ttl}
}

// Key builds the cache key for a request URI in a language.
func Key(lang, uri string) string {
	return lang + ":" + uri
}

// Get returns the cached body for key.
func (c *Responses) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, responseKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

// Set stores body under key.
func (c *Responses) Set(ctx context.Context, key string, body []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, responseKeyPrefix+key, body, c.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// Purge drops every cached response. Catalog edits can change navigation,
// listings and the homepage at once, so there is no finer invalidation.
func (c *Responses) Purge(ctx context.Context) {
	if c == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, next, err := c.client.Scan(ctx, cursor, responseKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("response cache purged", "deleted", deleted)
	}
}
