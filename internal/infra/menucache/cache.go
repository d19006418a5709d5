// Package menucache stores rendered localized menus keyed by language.
package menucache

import (
	"context"
	"errors"
	"time"

	"menu-app/internal/platform/logger"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache holds serialized menu views. Invalidate drops every entry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Invalidate(ctx context.Context) error
	Close() error
}

// New returns a Redis-backed cache when redisURL is set, otherwise an in-process one.
// A Redis that cannot be reached at startup falls back to memory.
func New(redisURL string, ttl time.Duration, log *logger.Logger) Cache {
	if redisURL == "" {
		return NewMemory(ttl)
	}
	rc, err := NewRedis(redisURL, "menu:", ttl)
	if err != nil {
		log.Warn("redis unavailable, using in-memory menu cache", "error", err)
		return NewMemory(ttl)
	}
	log.Info("menu cache using redis")
	return rc
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error) { return nil, ErrCacheMiss }
func (Noop) Set(context.Context, string, []byte) error { return nil }
func (Noop) Invalidate(context.Context) error { return nil }
func (Noop) Close() error { return nil }
