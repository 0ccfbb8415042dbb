package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ViewCache is a JSON-backed Redis cache for read model snapshots of type T.
// A zero ttl stores keys without expiry.
type ViewCache[T any] struct {
	client goredis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewViewCache[T any](client goredis.Cmdable, prefix string, ttl time.Duration) *ViewCache[T] {
	return &ViewCache[T]{client: client, prefix: prefix, ttl: ttl}
}

// Get returns (nil, false) on a miss, a Redis failure, or an undecodable entry.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			logrus.WithError(err).WithField("key", c.prefix+key).Warn("ViewCache read failed")
		}
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		logrus.WithError(err).WithField("key", c.prefix+key).Warn("ViewCache entry is corrupt")
		return nil, false
	}
	return &v, true
}

// Set stores value under key. A failed cache write is logged, never returned.
func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		logrus.WithError(err).WithField("key", c.prefix+key).Warn("ViewCache marshal failed")
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", c.prefix+key).Warn("ViewCache write failed")
	}
}

func (c *ViewCache[T]) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		logrus.WithError(err).WithField("key", c.prefix+key).Warn("ViewCache delete failed")
	}
}
