package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a typed key-value store with per-entry TTL.
//
// TTL passed to Set: positive expires after the duration, zero applies the
// backend default, negative never expires.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context) error
	Close() error
}

// Marshaler converts values to and from bytes for remote backends.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

// JSONMarshaler is the default Marshaler.
type JSONMarshaler[V any] struct{}

func (JSONMarshaler[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (JSONMarshaler[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

var flights singleflight.Group

// GetOrSet returns the cached value for key or computes, stores and returns it.
// Concurrent misses on the same cache and key share one call to fn, and the
// value is stored before the shared call completes, so late arrivals hit the cache.
// Errors from fn are returned and nothing is stored.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, fn func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	// The cache identity is part of the flight key: two caches with
	// different value types must never share a result.
	flightKey := fmt.Sprintf("%p|%s", c, key)
	res, err, _ := flights.Do(flightKey, func() (any, error) {
		if v, err := c.Get(ctx, key); err == nil {
			return v, nil
		}
		v, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		// Storing is best effort; the computed value is still returned.
		_ = c.Set(ctx, key, v, ttl)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}
