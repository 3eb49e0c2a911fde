package validator

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/rex/pkg/cache"
)

// PresenceChecker answers whether a row with column equal to value exists in table.
// It backs the unique and exists rules and is typically implemented over a database.
type PresenceChecker interface {
	Exists(ctx context.Context, table, column string, value any) (bool, error)
}

// PresenceFunc adapts a function to PresenceChecker.
type PresenceFunc func(ctx context.Context, table, column string, value any) (bool, error)

// Exists implements PresenceChecker.
func (f PresenceFunc) Exists(ctx context.Context, table, column string, value any) (bool, error) {
	return f(ctx, table, column, value)
}

// CachedPresence wraps a PresenceChecker with a cache.
// Concurrent lookups for the same key share one call to the underlying checker.
// Keep ttl short: a cached "not found" lets a just-inserted duplicate pass unique.
func CachedPresence(next PresenceChecker, c cache.Cache[bool], ttl time.Duration) PresenceChecker {
	return PresenceFunc(func(ctx context.Context, table, column string, value any) (bool, error) {
		key := presenceKey(table, column, value)
		return cache.GetOrSet(ctx, c, key, func(ctx context.Context) (bool, time.Duration, error) {
			found, err := next.Exists(ctx, table, column, value)
			return found, ttl, err
		})
	})
}

func presenceKey(table, column string, value any) string {
	s, ok := stringOf(value)
	if !ok {
		s = fmt.Sprintf("%v", value)
	}
	return "presence:" + table + ":" + column + ":" + s
}
