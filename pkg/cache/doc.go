// Package cache provides a generic key-value cache with in-memory and Redis backends.
//
// Both backends implement [Cache]. The rate limiter keeps its per-client
// limiters in a [Memory] cache, and the validator can memoise unique/exists
// lookups through any Cache[bool].
//
//	c := cache.NewMemory[string](
//	    cache.WithDefaultTTL(5*time.Minute),
//	    cache.WithCapacity(10_000),
//	)
//	defer c.Close()
//
//	_ = c.Set(ctx, "greeting", "hello", 0) // default TTL
//	v, err := c.Get(ctx, "greeting")
//
// Redis values are JSON-encoded unless a [Marshaler] is supplied:
//
//	users := cache.NewRedis[User](client, nil, cache.WithPrefix("users"))
//
// [GetOrSet] collapses concurrent misses for the same key into a single
// computation:
//
//	u, err := cache.GetOrSet(ctx, users, id, func(ctx context.Context) (User, time.Duration, error) {
//	    u, err := store.Find(ctx, id)
//	    return u, 10 * time.Minute, err
//	})
package cache
