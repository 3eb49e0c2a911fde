// Package redis opens go-redis clients from environment configuration.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//
//	presence := validator.CachedPresence(db.Presence(pool),
//	    cache.NewRedis(client, cache.JSONMarshaler[bool]{}, cache.WithPrefix("presence")),
//	    30*time.Second)
//
//	app := rex.New(
//	    rex.WithPresenceChecker(presence),
//	    rex.WithHealthChecks(rex.WithReadinessCheck("redis", redis.Healthcheck(client))),
//	)
//	app.Run(addr, rex.ShutdownHook(redis.Shutdown(client)))
//
// Only redis:// and rediss:// URLs are accepted.
package redis
