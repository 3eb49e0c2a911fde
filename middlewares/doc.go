// Package middlewares provides the standard middleware set for rex applications.
//
// Global middleware runs for every request, including 404s:
//
//	app := rex.New(
//	    rex.WithLogger(log),
//	    rex.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.Logger(),
//	        middlewares.SecurityHeaders(),
//	        middlewares.CORSFromConfig(cfg.CORS),
//	        middlewares.BodyLimit(int64(cfg.Upload.MaxBodySize)),
//	        metrics.Middleware(),
//	    ),
//	)
//
// Route middleware is registered by name and referenced from route
// declarations:
//
//	rex.WithNamedMiddleware("throttle", middlewares.RateLimit(
//	    middlewares.WithRateLimit(cfg.RateLimit.Max, cfg.RateLimit.Window),
//	))
//
//	r.Post("/login", "Auth/SessionController@store", "throttle")
//
// Errors produced here ([RateLimitError], [PanicError]) carry a status code
// and are rendered by the application's error handler.
package middlewares
