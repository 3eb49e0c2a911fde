// Package health runs named readiness checks and serves liveness and
// readiness probes.
//
// Checks are plain func(context.Context) error closures, so the
// healthchecks exported by the db and redis packages plug in directly:
//
//	checks := health.Checks{
//	    "postgres": db.Healthcheck(pool),
//	    "redis":    redis.Healthcheck(client),
//	}
//	r.Get("/health/ready", health.ReadinessHandler(checks, health.WithTimeout(3*time.Second)))
//
// Probes answer in plain text ("OK" or "Service Unavailable") unless the
// client asks for JSON through the Accept header or ?format=json:
//
//	{
//	  "status": "unhealthy",
//	  "success": false,
//	  "checks": {
//	    "postgres": {"status": "healthy", "duration_ms": 2},
//	    "redis": {"status": "unhealthy", "error": "health: check timeout", "duration_ms": 3000}
//	  }
//	}
//
// [Run] executes the checks without HTTP, which is what the CLI uses.
package health
