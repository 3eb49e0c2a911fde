package internal

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/rex/pkg/health"
)

const (
	defaultInfoPath      = "/health"
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"

	frameworkName = "rex"
)

type healthConfig struct {
	checks        health.Checks
	infoPath      string
	livenessPath  string
	readinessPath string
	timeout       time.Duration
}

func defaultHealthConfig() *healthConfig {
	return &healthConfig{
		infoPath:      defaultInfoPath,
		livenessPath:  defaultLivenessPath,
		readinessPath: defaultReadinessPath,
	}
}

// HealthOption configures the health endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets the liveness path. Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets the readiness path. Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessTimeout bounds the readiness checks. Defaults to 5s.
func WithReadinessTimeout(d time.Duration) HealthOption {
	return func(c *healthConfig) {
		c.timeout = d
	}
}

// WithReadinessCheck adds a named readiness check. Checks run in parallel.
//
//	rex.WithReadinessCheck("postgres", db.Healthcheck(pool))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}

// HealthInfo is the body of the /health endpoint.
type HealthInfo struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Version   string    `json:"version"`
	Framework string    `json:"framework"`
	Success   bool      `json:"success"`
}

func (a *App) healthInfoHandler(c Context) error {
	return c.JSON(http.StatusOK, HealthInfo{
		Success:   true,
		Message:   "Server is running",
		Timestamp: time.Now().UTC(),
		Version:   a.version,
		Framework: frameworkName,
	})
}

func (a *App) mountHealth() {
	cfg := a.healthConfig
	a.router.Get(cfg.infoPath, a.adaptHandler(a.healthInfoHandler))
	a.router.Get(cfg.livenessPath, health.LivenessHandler())
	a.router.Get(cfg.readinessPath, health.ReadinessHandler(cfg.checks,
		health.WithTimeout(cfg.timeout),
		health.WithLogger(a.logger),
	))
}
