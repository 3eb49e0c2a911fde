package config

import (
	"errors"
	"io/fs"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/rex/pkg/db"
	"github.com/dmitrymomot/rex/pkg/logger"
	"github.com/dmitrymomot/rex/pkg/redis"
)

// Config is the full application configuration.
type Config struct {
	App       App
	CORS      CORS
	RateLimit RateLimit
	Upload    Upload
	Database  db.Config
	Redis     redis.Config
	Sentry    logger.SentryConfig
	Log       logger.Config

	BcryptCost int `env:"BCRYPT_ROUNDS" envDefault:"12"`
}

type App struct {
	Name     string `env:"APP_NAME" envDefault:"rex"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	URL      string `env:"APP_URL"`
	Timezone string `env:"APP_TIMEZONE" envDefault:"UTC"`
	Version  string `env:"APP_VERSION" envDefault:"1.0.0"`
	Port     int    `env:"PORT" envDefault:"3000"`
	Debug    bool   `env:"APP_DEBUG" envDefault:"false"`
}

// IsProduction reports whether APP_ENV is "production".
func (a App) IsProduction() bool {
	return a.Env == "production"
}

type CORS struct {
	Origins     []string `env:"CORS_ORIGIN" envSeparator:"," envDefault:"*"`
	Credentials bool     `env:"CORS_CREDENTIALS" envDefault:"true"`
}

type RateLimit struct {
	Window time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
	Max    int           `env:"RATE_LIMIT_MAX" envDefault:"100"`
}

type Upload struct {
	MaxBodySize ByteSize `env:"UPLOAD_MAX_BODY" envDefault:"10MB"`
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return net.JoinHostPort("", strconv.Itoa(c.App.Port))
}

// Load reads the .env files that exist, then parses the environment into v.
// Missing files are skipped; other read errors are returned.
func Load(v any, files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return errors.Join(ErrLoadEnvFile, err)
		}
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParseEnv, err)
	}
	return nil
}

// MustLoad is Load that panics. Use it at startup only.
func MustLoad(v any, files ...string) {
	if err := Load(v, files...); err != nil {
		panic(err)
	}
}

// Parse parses v from the given variables only, ignoring the process environment.
func Parse(v any, vars map[string]string) error {
	if err := env.ParseWithOptions(v, env.Options{Environment: vars}); err != nil {
		return errors.Join(ErrParseEnv, err)
	}
	return nil
}
