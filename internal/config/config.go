package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable; Load documents the names and defaults.
type Config struct {
	Env         string        // application environment (e.g. "dev", "prod")
	Port        string        // HTTP port to listen on
	LogLevel    string        // logrus level name
	TMDBToken   string        // bearer token for the movie catalog API
	TMDBBaseURL string        // API root; empty means the public endpoint
	TMDBTimeout time.Duration // bound on every upstream request
	SentryDSN   string        // empty disables error reporting
	Release     string        // build identifier reported to Sentry
	Cache       CacheConfig
	RateLimit   RateLimitConfig
	Events      EventsConfig
}

// Load reads an optional .env file (ENV_FILE, default ".env") and then the
// process environment.  Values already present in the environment win over
// the file.  TMDB_API_TOKEN is required; every other variable has a default.
func Load() (Config, error) {
	envFile := envStr("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read %s: %w", envFile, err)
	}

	var missing []string
	must := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := Config{
		Env:         envStr("APP_ENV", "dev"),
		Port:        envStr("APP_PORT", "8080"),
		LogLevel:    envStr("LOG_LEVEL", "info"),
		TMDBToken:   must("TMDB_API_TOKEN"),
		TMDBBaseURL: envStr("TMDB_BASE_URL", ""),
		TMDBTimeout: envDur("TMDB_TIMEOUT", 10*time.Second),
		SentryDSN:   envStr("SENTRY_DSN", ""),
		Release:     envStr("APP_RELEASE", "dev"),
		Cache:       LoadCacheConfig(),
		RateLimit:   LoadRateLimitConfig(),
		Events:      LoadEventsConfig(),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required env var: %s", strings.Join(missing, ", "))
	}
	if cfg.TMDBTimeout <= 0 {
		cfg.TMDBTimeout = 10 * time.Second
	}
	return cfg, nil
}
