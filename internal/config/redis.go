package config

// Redis backs the optional page cache and the rate limiter.  Both degrade to
// pass-through middleware when NewRedisClient returns nil, so a missing Redis
// never blocks page rendering.

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions builds client options from the environment:
//   REDIS_ADDR host:port (default localhost:6379)
//   REDIS_HOST and REDIS_PORT override REDIS_ADDR when both are set
//   REDIS_PASSWORD optional password
//   REDIS_DB database number (default 0)
//   REDIS_TLS enable TLS when truthy
func RedisOptions() *redis.Options {
	addr := envStr("REDIS_ADDR", "localhost:6379")
	if host, port := envStr("REDIS_HOST", ""), envStr("REDIS_PORT", ""); host != "" && port != "" {
		addr = host + ":" + port
	}
	opts := &redis.Options{
		Addr:         addr,
		Password:     envStr("REDIS_PASSWORD", ""),
		DB:           envInt("REDIS_DB", 0),
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	}
	if envBool("REDIS_TLS", false) {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			ServerName: strings.Split(addr, ":")[0],
		}
	}
	return opts
}

// NewRedisClient connects with RedisOptions and pings the server.  It
// returns nil and the ping error when Redis is unreachable; callers log the
// error and continue without cache and rate limiting.  REDIS_DISABLED skips
// the attempt entirely.
func NewRedisClient(ctx context.Context) (*redis.Client, error) {
	if envBool("REDIS_DISABLED", false) {
		return nil, nil
	}
	client := redis.NewClient(RedisOptions())
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
