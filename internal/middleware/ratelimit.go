package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/movies-catalogue/internal/config"
)

// RateLimit allows cfg.Limit requests per client IP in each cfg.Window.
// Counters live in Redis (INCR + EXPIRE on a key per window), so the limit
// holds across replicas.  Without Redis, or when Redis fails, requests pass.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client, log *logrus.Entry) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passThrough
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()
			key, reset := windowKey(cfg, c.RealIP(), now)

			count, err := hit(c.Request().Context(), rdb, key, cfg.Window)
			if err != nil {
				log.WithError(err).WithField("key", key).Warn("rate limit unavailable")
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(cfg.Limit)-count), 10))
			if count > int64(cfg.Limit) {
				h.Set("Retry-After", strconv.Itoa(retryAfter(reset, now)))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many requests"})
			}
			return next(c)
		}
	}
}

// windowKey returns prefix:ip:windowStart and the time the window ends.
func windowKey(cfg config.RateLimitConfig, ip string, now time.Time) (string, time.Time) {
	if ip == "" {
		ip = "unknown"
	}
	start := now.Truncate(cfg.Window)
	return cfg.Prefix + ":" + ip + ":" + strconv.FormatInt(start.Unix(), 10), start.Add(cfg.Window)
}

func hit(ctx context.Context, rdb *redis.Client, key string, window time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		p.Expire(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// retryAfter is whole seconds until reset, at least one.
func retryAfter(reset, now time.Time) int {
	secs := int((reset.Sub(now) + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}
