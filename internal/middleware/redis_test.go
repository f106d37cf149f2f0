package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/movies-catalogue/internal/config"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

// pageServer serves GET / with status and body, counting handler calls.
func pageServer(mw echo.MiddlewareFunc, status int, body string) (*echo.Echo, *int) {
	calls := 0
	e := echo.New()
	e.Use(mw)
	e.GET("/", func(c echo.Context) error {
		calls++
		c.Response().Header().Set("X-Movie-List", "popular")
		return c.HTML(status, body)
	})
	return e, &calls
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPageCache_ServesRepeatFromRedis(t *testing.T) {
	mr, rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, TTL: 30 * time.Second, Prefix: "page", MaxBodyBytes: 1 << 20}
	e, calls := pageServer(PageCache(cfg, rdb, quietLog()), http.StatusOK, "<p>movies</p>")

	first := get(e, "/?list_type=popular")
	if first.Header().Get("X-Cache") != "MISS" || *calls != 1 {
		t.Fatalf("first: X-Cache=%q calls=%d", first.Header().Get("X-Cache"), *calls)
	}
	if len(mr.Keys()) != 1 {
		t.Fatalf("keys = %v", mr.Keys())
	}

	second := get(e, "/?list_type=popular")
	if *calls != 1 {
		t.Fatalf("handler called %d times, want 1", *calls)
	}
	if second.Code != http.StatusOK || second.Body.String() != "<p>movies</p>" {
		t.Fatalf("second: status=%d body=%q", second.Code, second.Body.String())
	}
	if second.Header().Get("X-Cache") != "HIT" || second.Header().Get("X-Movie-List") != "popular" {
		t.Fatalf("second headers = %v", second.Header())
	}
	if !strings.HasPrefix(second.Header().Get(echo.HeaderContentType), echo.MIMETextHTML) {
		t.Fatalf("content type = %q", second.Header().Get(echo.HeaderContentType))
	}

	get(e, "/?list_type=upcoming")
	if *calls != 2 {
		t.Fatalf("another list was served from cache")
	}
}

func TestPageCache_SkipsErrorResponses(t *testing.T) {
	mr, rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, TTL: 30 * time.Second, Prefix: "page", MaxBodyBytes: 1 << 20}
	e, calls := pageServer(PageCache(cfg, rdb, quietLog()), http.StatusBadGateway, "upstream down")

	get(e, "/")
	rec := get(e, "/")
	if *calls != 2 || rec.Code != http.StatusBadGateway {
		t.Fatalf("calls=%d status=%d", *calls, rec.Code)
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Fatalf("error page stored: %v", keys)
	}
}

func TestPageCache_SkipsOversizedPages(t *testing.T) {
	mr, rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, TTL: 30 * time.Second, Prefix: "page", MaxBodyBytes: 4}
	e, calls := pageServer(PageCache(cfg, rdb, quietLog()), http.StatusOK, "a long page")

	get(e, "/")
	rec := get(e, "/")
	if *calls != 2 || rec.Body.String() != "a long page" {
		t.Fatalf("calls=%d body=%q", *calls, rec.Body.String())
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Fatalf("oversized page stored: %v", keys)
	}
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.RateLimitConfig{Enabled: true, Limit: 2, Window: time.Hour, Prefix: "rl"}
	e, calls := pageServer(RateLimit(cfg, rdb, quietLog()), http.StatusOK, "ok")

	for i := 1; i <= cfg.Limit; i++ {
		rec := get(e, "/")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
		if got, want := rec.Header().Get("X-RateLimit-Remaining"), strconv.Itoa(cfg.Limit-i); got != want {
			t.Fatalf("request %d: remaining = %q, want %q", i, got, want)
		}
	}

	rec := get(e, "/")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if *calls != cfg.Limit {
		t.Fatalf("handler calls = %d, want %d", *calls, cfg.Limit)
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" || rec.Header().Get("X-RateLimit-Limit") != "2" {
		t.Fatalf("headers = %v", rec.Header())
	}
	secs, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	if err != nil || secs < 1 || secs > 3600 {
		t.Fatalf("Retry-After = %q", rec.Header().Get("Retry-After"))
	}
	if !strings.Contains(rec.Body.String(), `"error":"too many requests"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestRateLimit_CountsPerClient(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.RateLimitConfig{Enabled: true, Limit: 1, Window: time.Hour, Prefix: "rl"}
	e, _ := pageServer(RateLimit(cfg, rdb, quietLog()), http.StatusOK, "ok")

	for _, ip := range []string{"192.0.2.1:1000", "192.0.2.2:1000"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", ip, rec.Code)
		}
	}
}
