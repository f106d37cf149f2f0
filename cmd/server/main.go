package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iliyamo/movies-catalogue/internal/config"
	"github.com/iliyamo/movies-catalogue/internal/handler"
	"github.com/iliyamo/movies-catalogue/internal/logger"
	"github.com/iliyamo/movies-catalogue/internal/metrics"
	"github.com/iliyamo/movies-catalogue/internal/middleware"
	"github.com/iliyamo/movies-catalogue/internal/queue"
	"github.com/iliyamo/movies-catalogue/internal/render"
	"github.com/iliyamo/movies-catalogue/internal/router"
	"github.com/iliyamo/movies-catalogue/internal/service"
	"github.com/iliyamo/movies-catalogue/internal/telemetry"
	"github.com/iliyamo/movies-catalogue/internal/tmdb"
)

const serviceName = "movies-catalogue"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(serviceName, "info").WithError(err).Fatal("load config")
	}
	log := logger.New(serviceName, cfg.LogLevel).WithField("env", cfg.Env)

	if enabled, err := telemetry.InitSentry(cfg.SentryDSN, serviceName, cfg.Env, cfg.Release); err != nil {
		log.WithError(err).Warn("sentry disabled")
	} else if enabled {
		defer telemetry.Flush(2 * time.Second)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	client, err := tmdb.NewClient(tmdb.Config{
		Token:    cfg.TMDBToken,
		BaseURL:  cfg.TMDBBaseURL,
		Timeout:  cfg.TMDBTimeout,
		Observer: m.ObserveUpstream,
	})
	if err != nil {
		log.WithError(err).Fatal("create movie database client")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis is optional: without it the cache and rate limiter step aside.
	rdb, err := config.NewRedisClient(ctx)
	if err != nil {
		log.WithError(err).Warn("redis unavailable; cache and rate limit disabled")
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	renderer, err := render.New()
	if err != nil {
		log.WithError(err).Fatal("parse templates")
	}

	var events handler.ViewPublisher
	if cfg.Events.Enabled {
		events = &service.Publisher{URL: cfg.Events.URL, Queue: cfg.Events.Queue, Log: log}
		consumer := &queue.ViewConsumer{
			URL:    cfg.Events.URL,
			Queue:  cfg.Events.Queue,
			LogDir: cfg.Events.LogDir,
			Log:    log.WithField("component", "view-consumer"),
		}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("view consumer stopped")
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(log))
	e.Use(m.Middleware())

	movies := handler.NewMovieHandler(client, nil, log, events, telemetry.CaptureError)
	router.RegisterRoutes(e, &handler.HealthHandler{Redis: rdb}, metrics.Handler(prometheus.DefaultGatherer))
	public := []echo.MiddlewareFunc{
		middleware.RateLimit(cfg.RateLimit, rdb, log),
		middleware.PageCache(cfg.Cache, rdb, log),
	}
	router.RegisterPages(e, movies, public...)
	router.RegisterAPI(e, movies, public...)

	addr := ":" + cfg.Port
	go func() {
		log.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
	log.Info("stopped")
}
