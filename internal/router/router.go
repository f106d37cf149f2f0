// Package router registers the HTTP routes on an echo instance.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movies-catalogue/internal/handler"
)

// RegisterRoutes registers the operational endpoints: the health probe and
// the Prometheus scrape handler.  metrics may be nil.
func RegisterRoutes(e *echo.Echo, health *handler.HealthHandler, metrics http.Handler) {
	e.GET("/healthz", health.Health)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}
}

// RegisterPages registers the HTML pages.  mw applies to these routes only,
// so probes and scrapes never hit the rate limiter or the page cache.
func RegisterPages(e *echo.Echo, m *handler.MovieHandler, mw ...echo.MiddlewareFunc) {
	e.GET("/", m.Homepage, mw...)
	e.GET("/movie/:movie_id", m.MovieDetail, mw...)
}

// RegisterAPI registers the JSON endpoints under /api with route-level mw.
func RegisterAPI(e *echo.Echo, m *handler.MovieHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/api")
	g.GET("/movies", m.APIMovies, mw...)
	g.GET("/movies/sample", m.APISample, mw...)
	g.GET("/lists", m.APILists, mw...)
}
