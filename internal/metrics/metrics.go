// Package metrics provides Prometheus instrumentation for the web front-end.
//
// Metrics:
//   catalogue_http_requests_total            counter: inbound requests by method/route/status
//   catalogue_http_request_duration_seconds  histogram: inbound latency by method/route
//   catalogue_upstream_requests_total        counter: catalog API calls by op/status
//   catalogue_upstream_request_duration_seconds histogram: catalog API latency by op
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors registered by New.
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.  Pass
// prometheus.NewRegistry() in tests to stay off the default registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalogue_http_requests_total",
			Help: "Total HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalogue_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalogue_upstream_requests_total",
			Help: "Movie catalog API requests by operation and status.",
		}, []string{"op", "status"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalogue_upstream_request_duration_seconds",
			Help:    "Movie catalog API latency in seconds.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"op"}),
	}
	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.UpstreamRequests, m.UpstreamDuration)
	return m
}

// ObserveUpstream records one catalog API round trip.  Its signature matches
// tmdb.RequestObserver.
func (m *Metrics) ObserveUpstream(op string, status int, elapsed time.Duration) {
	label := "error"
	if status != 0 {
		label = strconv.Itoa(status)
	}
	m.UpstreamRequests.WithLabelValues(op, label).Inc()
	m.UpstreamDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// Middleware records request counts and latency.  The route label is the
// registered path template (e.g. "/movie/:movie_id"), never the raw URL.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler exposes g for Prometheus scraping.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
