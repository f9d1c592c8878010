package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	rankingsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rankings_total",
			Help: "Total number of ranking requests served",
		},
	)

	agentsScoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agents_scored_total",
			Help: "Total number of candidate agents scored",
		},
	)

	rankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ranking_duration_seconds",
			Help:    "Time spent scoring one ranking batch",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	placeResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "place_resolutions_total",
			Help: "Free-text place resolutions by outcome",
		},
		[]string{"outcome"}, // resolved, unresolved
	)
)

// PrometheusMiddleware records HTTP request metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		path := ctx.FullPath()
		if path == "/metrics" || path == "/health" {
			ctx.Next()
			return
		}
		if path == "" {
			path = ctx.Request.URL.Path
		}

		httpRequestsInFlight.Inc()
		start := time.Now()

		ctx.Next()

		httpRequestsInFlight.Dec()
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(ctx.Writer.Status())

		httpRequestsTotal.WithLabelValues(ctx.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(ctx.Request.Method, path).Observe(duration)
	}
}

// MetricsHandler returns the Prometheus scrape handler.
func MetricsHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(ctx *gin.Context) {
		h.ServeHTTP(ctx.Writer, ctx.Request)
	}
}

// RecordRanking records one served ranking batch.
func RecordRanking(agents int, elapsed time.Duration) {
	rankingsTotal.Inc()
	agentsScoredTotal.Add(float64(agents))
	rankingDuration.Observe(elapsed.Seconds())
}

// RecordPlaceResolution records a resolver outcome.
func RecordPlaceResolution(resolved bool) {
	outcome := "resolved"
	if !resolved {
		outcome = "unresolved"
	}
	placeResolutionsTotal.WithLabelValues(outcome).Inc()
}
