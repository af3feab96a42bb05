// SPDX-License-Identifier: MIT
package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MetricRequests counts API requests by route, method and status
	MetricRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palettekitty_http_requests_total",
		Help: "Total API requests by route, method and status",
	}, []string{"route", "method", "status"})

	// MetricDuration tracks request duration by route
	MetricDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "palettekitty_http_request_duration_seconds",
		Help:    "API request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"route"})

	// MetricOperations counts catalog operations by result
	MetricOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palettekitty_catalog_operations_total",
		Help: "Catalog operations by operation and result",
	}, []string{"op", "result"})

	// MetricImported counts imported palettes by outcome
	MetricImported = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palettekitty_import_records_total",
		Help: "Imported palette records by outcome",
	}, []string{"outcome"})

	// MetricRateLimited counts requests rejected by the rate limiter
	MetricRateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "palettekitty_rate_limited_total",
		Help: "Total API requests rejected by the rate limiter",
	})

	// MetricPalettes tracks the catalog size after the last mutation
	MetricPalettes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "palettekitty_palettes",
		Help: "Palettes in the catalog",
	})
)

// metricsMiddleware records request counts and latency per route template
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		MetricRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		MetricDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func countRateLimited(*gin.Context) {
	MetricRateLimited.Inc()
}

func observeOp(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	MetricOperations.WithLabelValues(op, result).Inc()
}
