// Package monitoring exposes Prometheus metrics for the HTTP surface and the
// task workflow.
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service owns the metrics registry and the collectors the handlers feed.
type Service struct {
	registry       *prometheus.Registry
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	transitions    *prometheus.CounterVec
	normalizations *prometheus.CounterVec
}

func NewService() (*Service, error) {
	s := &Service{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ketcher_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ketcher_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ketcher_task_transitions_total",
			Help: "Task state transitions by operation and resulting status.",
		}, []string{"operation", "status"}),
		normalizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ketcher_normalizations_total",
			Help: "Structure normalizations by outcome.",
		}, []string{"outcome"}),
	}
	for _, c := range []prometheus.Collector{
		s.httpRequests,
		s.httpDuration,
		s.transitions,
		s.normalizations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := s.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Middleware records request counts and latency per route template.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.httpRequests.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		s.httpDuration.WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the scrape endpoint.
func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

// RecordTransition counts a successful workflow operation.
func (s *Service) RecordTransition(operation, status string) {
	if s == nil {
		return
	}
	s.transitions.WithLabelValues(operation, status).Inc()
}

// RecordNormalization counts a normalization outcome (pass, fail, timeout).
func (s *Service) RecordNormalization(outcome string) {
	if s == nil {
		return
	}
	s.normalizations.WithLabelValues(outcome).Inc()
}
