// ABOUTME: Prometheus metrics for the HTTP API and blog operations
// ABOUTME: Each Collector owns its registry so instances never collide

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Business metrics
	OwnersRegistered prometheus.Counter
	LoginAttempts    *prometheus.CounterVec
	PostsCreated     prometheus.Counter
	PostsDeleted     prometheus.Counter
	PostsLiked       prometheus.Counter

	// BackReferenceFailures counts writes that left a post and its owner's
	// post list out of step.
	BackReferenceFailures *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry, including the Go
// runtime and process collectors.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		OwnersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "owners_registered_total",
			Help:      "Total number of owners registered",
		}),
		LoginAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "login_attempts_total",
				Help:      "Total number of login attempts by result",
			},
			[]string{"result"},
		),
		PostsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_created_total",
			Help:      "Total number of posts created",
		}),
		PostsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_deleted_total",
			Help:      "Total number of posts deleted",
		}),
		PostsLiked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_liked_total",
			Help:      "Total number of unauthenticated post overwrites",
		}),
		BackReferenceFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "back_reference_failures_total",
				Help:      "Owner post-list writes that failed after the post write succeeded",
			},
			[]string{"operation"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.HTTPRequests,
		c.HTTPDuration,
		c.OwnersRegistered,
		c.LoginAttempts,
		c.PostsCreated,
		c.PostsDeleted,
		c.PostsLiked,
		c.BackReferenceFailures,
	)

	return c
}

// Registry returns the registry the collector's metrics live in.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency labelled by chi route pattern.
func (c *Collector) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if c == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			c.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			c.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

// RecordOwnerRegistered counts a successful registration.
func (c *Collector) RecordOwnerRegistered() {
	if c == nil {
		return
	}
	c.OwnersRegistered.Inc()
}

// RecordLogin counts a login attempt.
func (c *Collector) RecordLogin(success bool) {
	if c == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	c.LoginAttempts.WithLabelValues(result).Inc()
}

// RecordPostCreated counts a created post.
func (c *Collector) RecordPostCreated() {
	if c == nil {
		return
	}
	c.PostsCreated.Inc()
}

// RecordPostDeleted counts a deleted post.
func (c *Collector) RecordPostDeleted() {
	if c == nil {
		return
	}
	c.PostsDeleted.Inc()
}

// RecordPostLiked counts an overwrite through the unauthenticated path.
func (c *Collector) RecordPostLiked() {
	if c == nil {
		return
	}
	c.PostsLiked.Inc()
}

// RecordBackReferenceFailure counts a failed owner post-list write.
func (c *Collector) RecordBackReferenceFailure(operation string) {
	if c == nil {
		return
	}
	c.BackReferenceFailures.WithLabelValues(operation).Inc()
}
