package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/college-portal-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for the portal API.
type MetricsService struct {
	registry            *prometheus.Registry
	handler             http.Handler
	requestDuration     *prometheus.HistogramVec
	requestTotal        *prometheus.CounterVec
	resolutions         *prometheus.CounterVec
	redirects           *prometheus.CounterVec
	visitorSync         *prometheus.CounterVec
	stateStoreDuration  *prometheus.HistogramVec
	notificationsUnread prometheus.Gauge
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "role", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "role", "status"})

	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "navigation_resolutions_total",
		Help: "Render decisions by outcome",
	}, []string{"outcome"})

	redirects := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "navigation_redirects_total",
		Help: "Forced navigation redirects persisted by reconciliation",
	}, []string{"reason"})

	visitorSync := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "visitor_sync_total",
		Help: "Best-effort visitor upserts by result",
	}, []string{"result"})

	stateStoreDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "state_store_duration_seconds",
		Help:    "Latency of navigation state store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	notificationsUnread := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "notifications_unread",
		Help: "Unread notifications held in memory across principals",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, resolutions, redirects, visitorSync, stateStoreDuration, notificationsUnread, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:            registry,
		handler:             handler,
		requestDuration:     requestDuration,
		requestTotal:        requestTotal,
		resolutions:         resolutions,
		redirects:           redirects,
		visitorSync:         visitorSync,
		stateStoreDuration:  stateStoreDuration,
		notificationsUnread: notificationsUnread,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry returns the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics. role is the caller's portal role, or "anonymous".
func (m *MetricsService) ObserveHTTPRequest(method, path, role string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, role, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, role, labelStatus).Inc()
}

// RecordResolution counts a render decision.
func (m *MetricsService) RecordResolution(outcome models.RenderOutcome) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(string(outcome)).Inc()
}

// RecordRedirect counts a forced redirect.
func (m *MetricsService) RecordRedirect(reason models.TransitionReason) {
	if m == nil {
		return
	}
	m.redirects.WithLabelValues(string(reason)).Inc()
}

// RecordVisitorSync counts the result of a background visitor upsert.
func (m *MetricsService) RecordVisitorSync(result string) {
	if m == nil {
		return
	}
	m.visitorSync.WithLabelValues(result).Inc()
}

// ObserveStateStore tracks state store latency for an operation.
func (m *MetricsService) ObserveStateStore(op string, duration time.Duration) {
	if m == nil {
		return
	}
	m.stateStoreDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// AddUnreadNotifications adjusts the unread notification gauge.
func (m *MetricsService) AddUnreadNotifications(delta int) {
	if m == nil {
		return
	}
	m.notificationsUnread.Add(float64(delta))
}
