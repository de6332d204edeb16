package observability

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects and aggregates per-route request metrics.
type Metrics struct {
	mu sync.Mutex

	requestTotal  atomic.Int64
	requestFailed atomic.Int64

	routeMetrics map[string]*RouteMetrics
}

// RouteMetrics represents metrics for a specific route.
type RouteMetrics struct {
	requestCount  atomic.Int64
	totalDuration atomic.Int64 // milliseconds
	errorCount    atomic.Int64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		routeMetrics: make(map[string]*RouteMetrics),
	}
}

var globalMetrics = NewMetrics()

// GlobalMetrics returns the global metrics instance.
func GlobalMetrics() *Metrics {
	return globalMetrics
}

// RecordRequest records a request for the given route.
func (m *Metrics) RecordRequest(route string) {
	m.requestTotal.Add(1)
	m.getRouteMetrics(route).requestCount.Add(1)
}

// RecordFailure records a failed request for the given route.
func (m *Metrics) RecordFailure(route string) {
	m.requestFailed.Add(1)
	m.getRouteMetrics(route).errorCount.Add(1)
}

// RecordDuration records a request duration for the given route.
func (m *Metrics) RecordDuration(route string, duration time.Duration) {
	m.getRouteMetrics(route).totalDuration.Add(duration.Milliseconds())
}

// GetRequestTotal returns the total number of requests.
func (m *Metrics) GetRequestTotal() int64 {
	return m.requestTotal.Load()
}

// GetRequestFailed returns the total number of failed requests.
func (m *Metrics) GetRequestFailed() int64 {
	return m.requestFailed.Load()
}

func (m *Metrics) getRouteMetrics(route string) *RouteMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	rm, ok := m.routeMetrics[route]
	if !ok {
		rm = &RouteMetrics{}
		m.routeMetrics[route] = rm
	}
	return rm
}

// Reset resets all metrics (useful for testing).
func (m *Metrics) Reset() {
	m.requestTotal.Store(0)
	m.requestFailed.Store(0)

	m.mu.Lock()
	m.routeMetrics = make(map[string]*RouteMetrics)
	m.mu.Unlock()
}

// Snapshot returns a point-in-time snapshot of current metrics.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	routeSnapshots := make(map[string]*RouteMetricsSnapshot, len(m.routeMetrics))
	for route, rm := range m.routeMetrics {
		count := rm.requestCount.Load()
		total := rm.totalDuration.Load()
		var average int64
		if count > 0 {
			average = total / count
		}
		routeSnapshots[route] = &RouteMetricsSnapshot{
			RequestCount:    count,
			TotalDuration:   total,
			ErrorCount:      rm.errorCount.Load(),
			AverageDuration: average,
		}
	}

	return &MetricsSnapshot{
		RequestTotal:  m.requestTotal.Load(),
		RequestFailed: m.requestFailed.Load(),
		RouteMetrics:  routeSnapshots,
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	RequestTotal  int64                           `json:"requestTotal"`
	RequestFailed int64                           `json:"requestFailed"`
	RouteMetrics  map[string]*RouteMetricsSnapshot `json:"routes"`
}

// RouteMetricsSnapshot represents metrics for a specific route.
type RouteMetricsSnapshot struct {
	RequestCount    int64 `json:"requestCount"`
	TotalDuration   int64 `json:"totalDurationMs"`
	ErrorCount      int64 `json:"errorCount"`
	AverageDuration int64 `json:"averageDurationMs"`
}

// SuccessRate returns the success rate as a percentage (0-100).
func (s *MetricsSnapshot) SuccessRate() float64 {
	if s.RequestTotal == 0 {
		return 100.0
	}
	return float64(s.RequestTotal-s.RequestFailed) / float64(s.RequestTotal) * 100.0
}
