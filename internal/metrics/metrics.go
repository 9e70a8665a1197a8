// Package metrics provides Prometheus metrics for the time tracking service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TimeLogsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "timeclock_time_logs_started_total",
			Help: "Total number of time logs started",
		},
	)
	TimeLogsStopped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "timeclock_time_logs_stopped_total",
			Help: "Total number of time logs stopped",
		},
	)
	StartConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "timeclock_start_conflicts_total",
			Help: "Total number of start requests rejected because a log was already open",
		},
	)
	ActiveTimers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "timeclock_active_timers",
			Help: "Current number of open time logs",
		},
	)
	TimeLogDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "timeclock_time_log_duration_seconds",
			Help:    "Duration of closed time logs in seconds",
			Buckets: []float64{60, 300, 900, 1800, 3600, 7200, 14400, 28800},
		},
	)
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timeclock_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "timeclock_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// SetActiveTimers seeds the gauge from the store's open-log count. Called at
// startup so the gauge survives restarts with timers still running.
func SetActiveTimers(count int) {
	ActiveTimers.Set(float64(count))
}

// RecordTimeLogStarted updates the timer metrics for a successful start.
func RecordTimeLogStarted() {
	TimeLogsStarted.Inc()
	ActiveTimers.Inc()
}

// RecordTimeLogStopped updates the timer metrics for a successful stop.
func RecordTimeLogStopped(duration time.Duration) {
	TimeLogsStopped.Inc()
	ActiveTimers.Dec()
	TimeLogDuration.Observe(duration.Seconds())
}

// RecordStartConflict counts a start rejected by the single-timer rule.
func RecordStartConflict() {
	StartConflicts.Inc()
}

// RecordHTTPRequest records one handled HTTP request.
func RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
