package daemon

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks reminder daemon counters. It implements
// scheduler.CheckRecorder.
type Metrics struct {
	checksRun    atomic.Int64
	alertsSent   atomic.Int64
	alertsFailed atomic.Int64

	mu          sync.RWMutex
	lastCheckAt time.Time
	lastAlertAt time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordCheck records one reminder pass.
func (m *Metrics) RecordCheck(at time.Time) {
	m.checksRun.Add(1)
	m.mu.Lock()
	m.lastCheckAt = at
	m.mu.Unlock()
}

// RecordAlert records one alert delivery attempt.
func (m *Metrics) RecordAlert(delivered bool) {
	if delivered {
		m.alertsSent.Add(1)
	} else {
		m.alertsFailed.Add(1)
	}
	m.mu.Lock()
	m.lastAlertAt = time.Now()
	m.mu.Unlock()
}

// MetricsSnapshot represents a point-in-time view of metrics.
type MetricsSnapshot struct {
	ChecksRunTotal    int64     `json:"checks_run_total"`
	AlertsSentTotal   int64     `json:"alerts_sent_total"`
	AlertsFailedTotal int64     `json:"alerts_failed_total"`
	LastCheckAt       time.Time `json:"last_check_at,omitempty"`
	LastAlertAt       time.Time `json:"last_alert_at,omitempty"`
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return MetricsSnapshot{
		ChecksRunTotal:    m.checksRun.Load(),
		AlertsSentTotal:   m.alertsSent.Load(),
		AlertsFailedTotal: m.alertsFailed.Load(),
		LastCheckAt:       m.lastCheckAt,
		LastAlertAt:       m.lastAlertAt,
	}
}
