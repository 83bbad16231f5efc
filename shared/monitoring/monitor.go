package monitoring

import (
	"fmt"
	"sync"
	"time"

	"tubewise/shared/logging"
)

// Monitor tracks request outcomes for the health endpoint.
type Monitor struct {
	mu          sync.Mutex
	answered    int
	failed      int
	lastSuccess bool
	lastRunTime time.Time
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) RecordSuccess(summary string, duration time.Duration) {
	m.mu.Lock()
	m.answered++
	m.lastSuccess = true
	m.lastRunTime = time.Now()
	m.mu.Unlock()

	logging.L().WithField("duration", duration.String()).Infof("request completed - %s", summary)
}

func (m *Monitor) RecordFailure(err error, duration time.Duration) {
	m.mu.Lock()
	m.failed++
	m.lastSuccess = false
	m.lastRunTime = time.Now()
	m.mu.Unlock()

	logging.L().WithField("duration", duration.String()).WithError(err).Error("request failed")
}

// IsHealthy reports false only after the most recent request failed.
func (m *Monitor) IsHealthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lastRunTime.IsZero() {
		return true // No requests yet, assume healthy
	}
	return m.lastSuccess
}

func (m *Monitor) GetStatusSummary() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lastRunTime.IsZero() {
		return "No requests yet"
	}
	return fmt.Sprintf("%d answered, %d failed, last request %s", m.answered, m.failed, m.lastRunTime.Format("Jan 2 15:04"))
}
