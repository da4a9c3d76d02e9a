package core

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const monitorBatchLimit = 10

// Monitor periodically re-runs the recent-paste scan so the latest run
// stays fresh without operator interaction. A zero interval disables it.
type Monitor struct {
	svc      *ScanService
	interval time.Duration
}

func NewMonitor(svc *ScanService, interval time.Duration) *Monitor {
	return &Monitor{svc: svc, interval: interval}
}

func (m *Monitor) Start(ctx context.Context) {
	if m.interval <= 0 {
		return
	}
	go m.loop(ctx)
}

func (m *Monitor) loop(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.runOnce(ctx)
		}
	}
}

func (m *Monitor) runOnce(ctx context.Context) {
	if _, err := m.svc.ScanRecent(ctx, monitorBatchLimit); err != nil {
		// Keywords may simply not be loaded yet; that is not worth a warning.
		if errors.Is(err, ErrNoKeywords) {
			return
		}
		slog.Warn("monitor scan failed", "error", err)
	}
}
