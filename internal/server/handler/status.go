package handler

import (
	"context"
	"net/http"
	"time"
)

// SnapshotCounter reports how many search snapshots are currently retained.
type SnapshotCounter interface {
	SnapshotCount(ctx context.Context) (int64, error)
}

// StatusHandler serves backend status for the dashboard.
type StatusHandler struct {
	mode      string
	sources   []string
	counter   SnapshotCounter // nil when persistence is disabled
	startedAt time.Time
}

// NewStatusHandler creates a StatusHandler. sources names the configured
// reference-price sources; counter may be nil.
func NewStatusHandler(mode string, sources []string, counter SnapshotCounter, startedAt time.Time) *StatusHandler {
	return &StatusHandler{
		mode:      mode,
		sources:   sources,
		counter:   counter,
		startedAt: startedAt,
	}
}

// GetStatus responds with the current mode, configured sources, uptime, and
// snapshot retention count.
// GET /api/status
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"mode":           h.mode,
		"sources":        h.sources,
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
	}

	if h.counter != nil {
		if n, err := h.counter.SnapshotCount(r.Context()); err == nil {
			resp["stored_searches"] = n
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
