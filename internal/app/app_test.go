package app

import (
	"context"
	"log/slog"
	"testing"

	"github.com/gradehawk/gradehawk/internal/config"
)

// recordingHandler captures log records so tests can assert output went
// through the injected logger rather than the process-wide default.
type recordingHandler struct {
	records *[]slog.Record
	attrs   []slog.Attr
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	r.AddAttrs(h.attrs...)
	*h.records = append(*h.records, r)
	return nil
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &recordingHandler{records: h.records, attrs: append(h.attrs, attrs...)}
}

func (h *recordingHandler) WithGroup(string) slog.Handler { return h }

func TestAppLogsThroughInjectedLogger(t *testing.T) {
	var records []slog.Record
	logger := slog.New(&recordingHandler{records: &records})

	cfg := config.Defaults()
	a := New(&cfg, logger)
	a.Close()

	if len(records) == 0 {
		t.Fatal("expected shutdown log on the injected logger, got none")
	}

	found := false
	for _, r := range records {
		r.Attrs(func(attr slog.Attr) bool {
			if attr.Key == "component" && attr.Value.String() == "app" {
				found = true
				return false
			}
			return true
		})
	}
	if !found {
		t.Error(`log records missing component="app" attribute`)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	var records []slog.Record
	logger := slog.New(&recordingHandler{records: &records})

	cfg := config.Defaults()
	a := New(&cfg, logger)

	calls := 0
	a.closers = append(a.closers, func() { calls++ })

	a.Close()
	a.Close()

	if calls != 1 {
		t.Errorf("closer ran %d times, want 1", calls)
	}
}
