package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gradehawk/gradehawk/internal/domain"
)

// HistoryService is the slice of the search service this handler needs.
type HistoryService interface {
	RecentSearches(ctx context.Context, limit, offset int) ([]domain.SearchSnapshot, error)
}

// HistoryHandler serves persisted search snapshots.
type HistoryHandler struct {
	svc    HistoryService
	logger *slog.Logger
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(svc HistoryService, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{svc: svc, logger: logger}
}

// ListRecent returns recent search snapshots, newest first.
// GET /api/searches/recent
func (h *HistoryHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	opts := parseListOpts(r)

	snaps, err := h.svc.RecentSearches(r.Context(), opts.Limit, opts.Offset)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list recent searches failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "could not list recent searches")
		return
	}
	if snaps == nil {
		snaps = []domain.SearchSnapshot{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"searches": snaps,
		"count":    len(snaps),
	})
}
