package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gradehawk/gradehawk/internal/domain"
)

// SearchService is the slice of the search service this handler needs.
type SearchService interface {
	Search(ctx context.Context, query string) (*domain.SearchResult, error)
}

// SearchHandler serves the main aggregation endpoint.
type SearchHandler struct {
	svc    SearchService
	logger *slog.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(svc SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{svc: svc, logger: logger}
}

// Search runs one aggregation cycle for the q parameter.
// GET /api/search?q=...
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing required parameter: q")
		return
	}

	result, err := h.svc.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no card found for query: "+query)
			return
		}
		h.logger.ErrorContext(r.Context(), "search failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
