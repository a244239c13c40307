package handler

import (
	"net/http"

	"github.com/gradehawk/gradehawk/internal/domain"
)

// FeaturedHandler serves the curated homepage cards.
type FeaturedHandler struct {
	cards func() []domain.FeaturedCard
}

// NewFeaturedHandler creates a FeaturedHandler over a card source, typically
// service.FeaturedCards.
func NewFeaturedHandler(cards func() []domain.FeaturedCard) *FeaturedHandler {
	return &FeaturedHandler{cards: cards}
}

// ListFeatured returns the curated cards.
// GET /api/featured
func (h *FeaturedHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"cards": h.cards(),
	})
}
