package domain

import (
	"context"
	"time"
)

// ListOpts provides pagination for list queries.
type ListOpts struct {
	Limit  int
	Offset int
}

// SearchStore persists search snapshots with a bounded lifetime.
type SearchStore interface {
	Insert(ctx context.Context, snap SearchSnapshot) error
	GetByID(ctx context.Context, id string) (SearchSnapshot, error)
	ListRecent(ctx context.Context, opts ListOpts) ([]SearchSnapshot, error)
	// ListExpired returns snapshots whose expiry is strictly before now.
	ListExpired(ctx context.Context, now time.Time) ([]SearchSnapshot, error)
	// DeleteExpired hard-deletes expired snapshots and returns the count.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}
