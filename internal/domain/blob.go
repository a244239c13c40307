package domain

import (
	"context"
	"io"
	"time"
)

// BlobWriter uploads objects to cold storage.
type BlobWriter interface {
	Put(ctx context.Context, path string, data io.Reader, contentType string) error
}

// Archiver moves expired search snapshots to cold storage ahead of deletion.
type Archiver interface {
	// ArchiveSearches uploads all snapshots expiring before the cutoff as a
	// single JSONL object and returns the number archived.
	ArchiveSearches(ctx context.Context, before time.Time) (int64, error)
}
