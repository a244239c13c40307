package s3blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gradehawk/gradehawk/internal/domain"
)

// SnapshotArchiveStore provides read access to expiring snapshots for
// archival purposes. The Postgres search store satisfies this implicitly.
type SnapshotArchiveStore interface {
	ListExpired(ctx context.Context, now time.Time) ([]domain.SearchSnapshot, error)
}

// Archiver implements domain.Archiver by querying the search store for
// snapshots past their expiry, serializing them to JSONL, and uploading the
// result to S3.
//
// Deletion of the archived rows from the primary store is intentionally NOT
// performed here; the cleanup pipeline deletes only after the archive upload
// has succeeded.
type Archiver struct {
	writer domain.BlobWriter
	store  SnapshotArchiveStore
}

// NewArchiver creates a new Archiver.
func NewArchiver(writer domain.BlobWriter, store SnapshotArchiveStore) *Archiver {
	return &Archiver{
		writer: writer,
		store:  store,
	}
}

// ArchiveSearches uploads all snapshots expiring before the cutoff as one
// JSONL object at archive/searches/YYYY-MM-DD_HH.jsonl and returns the
// number archived. Zero expired snapshots is a no-op, not an error.
func (a *Archiver) ArchiveSearches(ctx context.Context, before time.Time) (int64, error) {
	snaps, err := a.store.ListExpired(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("s3blob: archive searches query: %w", err)
	}
	if len(snaps) == 0 {
		return 0, nil
	}

	buf, err := marshalJSONL(snaps)
	if err != nil {
		return 0, fmt.Errorf("s3blob: archive searches marshal: %w", err)
	}

	path := archivePath(before)
	if err := a.writer.Put(ctx, path, bytes.NewReader(buf), "application/x-ndjson"); err != nil {
		return 0, fmt.Errorf("s3blob: archive searches upload: %w", err)
	}

	return int64(len(snaps)), nil
}

// archivePath builds the S3 key for an archive file, partitioned by the
// cutoff hour so the hourly cleanup job never overwrites a previous batch.
//
//	archive/searches/2025-08-31_14.jsonl
func archivePath(before time.Time) string {
	return fmt.Sprintf("archive/searches/%s.jsonl", before.UTC().Format("2006-01-02_15"))
}

// marshalJSONL serialises a slice of values as newline-delimited JSON.
func marshalJSONL[T any](records []T) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	for i, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("jsonl encode record %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}

// Compile-time interface check.
var _ domain.Archiver = (*Archiver)(nil)
