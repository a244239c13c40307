package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gradehawk/gradehawk/internal/domain"
)

// SearchStore implements domain.SearchStore using PostgreSQL.
type SearchStore struct {
	pool *pgxpool.Pool
}

// NewSearchStore creates a new SearchStore backed by the given connection pool.
func NewSearchStore(pool *pgxpool.Pool) *SearchStore {
	return &SearchStore{pool: pool}
}

// Insert persists a completed search snapshot.
func (s *SearchStore) Insert(ctx context.Context, snap domain.SearchSnapshot) error {
	result, err := json.Marshal(snap.Result)
	if err != nil {
		return fmt.Errorf("postgres: marshal snapshot result: %w", err)
	}

	const query = `
		INSERT INTO search_snapshots (
			id, query, card_name, set_name, result,
			arbitrage, total_hits, created_at, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = s.pool.Exec(ctx, query,
		snap.ID, snap.Query, snap.CardName, snap.SetName, result,
		snap.Arbitrage, snap.TotalHits, snap.CreatedAt, snap.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: insert snapshot %s: %w", snap.ID, err)
	}
	return nil
}

// GetByID returns a single snapshot by its ID.
func (s *SearchStore) GetByID(ctx context.Context, id string) (domain.SearchSnapshot, error) {
	const query = `
		SELECT id, query, card_name, set_name, result,
		       arbitrage, total_hits, created_at, expires_at
		FROM search_snapshots
		WHERE id = $1`

	snap, err := scanSnapshot(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SearchSnapshot{}, fmt.Errorf("postgres: snapshot %s: %w", id, domain.ErrNotFound)
		}
		return domain.SearchSnapshot{}, fmt.Errorf("postgres: get snapshot %s: %w", id, err)
	}
	return snap, nil
}

// ListRecent returns snapshots newest first.
func (s *SearchStore) ListRecent(ctx context.Context, opts domain.ListOpts) ([]domain.SearchSnapshot, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}

	const query = `
		SELECT id, query, card_name, set_name, result,
		       arbitrage, total_hits, created_at, expires_at
		FROM search_snapshots
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.pool.Query(ctx, query, limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("postgres: list recent snapshots: %w", err)
	}
	defer rows.Close()

	return collectSnapshots(rows)
}

// ListExpired returns snapshots whose expiry is strictly before now.
func (s *SearchStore) ListExpired(ctx context.Context, now time.Time) ([]domain.SearchSnapshot, error) {
	const query = `
		SELECT id, query, card_name, set_name, result,
		       arbitrage, total_hits, created_at, expires_at
		FROM search_snapshots
		WHERE expires_at < $1
		ORDER BY expires_at ASC`

	rows, err := s.pool.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("postgres: list expired snapshots: %w", err)
	}
	defer rows.Close()

	return collectSnapshots(rows)
}

// DeleteExpired hard-deletes snapshots whose expiry is strictly before now
// and returns the number removed.
func (s *SearchStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM search_snapshots WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("postgres: delete expired snapshots: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Count returns the total number of stored snapshots.
func (s *SearchStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM search_snapshots`).Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: count snapshots: %w", err)
	}
	return n, nil
}

// scanSnapshot reads one snapshot row, decoding the JSONB result column.
func scanSnapshot(row pgx.Row) (domain.SearchSnapshot, error) {
	var (
		snap   domain.SearchSnapshot
		result []byte
	)
	err := row.Scan(
		&snap.ID, &snap.Query, &snap.CardName, &snap.SetName, &result,
		&snap.Arbitrage, &snap.TotalHits, &snap.CreatedAt, &snap.ExpiresAt,
	)
	if err != nil {
		return domain.SearchSnapshot{}, err
	}
	if err := json.Unmarshal(result, &snap.Result); err != nil {
		return domain.SearchSnapshot{}, fmt.Errorf("unmarshal result: %w", err)
	}
	return snap, nil
}

// collectSnapshots drains rows into a snapshot slice.
func collectSnapshots(rows pgx.Rows) ([]domain.SearchSnapshot, error) {
	var snaps []domain.SearchSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate snapshots: %w", err)
	}
	return snaps, nil
}
