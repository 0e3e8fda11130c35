package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jpp0ca/SetlistStats-API/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS payload_cache (
	key        TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	page       INTEGER NOT NULL DEFAULT 0,
	fetched_at INTEGER NOT NULL
)`

// SQLite persists payloads in a single SQLite table so the cache survives
// restarts.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if needed) the cache database at path.
// ":memory:" is accepted.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	// a single connection keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000", schema} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: init sqlite: %w", err)
		}
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) Get(ctx context.Context, key string) (*domain.CacheEntry, error) {
	var (
		data      []byte
		page      int
		fetchedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT data, page, fetched_at FROM payload_cache WHERE key = ?`, key,
	).Scan(&data, &page, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}

	return &domain.CacheEntry{
		Data:      data,
		Page:      page,
		Timestamp: time.UnixMilli(fetchedAt).UTC(),
	}, nil
}

func (s *SQLite) Set(ctx context.Context, key string, entry domain.CacheEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payload_cache (key, data, page, fetched_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, page = excluded.page, fetched_at = excluded.fetched_at`,
		key, []byte(entry.Data), entry.Page, entry.Timestamp.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM payload_cache WHERE key = ?`, key); err != nil {
		return fmt.Errorf("store: delete %s: %w", key, err)
	}
	return nil
}
