// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/caltechlibrary/iga/internal/logging"
	"github.com/caltechlibrary/iga/pkg/types"
)

const defaultTTL = 30 * 24 * time.Hour

// now is replaced in tests.
var now = time.Now

// Cache stores lookup responses in SQLite, keyed by namespace and key.
// Negative answers are stored too so a missing ORCID is not asked for on
// every run. A nil *Cache is valid and caches nothing.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
	log logging.Logger
}

// OpenCache opens or creates the cache database at path. A ttl of zero
// means 30 days. Failed reads and writes are reported to log.
func OpenCache(path string, ttl time.Duration, log logging.Logger) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	// One writer at a time; lookups run concurrently.
	db.SetMaxOpenConns(1)

	if ttl <= 0 {
		ttl = defaultTTL
	}
	c := &Cache{db: db, ttl: ttl, log: logging.OrNull(log)}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Cache) createSchema() error {
	_, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS responses (
		namespace  TEXT NOT NULL,
		key        TEXT NOT NULL,
		body       TEXT,
		not_found  INTEGER NOT NULL DEFAULT 0,
		fetched_at TEXT NOT NULL,
		PRIMARY KEY (namespace, key)
	)`)
	return err
}

// get returns the stored body. found is false on a miss or a stale entry.
func (c *Cache) get(ctx context.Context, ns, key string) (body []byte, notFound, found bool, err error) {
	var (
		text    sql.NullString
		neg     int
		fetched string
	)
	err = c.db.QueryRowContext(ctx,
		`SELECT body, not_found, fetched_at FROM responses WHERE namespace = ? AND key = ?`,
		ns, key).Scan(&text, &neg, &fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, false, nil
	}
	if err != nil {
		return nil, false, false, fmt.Errorf("reading cache: %w", err)
	}
	at, err := time.Parse(time.RFC3339, fetched)
	if err != nil || now().Sub(at) > c.ttl {
		return nil, false, false, nil
	}
	return []byte(text.String), neg != 0, true, nil
}

func (c *Cache) put(ctx context.Context, ns, key string, body []byte, notFound bool) error {
	neg := 0
	if notFound {
		neg = 1
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO responses (namespace, key, body, not_found, fetched_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(namespace, key) DO UPDATE SET body = excluded.body, not_found = excluded.not_found, fetched_at = excluded.fetched_at`,
		ns, key, string(body), neg, now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// store writes an entry, logging a failure.
func (c *Cache) store(ctx context.Context, ns, key string, body []byte, notFound bool) {
	if err := c.put(ctx, ns, key, body, notFound); err != nil {
		c.log.Verbose("%s %s: %v", ns, key, err)
	}
}

// Purge deletes entries older than the cache TTL and returns how many were
// removed.
func (c *Cache) Purge(ctx context.Context) (int64, error) {
	if c == nil {
		return 0, nil
	}
	cutoff := now().Add(-c.ttl).UTC().Format(time.RFC3339)
	res, err := c.db.ExecContext(ctx, `DELETE FROM responses WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging cache: %w", err)
	}
	return res.RowsAffected()
}

// Cached returns the cached value for (ns, key) or calls fetch and stores
// its result. types.ErrNotFound from fetch is cached as a negative answer;
// other errors are not cached. Cache failures never hide a fetch result.
func Cached[T any](ctx context.Context, c *Cache, ns, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if c == nil {
		return fetch(ctx)
	}
	body, neg, ok, err := c.get(ctx, ns, key)
	switch {
	case err != nil:
		c.log.Verbose("%s %s: %v", ns, key, err)
	case ok && neg:
		return zero, fmt.Errorf("%s %s: %w", ns, key, types.ErrNotFound)
	case ok:
		var v T
		if json.Unmarshal(body, &v) == nil {
			return v, nil
		}
	}

	v, err := fetch(ctx)
	switch {
	case errors.Is(err, types.ErrNotFound):
		c.store(ctx, ns, key, nil, true)
		return zero, err
	case err != nil:
		return zero, err
	}
	if body, mErr := json.Marshal(v); mErr == nil {
		c.store(ctx, ns, key, body, false)
	} else {
		c.log.Verbose("%s %s: not cached: %v", ns, key, mErr)
	}
	return v, nil
}
