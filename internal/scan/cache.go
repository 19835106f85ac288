package scan

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/QuentinArnault/periphery/internal/index"
	"github.com/QuentinArnault/periphery/internal/logging"
)

// Cache persists the last successful index's raw record stream, keyed
// by a content hash of each translation unit, in an on-disk
// modernc.org/sqlite database. Grounded on the teacher's
// internal/store.LocalStore: sql.Open against a cgo-free sqlite
// driver, a single-table schema created on first use, and a mutex-free
// design left to *sql.DB's own connection pooling. This replaces the
// teacher's JSON FileCache (internal/world/cache.go) per SPEC_FULL.md
// §4.9, since a relational cache lets incremental re-scan query and
// replace a single file's rows without rewriting the whole cache file.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if necessary) a Cache at path.
func OpenCache(path string) (*Cache, error) {
	log := logging.Get(logging.CategoryScan)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("scan: create cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("scan: open cache: %w", err)
	}

	c := &Cache{db: db}
	if err := c.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	log.Debug("opened index cache at %s", path)
	return c, nil
}

func (c *Cache) initialize() error {
	const schema = `
CREATE TABLE IF NOT EXISTS file_records (
	path TEXT PRIMARY KEY,
	content_hash TEXT NOT NULL,
	records_json TEXT NOT NULL
);`
	_, err := c.db.ExecContext(context.Background(), schema)
	if err != nil {
		return fmt.Errorf("scan: initialize cache schema: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error { return c.db.Close() }

// Lookup returns the cached records for path if its content still
// hashes to the cached value, reporting (nil, false) on any miss.
func (c *Cache) Lookup(path string, content []byte) ([]index.Record, bool) {
	hash := hashOf(content)

	var storedHash, recordsJSON string
	row := c.db.QueryRowContext(context.Background(),
		`SELECT content_hash, records_json FROM file_records WHERE path = ?`, path)
	if err := row.Scan(&storedHash, &recordsJSON); err != nil {
		return nil, false
	}
	if storedHash != hash {
		return nil, false
	}

	var records []index.Record
	if err := json.Unmarshal([]byte(recordsJSON), &records); err != nil {
		return nil, false
	}
	return records, true
}

// Store replaces the cached entry for path.
func (c *Cache) Store(path string, content []byte, records []index.Record) error {
	hash := hashOf(content)
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("scan: marshal cache entry for %s: %w", path, err)
	}
	_, err = c.db.ExecContext(context.Background(),
		`INSERT INTO file_records (path, content_hash, records_json) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET content_hash = excluded.content_hash, records_json = excluded.records_json`,
		path, hash, string(data))
	if err != nil {
		return fmt.Errorf("scan: store cache entry for %s: %w", path, err)
	}
	return nil
}

// Evict removes path's cached entry, used when a watched file is deleted.
func (c *Cache) Evict(path string) error {
	_, err := c.db.ExecContext(context.Background(), `DELETE FROM file_records WHERE path = ?`, path)
	return err
}

func hashOf(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
