// Package dbcache caches serialized pattern databases in SQLite.
//
// Compiling a large pattern set is the expensive step of a scan, so the
// compiled database is serialized and stored keyed by the pattern set
// digest, the library version it was built with, and the scan mode. A
// lookup with a different library version is a miss, never an error.
package dbcache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vectorgrep/vectorgrep/pkg/patternset"
)

// SchemaVersion is the current cache schema version.
const SchemaVersion = 1

// Cache is a SQLite-backed store of serialized pattern databases.
type Cache struct {
	db *sql.DB
}

// Open opens a cache at path, creating the schema if needed.
// Use ":memory:" for an in-memory cache (useful for testing).
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get retrieves the serialized database for the given key. The second
// return value reports whether an entry was found.
func (c *Cache) Get(digest, version string, mode uint) ([]byte, bool, error) {
	var data []byte
	err := c.db.QueryRow(`
		SELECT data FROM databases
		WHERE digest = ? AND hs_version = ? AND mode = ?
	`, digest, version, mode).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying cache: %w", err)
	}
	return data, true, nil
}

// Put stores a serialized database, replacing any existing entry for
// the same key.
func (c *Cache) Put(digest, version string, mode uint, data []byte) error {
	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO databases (digest, hs_version, mode, created_at, data)
		VALUES (?, ?, ?, ?, ?)
	`, digest, version, mode, time.Now().Unix(), data)
	if err != nil {
		return fmt.Errorf("inserting cache entry: %w", err)
	}
	return nil
}

// Prune deletes entries older than maxAge and returns how many were
// removed.
func (c *Cache) Prune(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).Unix()
	res, err := c.db.Exec("DELETE FROM databases WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	return n, nil
}

// Digest computes a stable hex digest of a pattern set. Patterns are
// hashed in ID order so the digest is independent of load order.
func Digest(patterns []*patternset.Pattern) string {
	sorted := make([]*patternset.Pattern, len(patterns))
	copy(sorted, patterns)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	h := sha256.New()
	for _, p := range sorted {
		fmt.Fprintf(h, "%s\x00%s\x00%d\x00", p.ID, p.Expression, p.Flags)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func createSchema(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return err
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion); err != nil {
			return err
		}
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS databases (
			digest TEXT NOT NULL,
			hs_version TEXT NOT NULL,
			mode INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			data BLOB NOT NULL,
			PRIMARY KEY (digest, hs_version, mode)
		)
	`)
	return err
}
