// Package cache provides local caching of parsed schema models, keyed by
// the checksum of the DDL source text. Entries live in two layers: a
// ristretto in-memory front and a SQLite store in .tstruct/cache.db
// (gitignored). The cache is optional and can always be rebuilt by
// re-parsing the source.
package cache

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/mizuleo/tstruct/internal/schema"
	"github.com/mizuleo/tstruct/internal/tserr"

	_ "modernc.org/sqlite" // SQLite driver
)

const (
	// CacheDir is the directory name for the cache (gitignored).
	CacheDir = ".tstruct"
	// CacheFile is the SQLite database file name.
	CacheFile = "cache.db"
)

// memory sizing for the ristretto front; entries are small, so cost is
// simply a count.
const (
	memCounters = 10_000
	memMaxCost  = 1_000
)

// Cache is a two-layer store of parsed schema models.
// The in-memory layer is an accelerator only; correctness comes from the
// SQLite layer, so a miss there after a Put is never possible.
type Cache struct {
	db   *sql.DB
	mem  *ristretto.Cache[string, *schema.Table]
	path string
	mu   sync.RWMutex
}

// Open opens or creates the cache database under the given project root.
// The cache directory and database are created when missing.
func Open(projectRoot string) (*Cache, error) {
	cacheDir := filepath.Join(projectRoot, CacheDir)
	cachePath := filepath.Join(cacheDir, CacheFile)

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, tserr.Wrap(tserr.ErrCacheInit, err, "failed to create cache directory").
			With("path", cacheDir)
	}

	db, err := sql.Open("sqlite", cachePath)
	if err != nil {
		return nil, tserr.Wrap(tserr.ErrCacheInit, err, "failed to open cache database").
			With("path", cachePath)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, tserr.Wrap(tserr.ErrCacheInit, err, "failed to connect to cache database").
			With("path", cachePath)
	}

	mem, err := ristretto.NewCache(&ristretto.Config[string, *schema.Table]{
		NumCounters: memCounters,
		MaxCost:     memMaxCost,
		BufferItems: 64,
	})
	if err != nil {
		db.Close()
		return nil, tserr.Wrap(tserr.ErrCacheInit, err, "failed to initialize memory cache")
	}

	cache := &Cache{
		db:   db,
		mem:  mem,
		path: cachePath,
	}

	if err := cache.initSchema(); err != nil {
		mem.Close()
		db.Close()
		return nil, err
	}

	return cache, nil
}

// Close closes both cache layers.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	if c.mem != nil {
		c.mem.Close()
	}
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Path returns the path to the cache database file.
func (c *Cache) Path() string {
	if c == nil {
		return ""
	}
	return c.path
}

// initSchema creates the cache database tables if they don't exist.
func (c *Cache) initSchema() error {
	ddl := `
		-- Parsed schema models keyed by source checksum
		CREATE TABLE IF NOT EXISTS parse_snapshots (
			checksum     TEXT PRIMARY KEY,
			schema_json  TEXT NOT NULL,
			created_at   TEXT NOT NULL
		);

		-- Cache metadata (version, etc.)
		CREATE TABLE IF NOT EXISTS cache_meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		INSERT OR REPLACE INTO cache_meta (key, value) VALUES ('version', '1');
	`

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.Exec(ddl); err != nil {
		return tserr.Wrap(tserr.ErrCacheInit, err, "failed to initialize cache schema")
	}

	return nil
}

// Get retrieves the schema model cached for a source checksum.
// Returns nil and no error on a miss. A SQLite hit back-fills the memory
// layer.
func (c *Cache) Get(checksum string) (*schema.Table, error) {
	if t, ok := c.mem.Get(checksum); ok {
		return t, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var schemaJSON string
	err := c.db.QueryRow(
		"SELECT schema_json FROM parse_snapshots WHERE checksum = ?",
		checksum,
	).Scan(&schemaJSON)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, tserr.Wrap(tserr.ErrCacheRead, err, "failed to read parse snapshot").
			With("checksum", checksum)
	}

	t, err := DeserializeTable([]byte(schemaJSON))
	if err != nil {
		return nil, err
	}

	c.mem.Set(checksum, t, 1)
	return t, nil
}

// Put stores the schema model for a source checksum in both layers.
func (c *Cache) Put(checksum string, t *schema.Table) error {
	data, err := SerializeTable(t)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err = c.db.Exec(
		"INSERT OR REPLACE INTO parse_snapshots (checksum, schema_json, created_at) VALUES (?, ?, ?)",
		checksum, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return tserr.Wrap(tserr.ErrCacheWrite, err, "failed to write parse snapshot").
			With("checksum", checksum)
	}

	c.mem.Set(checksum, t, 1)
	return nil
}

// Delete removes the snapshot for a source checksum.
func (c *Cache) Delete(checksum string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.Exec("DELETE FROM parse_snapshots WHERE checksum = ?", checksum); err != nil {
		return tserr.Wrap(tserr.ErrCacheWrite, err, "failed to delete parse snapshot").
			With("checksum", checksum)
	}

	c.mem.Del(checksum)
	return nil
}

// Purge removes all snapshots from both layers.
func (c *Cache) Purge() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.Exec("DELETE FROM parse_snapshots"); err != nil {
		return tserr.Wrap(tserr.ErrCacheWrite, err, "failed to purge parse snapshots")
	}

	c.mem.Clear()
	return nil
}

// Len returns the number of persisted snapshots.
func (c *Cache) Len() (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var n int
	if err := c.db.QueryRow("SELECT count(*) FROM parse_snapshots").Scan(&n); err != nil {
		return 0, tserr.Wrap(tserr.ErrCacheRead, err, "failed to count parse snapshots")
	}
	return n, nil
}
