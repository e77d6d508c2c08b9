// Package cache implements a content-addressed compile cache: the
// rendered output for a given (source, backend) pair is stored once and
// reused on a later compile of byte-identical input, keyed by a SHA-256
// digest rather than the source's file path.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Cache wraps a sqlite-backed table of (key, output) rows.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if necessary) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error { return c.db.Close() }

const schema = `
CREATE TABLE IF NOT EXISTS compile_cache (
	id         TEXT PRIMARY KEY,
	cache_key  TEXT NOT NULL UNIQUE,
	output     TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
`

// Key derives the cache key for a (source, backend) pair.
func Key(source []byte, backend string) string {
	h := sha256.New()
	h.Write(source)
	h.Write([]byte{0})
	h.Write([]byte(backend))
	return hex.EncodeToString(h.Sum(nil))
}

// Lookup returns the cached output for key, if present.
func (c *Cache) Lookup(key string) (string, bool, error) {
	var output string
	err := c.db.QueryRow(`SELECT output FROM compile_cache WHERE cache_key = ?`, key).Scan(&output)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return output, true, nil
}

// Store records output under key, replacing any prior entry for it.
func (c *Cache) Store(key, output string) error {
	_, err := c.db.Exec(
		`INSERT INTO compile_cache (id, cache_key, output, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET output = excluded.output, created_at = excluded.created_at`,
		uuid.NewString(), key, output, time.Now().Unix(),
	)
	return err
}
