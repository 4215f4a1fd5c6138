// Package modcache records, across repeated driver invocations, which
// (canonical path, content hash) pairs were seen before. A hit tells
// the caller a file is unchanged since a prior run's row; it does not
// itself skip any lexing, parsing, or resolving.
package modcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Entry is one cached module row, keyed on canonical path plus content
// hash so any source edit invalidates the row. SummaryJSON holds
// whatever JSON value the caller passed to Store.
type Entry struct {
	ID          uint   `gorm:"primaryKey"`
	CanonicalPath string `gorm:"uniqueIndex:idx_path_hash"`
	ContentHash   string `gorm:"uniqueIndex:idx_path_hash"`
	SummaryJSON   string
}

// TableName keeps the schema name stable regardless of Go struct renames.
func (Entry) TableName() string { return "module_cache_entries" }

// Cache wraps a gorm/sqlite connection over the module summary table.
type Cache struct {
	db *gorm.DB
}

// Open opens (creating if absent) the sqlite-backed cache at path, a
// pure-Go driver (avoiding a cgo dependency) for the module table spec
// §3/§5 describes as "owned by a process-level module table... keyed
// on canonical file path".
func Open(path string) (*Cache, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("modcache: open %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("modcache: migrate: %w", err)
	}
	return &Cache{db: db}, nil
}

// ContentHash computes the cache key component derived from a file's
// bytes.
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Lookup reports whether a row exists for (canonicalPath, hash),
// unmarshaling its summary into dest on a hit; a miss returns
// (false, nil).
func (c *Cache) Lookup(canonicalPath, hash string, dest interface{}) (bool, error) {
	var entry Entry
	err := c.db.Where("canonical_path = ? AND content_hash = ?", canonicalPath, hash).First(&entry).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("modcache: lookup %s: %w", canonicalPath, err)
	}
	if err := json.Unmarshal([]byte(entry.SummaryJSON), dest); err != nil {
		return false, fmt.Errorf("modcache: decode summary for %s: %w", canonicalPath, err)
	}
	return true, nil
}

// Store upserts the resolved-module summary for (canonicalPath, hash).
func (c *Cache) Store(canonicalPath, hash string, summary interface{}) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("modcache: encode summary for %s: %w", canonicalPath, err)
	}
	entry := Entry{CanonicalPath: canonicalPath, ContentHash: hash, SummaryJSON: string(data)}
	return c.db.Where("canonical_path = ?", canonicalPath).
		Assign(Entry{ContentHash: hash, SummaryJSON: string(data)}).
		FirstOrCreate(&entry).Error
}

// Close releases the underlying database connection.
func (c *Cache) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
