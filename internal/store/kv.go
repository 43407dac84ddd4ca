package store

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/mugit-vcs/mugit/internal/hash"
)

// bucketCommits maps commit hash hex -> uncompressed canonical commit bytes.
var bucketCommits = []byte("commits")

// CommitCache is a bbolt sidecar under .git/objects/info/ that keeps the
// canonical bytes of commits already seen, sparing history traversal the
// per-commit zlib inflation. Loose objects stay the source of truth;
// deleting the database loses nothing.
type CommitCache struct {
	db *bbolt.DB
}

// OpenCommitCache opens (creating if needed) the cache for projRoot.
func OpenCommitCache(projRoot string) (*CommitCache, error) {
	infoDir := filepath.Join(projRoot, ".git", "objects", "info")
	if err := os.MkdirAll(infoDir, 0755); err != nil {
		return nil, fmt.Errorf("create objects/info: %w", err)
	}

	db, err := bbolt.Open(filepath.Join(infoDir, "commits.db"), 0666, nil)
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucketCommits)
		return e
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &CommitCache{db: db}, nil
}

// Close closes the underlying database.
func (c *CommitCache) Close() error {
	return c.db.Close()
}

// Put stores the canonical commit bytes under their hash.
func (c *CommitCache) Put(h hash.Hash, canonical []byte) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCommits).Put([]byte(h.Hex()), canonical)
	})
}

// Get returns the cached canonical bytes, or nil when absent.
func (c *CommitCache) Get(h hash.Hash) ([]byte, error) {
	var out []byte
	err := c.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketCommits).Get([]byte(h.Hex())); v != nil {
			out = make([]byte, len(v))
			copy(out, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
