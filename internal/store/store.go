// Package store persists content-addressed objects beneath .git/objects.
//
// Objects live at <objects>/<xx>/<yyyy...>, where the sub-path derives
// from the object's SHA-1. Files hold the zlib-compressed canonical
// serialization and are immutable: writing an object that already exists
// is a no-op, and writes go through a temp file plus rename so a reader
// never observes a partial object.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mugit-vcs/mugit/internal/codec"
	"github.com/mugit-vcs/mugit/internal/hash"
)

// ErrNotFound reports a hash with no object on disk.
var ErrNotFound = errors.New("object not found")

// Store is a loose-object store rooted at a .git/objects directory.
type Store struct {
	root string
}

// New opens the store under projRoot/.git/objects.
func New(projRoot string) *Store {
	return &Store{root: filepath.Join(projRoot, ".git", "objects")}
}

// path returns the on-disk location for a hash.
func (s *Store) path(h hash.Hash) string {
	return filepath.Join(s.root, h.Path())
}

// Has reports whether the object exists on disk.
func (s *Store) Has(h hash.Hash) bool {
	_, err := os.Stat(s.path(h))
	return err == nil
}

// Put writes the canonical serialization under its hash. The data is
// verified against h, compressed, and written atomically; existing
// objects are left untouched.
func (s *Store) Put(h hash.Hash, canonical []byte) error {
	if computed := hash.Sum(canonical); computed != h {
		return fmt.Errorf("hash mismatch: expected %s, got %s", h, computed)
	}

	path := s.path(h)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create object directory: %w", err)
	}

	compressed, err := codec.Compress(canonical)
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp object: %w", err)
	}
	_, werr := f.Write(compressed)
	cerr := f.Close()
	if werr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write object: %w", werr)
	}
	if cerr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close object: %w", cerr)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename object: %w", err)
	}
	return nil
}

// Get reads and inflates the object, returning its canonical bytes.
func (s *Store) Get(h hash.Hash) ([]byte, error) {
	f, err := os.Open(s.path(h))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, h)
		}
		return nil, fmt.Errorf("open object: %w", err)
	}
	defer f.Close()

	compressed, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}
	return codec.Decompress(compressed)
}
