// Package index implements the staging area: the on-disk mutable snapshot
// of the next commit.
//
// The binary format is index version 2 ("DIRC"), network byte order
// throughout. Entries are keyed by repository-relative path and persist
// in ascending byte-lexicographic key order; entry_count matches the map
// size at every persistence boundary.
package index

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"

	"github.com/mugit-vcs/mugit/internal/codec"
	"github.com/mugit-vcs/mugit/internal/hash"
)

// Version is the only index version this engine reads or writes.
const Version = 2

var signature = []byte("DIRC")

// ErrParse reports a malformed index file.
var ErrParse = errors.New("malformed index")

// Index is an ordered mapping from repository-relative path to entry.
type Index struct {
	version  uint32
	entryNum uint32
	entries  *treemap.Map // string -> *Entry, ascending byte order
}

// New returns an empty version-2 index.
func New() *Index {
	return &Index{
		version: Version,
		entries: treemap.NewWith(utils.StringComparator),
	}
}

// FromBytes parses the binary index format.
func FromBytes(data []byte) (*Index, error) {
	if !bytes.HasPrefix(data, signature) {
		return nil, fmt.Errorf("%w: missing DIRC signature", ErrParse)
	}
	offset := len(signature)
	if len(data) < offset+8 {
		return nil, fmt.Errorf("%w: header truncated", ErrParse)
	}
	version, err := codec.Uint32(data[offset : offset+4])
	if err != nil {
		return nil, err
	}
	offset += 4
	entryNum, err := codec.Uint32(data[offset : offset+4])
	if err != nil {
		return nil, err
	}
	offset += 4

	idx := &Index{
		version: version,
		entries: treemap.NewWith(utils.StringComparator),
	}
	for offset < len(data) && uint32(idx.entries.Size()) < entryNum {
		e, n, err := parseEntry(data[offset:])
		if err != nil {
			return nil, err
		}
		idx.entries.Put(e.Path, e)
		offset += n
	}
	idx.entryNum = entryNum
	return idx, nil
}

// FromFile reads .git/index under projRoot. A missing file reports
// (nil, nil): the repository simply has nothing staged yet.
func FromFile(projRoot string) (*Index, error) {
	data, err := os.ReadFile(filepath.Join(projRoot, ".git", "index"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read index: %w", err)
	}
	return FromBytes(data)
}

// ToBytes emits the binary format with entries in sorted key order.
// FromBytes(idx.ToBytes()) reproduces idx exactly.
func (i *Index) ToBytes() []byte {
	out := append([]byte{}, signature...)
	out = codec.AppendUint32(out, i.version)
	out = codec.AppendUint32(out, i.entryNum)

	i.entries.Each(func(_ any, value any) {
		out = append(out, value.(*Entry).Bytes()...)
	})
	return out
}

// WriteFile rewrites .git/index wholesale.
func (i *Index) WriteFile(projRoot string) error {
	path := filepath.Join(projRoot, ".git", "index")
	if err := os.WriteFile(path, i.ToBytes(), 0644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// AddEntry stats the working-tree file behind relPath and upserts its
// entry, keyed by relPath.
func (i *Index) AddEntry(projRoot, relPath string, h hash.Hash) error {
	e, err := NewEntry(filepath.Join(projRoot, filepath.FromSlash(relPath)), relPath, h)
	if err != nil {
		return err
	}
	i.entries.Put(e.Path, e)
	i.entryNum = uint32(i.entries.Size())
	return nil
}

// GetEntry returns a copy of the entry keyed by relPath.
func (i *Index) GetEntry(relPath string) (Entry, bool) {
	v, ok := i.entries.Get(relPath)
	if !ok {
		return Entry{}, false
	}
	return *v.(*Entry), true
}

// DeleteEntry removes the entry keyed by relPath; absent keys are a no-op.
func (i *Index) DeleteEntry(relPath string) {
	i.entries.Remove(relPath)
	i.entryNum = uint32(i.entries.Size())
}

// EntryCount returns the persisted entry count.
func (i *Index) EntryCount() uint32 {
	return i.entryNum
}

// Len returns the number of entries held.
func (i *Index) Len() int {
	return i.entries.Size()
}

// Paths returns all keys in ascending byte-lexicographic order.
func (i *Index) Paths() []string {
	keys := i.entries.Keys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.(string))
	}
	return out
}

// Each visits entries in ascending key order.
func (i *Index) Each(fn func(path string, e *Entry)) {
	i.entries.Each(func(key any, value any) {
		fn(key.(string), value.(*Entry))
	})
}

// Equal compares two indices structurally.
func (i *Index) Equal(other *Index) bool {
	if i.version != other.version || i.entryNum != other.entryNum || i.Len() != other.Len() {
		return false
	}
	equal := true
	i.Each(func(path string, e *Entry) {
		o, ok := other.GetEntry(path)
		if !ok || o != *e {
			equal = false
		}
	})
	return equal
}
