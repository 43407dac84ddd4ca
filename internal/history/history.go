// Package history walks the commit DAG for log output.
//
// Traversal is a depth-first search along parent edges with a visited
// set keyed by hash, so constructed cycles terminate. Commits are read
// on demand from the object store (or the commit-header cache when it is
// warm) rather than held as a graph of owned nodes.
package history

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mugit-vcs/mugit/internal/hash"
	"github.com/mugit-vcs/mugit/internal/objects"
	"github.com/mugit-vcs/mugit/internal/store"
)

// ErrNoCommits reports a log request on a branch with no tip yet.
var ErrNoCommits = errors.New("HEAD does not have any commits yet")

// Entry pairs a commit with the hash it was retrieved under.
type Entry struct {
	Hash   hash.Hash
	Commit *objects.Commit
}

// Walker reads commit history for one repository.
type Walker struct {
	store *store.Store
	cache *store.CommitCache
}

// NewWalker opens a walker for projRoot. The header cache is optional;
// when it cannot be opened the walker reads loose objects only.
func NewWalker(projRoot string) *Walker {
	w := &Walker{store: store.New(projRoot)}
	if cache, err := store.OpenCommitCache(projRoot); err == nil {
		w.cache = cache
	}
	return w
}

// Close releases the cache, if any.
func (w *Walker) Close() error {
	if w.cache != nil {
		return w.cache.Close()
	}
	return nil
}

// Log traverses the DAG from tip and returns every reachable commit in
// descending author-timestamp order.
func (w *Walker) Log(tip hash.Hash) ([]Entry, error) {
	visited := map[hash.Hash]bool{}
	var entries []Entry
	if err := w.dfs(tip, visited, &entries); err != nil {
		return nil, err
	}

	// Stable sort ascending, then reverse, so timestamp ties come out in
	// reverse traversal order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Commit.Author.When.Unix() < entries[j].Commit.Author.When.Unix()
	})
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

func (w *Walker) dfs(node hash.Hash, visited map[hash.Hash]bool, out *[]Entry) error {
	if visited[node] {
		return nil
	}
	visited[node] = true

	c, err := w.readCommit(node)
	if err != nil {
		return err
	}
	for _, parent := range c.Parents {
		if err := w.dfs(parent, visited, out); err != nil {
			return err
		}
	}
	*out = append(*out, Entry{Hash: node, Commit: c})
	return nil
}

// readCommit consults the cache first and falls back to the store,
// warming the cache on a miss.
func (w *Walker) readCommit(h hash.Hash) (*objects.Commit, error) {
	if w.cache != nil {
		if canonical, err := w.cache.Get(h); err == nil && canonical != nil {
			return objects.CommitFromBytes(canonical)
		}
	}

	canonical, err := w.store.Get(h)
	if err != nil {
		return nil, fmt.Errorf("read commit %s: %w", h, err)
	}
	c, err := objects.CommitFromBytes(canonical)
	if err != nil {
		return nil, err
	}
	if w.cache != nil {
		_ = w.cache.Put(h, canonical)
	}
	return c, nil
}

// Render joins log entries into the printable history, one blank line
// between blocks. tipRefs decorates the commit matching tipHash.
// highlight, when non-nil, wraps each block's header line (terminal
// coloring).
func Render(entries []Entry, tipHash hash.Hash, tipRefs []string, highlight func(string) string) string {
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		var refs []string
		if e.Hash == tipHash {
			refs = tipRefs
		}
		block := e.Commit.LogEntry(e.Hash, refs)
		if highlight != nil {
			parts := strings.SplitN(block, "\n", 2)
			block = highlight(parts[0]) + "\n" + parts[1]
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n")
}
