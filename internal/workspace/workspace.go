// Package workspace scans the working tree against the staging index.
//
// A scan partitions the repository-relative paths under a search root
// into three disjoint sets: new (on disk, not staged), modified (staged,
// and the file's mtime moved past the staged value), and deleted (staged
// under the root, no longer on disk). Modification detection trusts
// mtime; content is not re-hashed.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mugit-vcs/mugit/internal/hash"
	"github.com/mugit-vcs/mugit/internal/index"
	"github.com/mugit-vcs/mugit/internal/objects"
	"github.com/mugit-vcs/mugit/internal/store"
)

// Diff is the outcome of one scan. Paths are repository-relative and
// sorted ascending.
type Diff struct {
	New      []string
	Modified []string
	Deleted  []string
}

type scanner struct {
	idx      *index.Index
	projRoot string
	newSet   map[string]struct{}
	modSet   map[string]struct{}
	delSet   map[string]struct{}
}

// Scan walks the file system under searchRoot (repository-relative; ""
// scans the whole tree) and classifies every regular file against idx,
// which may be nil when nothing has been staged yet. Directory entries
// named .git are skipped, as are symbolic links, special files, and
// entries that cannot be read.
func Scan(idx *index.Index, projRoot, searchRoot string) (*Diff, error) {
	s := &scanner{
		idx:      idx,
		projRoot: projRoot,
		newSet:   map[string]struct{}{},
		modSet:   map[string]struct{}{},
		delSet:   map[string]struct{}{},
	}

	// Everything staged under the root starts out deleted; walking the
	// tree rescues the paths still present.
	if idx != nil {
		for _, p := range subNodes(idx.Paths(), searchRoot) {
			s.delSet[p] = struct{}{}
		}
	}

	start := projRoot
	if searchRoot != "" {
		start = filepath.Join(projRoot, filepath.FromSlash(searchRoot))
	}
	// A search root that vanished entirely still yields its deleted set.
	if info, err := os.Stat(start); err == nil {
		if err := s.walk(start, info.IsDir()); err != nil {
			return nil, err
		}
	}

	return &Diff{
		New:      sortedKeys(s.newSet),
		Modified: sortedKeys(s.modSet),
		Deleted:  sortedKeys(s.delSet),
	}, nil
}

// walk recurses below path. isDir distinguishes the two legs so that a
// search root naming a single file still classifies it.
func (s *scanner) walk(path string, isDir bool) error {
	if isDir {
		dirEntries, err := os.ReadDir(path)
		if err != nil {
			return nil // unreadable directory, skip silently
		}
		for _, de := range dirEntries {
			if de.Name() == ".git" {
				continue
			}
			child := filepath.Join(path, de.Name())
			if de.IsDir() {
				if err := s.walk(child, true); err != nil {
					return err
				}
				continue
			}
			if !de.Type().IsRegular() {
				continue // symlinks and special files are not staged here
			}
			if err := s.classify(child); err != nil {
				return err
			}
		}
		return nil
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}
	return s.classify(path)
}

// classify buckets one regular file as new or modified.
func (s *scanner) classify(path string) error {
	rel, err := filepath.Rel(s.projRoot, path)
	if err != nil {
		return err
	}
	rel = filepath.ToSlash(rel)

	if s.idx == nil {
		s.newSet[rel] = struct{}{}
		return nil
	}

	delete(s.delSet, rel)
	entry, ok := s.idx.GetEntry(rel)
	if !ok {
		s.newSet[rel] = struct{}{}
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	modTime := uint64(uint32(info.ModTime().Unix()))<<32 | uint64(uint32(info.ModTime().Nanosecond()))
	if modTime > entry.ModTime() {
		s.modSet[rel] = struct{}{}
	}
	return nil
}

// Stage runs the staging pipeline for searchRoot: scan the tree, write a
// blob for every new and modified file, drop deleted entries, and rewrite
// the index wholesale. Blobs hit the object store before the index does,
// so a persisted index never points at a missing blob.
func Stage(projRoot, searchRoot string) (*Diff, error) {
	idx, err := index.FromFile(projRoot)
	if err != nil {
		return nil, err
	}

	diff, err := Scan(idx, projRoot, searchRoot)
	if err != nil {
		return nil, err
	}
	if idx == nil {
		idx = index.New()
	}

	st := store.New(projRoot)
	staged := append(append([]string{}, diff.New...), diff.Modified...)
	hashes := make(map[string]hash.Hash, len(staged))
	for _, rel := range staged {
		blob, err := objects.BlobFromFile(filepath.Join(projRoot, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("could not fetch file %s: %w", rel, err)
		}
		h := blob.Hash()
		if err := st.Put(h, blob.Bytes()); err != nil {
			return nil, err
		}
		hashes[rel] = h
	}

	for _, rel := range diff.Deleted {
		idx.DeleteEntry(rel)
	}
	for _, rel := range staged {
		if err := idx.AddEntry(projRoot, rel, hashes[rel]); err != nil {
			return nil, err
		}
	}
	if err := idx.WriteFile(projRoot); err != nil {
		return nil, err
	}
	return diff, nil
}

// subNodes selects the keys having root as a path prefix. Keys arrive
// sorted, so the lower bound comes from a binary search and the scan
// stops when the prefix ends.
func subNodes(keys []string, root string) []string {
	if root == "" {
		return keys
	}
	var out []string
	if i := sort.SearchStrings(keys, root); i < len(keys) && keys[i] == root {
		out = append(out, root)
	}
	// Keys such as "src.txt" sort between "src" and "src/...", so the
	// children are searched from "src/" on.
	start := sort.SearchStrings(keys, root+"/")
	for _, k := range keys[start:] {
		if !hasPathPrefix(k, root) {
			break
		}
		out = append(out, k)
	}
	return out
}

// hasPathPrefix reports whether root is a component-wise prefix of key.
func hasPathPrefix(key, root string) bool {
	if root == "" {
		return true
	}
	return key == root || strings.HasPrefix(key, root+"/")
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
