// Package commit turns the flat staging index into the object DAG: it
// synthesizes the hierarchical tree objects bottom-up, composes the
// commit object, persists everything, and advances the branch tip.
//
// The intermediate path tree is built once per commit and handed off by
// value; child order mirrors the sorted iteration order of the index,
// which makes the resulting hashes deterministic.
package commit

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mugit-vcs/mugit/internal/config"
	"github.com/mugit-vcs/mugit/internal/hash"
	"github.com/mugit-vcs/mugit/internal/index"
	"github.com/mugit-vcs/mugit/internal/objects"
	"github.com/mugit-vcs/mugit/internal/refs"
	"github.com/mugit-vcs/mugit/internal/store"
)

var (
	// ErrNoIndex reports a commit attempt with nothing ever staged.
	ErrNoIndex = errors.New("no index found")
	// ErrNoMessage reports a commit attempt without a message.
	ErrNoMessage = errors.New("no commit message")
	// ErrNoBranch reports a HEAD that resolves to no branch at all.
	ErrNoBranch = errors.New("HEAD names no branch")
)

// TreePair hands a synthesized tree and its hash to the persistence step.
type TreePair struct {
	Hash hash.Hash
	Tree *objects.Tree
}

// pathNode is one directory of the intermediate tree. Children keep
// insertion order, which derives from the index's sorted key order.
type pathNode struct {
	children []childRef
}

// childRef is either a staged file (leaf != nil) or a subdirectory.
type childRef struct {
	name string
	leaf *index.Entry
	node *pathNode
}

// insert descends along components, creating directories as needed, and
// installs the entry at the terminal component.
func (n *pathNode) insert(components []string, e *index.Entry) error {
	if len(components) == 1 {
		n.children = append(n.children, childRef{name: components[0], leaf: e})
		return nil
	}
	name := components[0]
	for i := range n.children {
		if n.children[i].name != name {
			continue
		}
		if n.children[i].node == nil {
			return fmt.Errorf("path component %q is both file and directory", name)
		}
		return n.children[i].node.insert(components[1:], e)
	}
	child := &pathNode{}
	if err := child.insert(components[1:], e); err != nil {
		return err
	}
	n.children = append(n.children, childRef{name: name, node: child})
	return nil
}

// emit synthesizes this node's tree bottom-up, appending every (hash,
// tree) pair to list, and returns the node's own hash.
func (n *pathNode) emit(list *[]TreePair) (hash.Hash, error) {
	tree := objects.NewTree()
	for _, c := range n.children {
		if c.leaf != nil {
			node, err := nodeFromEntry(c.leaf)
			if err != nil {
				return hash.Hash{}, err
			}
			tree.Add(node)
			continue
		}
		h, err := c.node.emit(list)
		if err != nil {
			return hash.Hash{}, err
		}
		tree.Add(objects.DirectoryNode(c.name, h))
	}

	h := tree.Hash()
	*list = append(*list, TreePair{Hash: h, Tree: tree})
	return h, nil
}

// nodeFromEntry maps an index entry's mode bits onto a tree node. Mode
// values outside the enumerated sets are construction errors.
func nodeFromEntry(e *index.Entry) (objects.TreeNode, error) {
	var ft objects.FileType
	switch e.FileType() {
	case 0b1000:
		ft = objects.TypeFile
	case 0b1010:
		ft = objects.TypeSymbolicLink
	case 0b1110:
		ft = objects.TypeSubmodule
	default:
		return objects.TreeNode{}, fmt.Errorf("unsupported file type bits %04b for %s", e.FileType(), e.Path)
	}

	var perm objects.Permission
	switch e.Permission() {
	case 0o755:
		perm = objects.PermExecutable
	case 0o644:
		perm = objects.PermUnExecutable
	default:
		return objects.TreeNode{}, fmt.Errorf("unsupported permission bits %04o for %s", e.Permission(), e.Path)
	}

	return objects.TreeNode{Type: ft, Perm: perm, Name: e.FileName(), Hash: e.Hash}, nil
}

// BuildTree assembles the hierarchical tree for idx and returns the root
// hash plus every synthesized sub-tree. The same key order always yields
// the same hashes.
func BuildTree(idx *index.Index) (hash.Hash, []TreePair, error) {
	root := &pathNode{}
	var insertErr error
	idx.Each(func(path string, e *index.Entry) {
		if insertErr != nil {
			return
		}
		insertErr = root.insert(strings.Split(path, "/"), e)
	})
	if insertErr != nil {
		return hash.Hash{}, nil, insertErr
	}

	var trees []TreePair
	rootHash, err := root.emit(&trees)
	if err != nil {
		return hash.Hash{}, nil, err
	}
	return rootHash, trees, nil
}

// Create runs the commit pipeline: synthesize and persist the trees,
// compose and persist the commit, cache its header, and advance the
// branch tip (the linearization point). The parent list is the previous
// tip when the branch has one, and empty otherwise.
func Create(projRoot string, idx *index.Index, head *refs.Head, user config.User,
	message string, now time.Time) (hash.Hash, error) {

	if head.Detached {
		return hash.Hash{}, fmt.Errorf("%w, please create a branch", refs.ErrDetachedHead)
	}
	if head.Branch == "" {
		return hash.Hash{}, ErrNoBranch
	}
	if idx == nil {
		return hash.Hash{}, ErrNoIndex
	}
	if message == "" {
		return hash.Hash{}, ErrNoMessage
	}
	if err := user.Validate(); err != nil {
		return hash.Hash{}, err
	}

	rootHash, trees, err := BuildTree(idx)
	if err != nil {
		return hash.Hash{}, err
	}

	st := store.New(projRoot)
	for _, tp := range trees {
		if err := st.Put(tp.Hash, tp.Tree.Bytes()); err != nil {
			return hash.Hash{}, err
		}
	}

	var parents []hash.Hash
	if head.HasTip {
		parents = []hash.Hash{head.Tip}
	}
	author := objects.NewCommitUser(objects.RoleAuthor, user.Name, user.Email, now)
	c := objects.NewCommit(rootHash, parents, author, author.WithRole(objects.RoleCommitter), message)

	commitHash := c.Hash()
	if err := st.Put(commitHash, c.Bytes()); err != nil {
		return hash.Hash{}, err
	}

	// The header cache is advisory; a failure here must not block the tip.
	if cache, err := store.OpenCommitCache(projRoot); err == nil {
		_ = cache.Put(commitHash, c.Bytes())
		_ = cache.Close()
	}

	if err := refs.WriteBranchTip(projRoot, head.Branch, commitHash); err != nil {
		return hash.Hash{}, err
	}
	return commitHash, nil
}
