package objects

import (
	"fmt"

	"github.com/mugit-vcs/mugit/internal/codec"
	"github.com/mugit-vcs/mugit/internal/hash"
)

// FileType is the leading octal file-type code of a tree node.
type FileType string

const (
	TypeDirectory    FileType = "40"
	TypeFile         FileType = "100"
	TypeSymbolicLink FileType = "120"
	TypeSubmodule    FileType = "160"
)

// fileTypeFromBytes matches the code at the start of a node serialization.
func fileTypeFromBytes(b []byte) (FileType, error) {
	for _, t := range []FileType{TypeDirectory, TypeFile, TypeSymbolicLink, TypeSubmodule} {
		if len(b) >= len(t) && string(b[:len(t)]) == string(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: invalid file type code", ErrParse)
}

// Permission is the three-octal-digit permission code of a tree node.
type Permission string

const (
	PermNone         Permission = "000"
	PermExecutable   Permission = "755"
	PermUnExecutable Permission = "644"
)

func permissionFromBytes(b []byte) (Permission, error) {
	for _, p := range []Permission{PermExecutable, PermUnExecutable, PermNone} {
		if len(b) >= len(p) && string(b[:len(p)]) == string(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: invalid permission code", ErrParse)
}

// TreeNode is one entry of a tree object: "<type><perm> <name>\x00<20 hash bytes>".
type TreeNode struct {
	Type FileType
	Perm Permission
	Name string
	Hash hash.Hash
}

// DirectoryNode builds the node referencing a sub-tree.
func DirectoryNode(name string, h hash.Hash) TreeNode {
	return TreeNode{Type: TypeDirectory, Perm: PermNone, Name: name, Hash: h}
}

// parseTreeNode reads one node from the front of b, returning the node and
// the number of bytes consumed.
func parseTreeNode(b []byte) (TreeNode, int, error) {
	ft, err := fileTypeFromBytes(b)
	if err != nil {
		return TreeNode{}, 0, err
	}
	offset := len(ft)

	perm, err := permissionFromBytes(b[offset:])
	if err != nil {
		return TreeNode{}, 0, err
	}
	offset += len(perm) + 1 // permission code and the space before the name

	name := string(codec.ExtractUntilNull(b[offset:]))
	offset += len(name) + 1
	if offset+hash.Size > len(b) {
		return TreeNode{}, 0, fmt.Errorf("%w: tree node truncated", ErrParse)
	}
	h, err := hash.FromBytes(b[offset : offset+hash.Size])
	if err != nil {
		return TreeNode{}, 0, fmt.Errorf("%w: %v", ErrParse, err)
	}
	offset += hash.Size

	return TreeNode{Type: ft, Perm: perm, Name: name, Hash: h}, offset, nil
}

// Bytes serializes the node.
func (n TreeNode) Bytes() []byte {
	out := []byte(fmt.Sprintf("%s%s %s\x00", n.Type, n.Perm, n.Name))
	return append(out, n.Hash.Bytes()...)
}

// Tree is an ordered list of nodes. The serialization, and therefore the
// hash, is a pure function of the node list in append order; trees are
// never re-sorted.
type Tree struct {
	Nodes []TreeNode
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// TreeFromBytes parses a canonical tree serialization.
func TreeFromBytes(data []byte) (*Tree, error) {
	payload, err := parseHeader(KindTree, data)
	if err != nil {
		return nil, err
	}

	t := NewTree()
	offset := 0
	for offset < len(payload) {
		node, n, err := parseTreeNode(payload[offset:])
		if err != nil {
			return nil, err
		}
		t.Add(node)
		offset += n
	}
	return t, nil
}

// TreeFromCompressed parses a zlib-compressed tree.
func TreeFromCompressed(data []byte) (*Tree, error) {
	raw, err := codec.Decompress(data)
	if err != nil {
		return nil, err
	}
	return TreeFromBytes(raw)
}

// Add appends a node, preserving insertion order.
func (t *Tree) Add(n TreeNode) {
	t.Nodes = append(t.Nodes, n)
}

func (t *Tree) Kind() Kind { return KindTree }

// Bytes returns "tree <len>\x00<node>...".
func (t *Tree) Bytes() []byte {
	var body []byte
	for _, n := range t.Nodes {
		body = append(body, n.Bytes()...)
	}
	out := header(KindTree, len(body))
	return append(out, body...)
}

func (t *Tree) Hash() hash.Hash {
	return hash.Sum(t.Bytes())
}
