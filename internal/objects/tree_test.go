package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mugit-vcs/mugit/internal/hash"
)

func mustHash(t *testing.T, hex string) hash.Hash {
	t.Helper()
	h, err := hash.FromHex(hex)
	require.NoError(t, err)
	return h
}

// treeFixture is "tree 67\x00" followed by a file node for hello.txt and a
// directory node for sub.
func treeFixture(t *testing.T) []byte {
	t.Helper()
	body := append([]byte("100644 hello.txt\x00"), mustHash(t, "3b18e512dba79e4c8300dd08aeb37f8e728b8dad").Bytes()...)
	body = append(body, []byte("40000 sub\x00")...)
	body = append(body, mustHash(t, "68ffd9f1fd447b83f26963cb50155532b00108f1").Bytes()...)
	return append([]byte("tree 67\x00"), body...)
}

func TestTreeFromBytes(t *testing.T) {
	tree, err := TreeFromBytes(treeFixture(t))
	require.NoError(t, err)
	require.Len(t, tree.Nodes, 2)

	assert.Equal(t, TreeNode{
		Type: TypeFile,
		Perm: PermUnExecutable,
		Name: "hello.txt",
		Hash: mustHash(t, "3b18e512dba79e4c8300dd08aeb37f8e728b8dad"),
	}, tree.Nodes[0])
	assert.Equal(t, TreeNode{
		Type: TypeDirectory,
		Perm: PermNone,
		Name: "sub",
		Hash: mustHash(t, "68ffd9f1fd447b83f26963cb50155532b00108f1"),
	}, tree.Nodes[1])
}

func TestTreeRoundTrip(t *testing.T) {
	fixture := treeFixture(t)
	tree, err := TreeFromBytes(fixture)
	require.NoError(t, err)
	assert.Equal(t, fixture, tree.Bytes())
}

func TestTreeHashIsAppendOrderDependent(t *testing.T) {
	a := TreeNode{Type: TypeFile, Perm: PermUnExecutable, Name: "a", Hash: hash.Sum([]byte("a"))}
	b := TreeNode{Type: TypeFile, Perm: PermUnExecutable, Name: "b", Hash: hash.Sum([]byte("b"))}

	t1 := NewTree()
	t1.Add(a)
	t1.Add(b)
	t2 := NewTree()
	t2.Add(b)
	t2.Add(a)
	assert.NotEqual(t, t1.Hash(), t2.Hash())

	t3 := NewTree()
	t3.Add(a)
	t3.Add(b)
	assert.Equal(t, t1.Hash(), t3.Hash())
}

func TestParseTreeNode(t *testing.T) {
	// Trailing bytes beyond the node must be left unconsumed.
	input := append([]byte("100644 has space.txt\x00"), mustHash(t, "064a92d783f99851d1517b51ba0b2aed4a1d3128").Bytes()...)
	input = append(input, 0xf3, 0x80)

	node, n, err := parseTreeNode(input)
	require.NoError(t, err)
	assert.Equal(t, 41, n)
	assert.Equal(t, TreeNode{
		Type: TypeFile,
		Perm: PermUnExecutable,
		Name: "has space.txt",
		Hash: mustHash(t, "064a92d783f99851d1517b51ba0b2aed4a1d3128"),
	}, node)
}

func TestTreeNodeBytes(t *testing.T) {
	node := TreeNode{
		Type: TypeFile,
		Perm: PermUnExecutable,
		Name: "has space.txt",
		Hash: mustHash(t, "064a92d783f99851d1517b51ba0b2aed4a1d3128"),
	}
	want := append([]byte("100644 has space.txt\x00"), node.Hash.Bytes()...)
	assert.Equal(t, want, node.Bytes())
}

func TestParseTreeNodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"bad file type", []byte("130644 x\x00")},
		{"bad permission", []byte("100600 x\x00")},
		{"truncated hash", append([]byte("100644 x\x00"), 1, 2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseTreeNode(tt.input)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestEmptyTree(t *testing.T) {
	tree := NewTree()
	assert.Equal(t, []byte("tree 0\x00"), tree.Bytes())

	back, err := TreeFromBytes(tree.Bytes())
	require.NoError(t, err)
	assert.Empty(t, back.Nodes)
}
