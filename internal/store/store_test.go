package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mugit-vcs/mugit/internal/hash"
)

func TestPutGet(t *testing.T) {
	root := t.TempDir()
	st := New(root)

	canonical := []byte("blob 5\x00ohayo")
	h := hash.Sum(canonical)
	require.NoError(t, st.Put(h, canonical))

	assert.True(t, st.Has(h))
	got, err := st.Get(h)
	require.NoError(t, err)
	assert.Equal(t, canonical, got)

	// The stored form inflates back to bytes hashing to the address.
	assert.Equal(t, h, hash.Sum(got))
}

func TestPutLayout(t *testing.T) {
	root := t.TempDir()
	st := New(root)

	canonical := []byte("blob 5\x00ohayo")
	h := hash.Sum(canonical)
	require.NoError(t, st.Put(h, canonical))

	hex := h.Hex()
	path := filepath.Join(root, ".git", "objects", hex[:2], hex[2:])
	_, err := os.Stat(path)
	assert.NoError(t, err)
	// No temp file may be left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestPutExistingIsNoop(t *testing.T) {
	root := t.TempDir()
	st := New(root)

	canonical := []byte("blob 2\x00hi")
	h := hash.Sum(canonical)
	require.NoError(t, st.Put(h, canonical))

	// Scribble on the stored file; a second Put must not touch it.
	path := filepath.Join(root, ".git", "objects", h.Path())
	require.NoError(t, os.WriteFile(path, []byte("sentinel"), 0644))
	require.NoError(t, st.Put(h, canonical))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("sentinel"), data)
}

func TestPutHashMismatch(t *testing.T) {
	st := New(t.TempDir())
	err := st.Put(hash.Sum([]byte("other")), []byte("blob 2\x00hi"))
	assert.Error(t, err)
}

func TestGetMissing(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Get(hash.Sum([]byte("nothing here")))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommitCache(t *testing.T) {
	root := t.TempDir()
	cache, err := OpenCommitCache(root)
	require.NoError(t, err)
	defer cache.Close()

	canonical := []byte("commit 5\x00tree ")
	h := hash.Sum(canonical)

	got, err := cache.Get(h)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Put(h, canonical))
	got, err = cache.Get(h)
	require.NoError(t, err)
	assert.Equal(t, canonical, got)
}

func TestCommitCacheReopen(t *testing.T) {
	root := t.TempDir()
	canonical := []byte("commit 4\x00tree")
	h := hash.Sum(canonical)

	cache, err := OpenCommitCache(root)
	require.NoError(t, err)
	require.NoError(t, cache.Put(h, canonical))
	require.NoError(t, cache.Close())

	cache, err = OpenCommitCache(root)
	require.NoError(t, err)
	defer cache.Close()
	got, err := cache.Get(h)
	require.NoError(t, err)
	assert.Equal(t, canonical, got)
}
