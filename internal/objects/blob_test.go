package objects

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobHash(t *testing.T) {
	b := NewBlob([]byte("ohayo"))
	assert.Equal(t, "e7c23f4e29dc1ae1bc1e8807bb2838d0c9fb6ab5", b.Hash().Hex())
}

func TestBlobBytes(t *testing.T) {
	b := NewBlob([]byte("hello world\n"))
	assert.Equal(t, []byte("blob 12\x00hello world\n"), b.Bytes())
	assert.Equal(t, "3b18e512dba79e4c8300dd08aeb37f8e728b8dad", b.Hash().Hex())
}

func TestBlobFromBytes(t *testing.T) {
	b, err := BlobFromBytes([]byte("blob 12\x00hello world\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world\n"), b.Content)
}

func TestBlobRoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte(""),
		[]byte("ohayo"),
		[]byte("binary\x00payload\xff"),
	}
	for _, p := range payloads {
		b, err := BlobFromBytes(NewBlob(p).Bytes())
		require.NoError(t, err)
		assert.Equal(t, p, b.Content)
	}
}

func TestBlobFromBytesErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"wrong kind", []byte("tree 0\x00")},
		{"length too long", []byte("blob 13\x00hello world\n")},
		{"length too short", []byte("blob 11\x00hello world\n")},
		{"no null", []byte("blob 12")},
		{"bad length", []byte("blob x\x00y")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BlobFromBytes(tt.input)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestBlobFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\n"), 0644))

	b, err := BlobFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello\n"), b.Content)

	_, err = BlobFromFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
