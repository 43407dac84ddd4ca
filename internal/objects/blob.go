package objects

import (
	"io"
	"os"

	"github.com/mugit-vcs/mugit/internal/hash"
)

// Blob holds the verbatim contents of one working-tree file.
type Blob struct {
	Content []byte
}

// NewBlob wraps raw file content.
func NewBlob(content []byte) *Blob {
	return &Blob{Content: content}
}

// BlobFromFile reads the file at path into a blob.
func BlobFromFile(path string) (*Blob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return NewBlob(content), nil
}

// BlobFromBytes parses a canonical blob serialization.
func BlobFromBytes(data []byte) (*Blob, error) {
	payload, err := parseHeader(KindBlob, data)
	if err != nil {
		return nil, err
	}
	content := make([]byte, len(payload))
	copy(content, payload)
	return &Blob{Content: content}, nil
}

func (b *Blob) Kind() Kind { return KindBlob }

// Bytes returns "blob <len>\x00<content>".
func (b *Blob) Bytes() []byte {
	h := header(KindBlob, len(b.Content))
	out := make([]byte, 0, len(h)+len(b.Content))
	out = append(out, h...)
	out = append(out, b.Content...)
	return out
}

func (b *Blob) Hash() hash.Hash {
	return hash.Sum(b.Bytes())
}
