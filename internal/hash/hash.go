// Package hash provides the 20-byte SHA-1 object identity used throughout
// the repository format.
//
// Every object is addressed by the SHA-1 digest of its uncompressed
// canonical serialization. The digest also determines where the object
// lives on disk: the first two hex characters name the fan-out directory,
// the remaining 38 name the file.
package hash

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/pjbgf/sha1cd"
)

const (
	// Size is the byte length of a hash.
	Size = 20
	// HexSize is the length of the lowercase hex form.
	HexSize = Size * 2
)

// ErrInvalidHash reports a malformed hash value.
var ErrInvalidHash = errors.New("invalid hash value")

// Hash is a SHA-1 digest identifying one object. Immutable once constructed.
type Hash [Size]byte

// FromBytes builds a Hash from exactly Size raw bytes.
func FromBytes(b []byte) (Hash, error) {
	if len(b) != Size {
		return Hash{}, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidHash, Size, len(b))
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}

// FromHex builds a Hash from a 40-character lowercase hex string.
func FromHex(s string) (Hash, error) {
	if len(s) != HexSize {
		return Hash{}, fmt.Errorf("%w: want %d hex chars, got %d", ErrInvalidHash, HexSize, len(s))
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return Hash{}, fmt.Errorf("%w: non-lowercase-hex character %q", ErrInvalidHash, c)
		}
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return FromBytes(b)
}

// Sum computes the SHA-1 digest of data.
func Sum(data []byte) Hash {
	d := sha1cd.New()
	d.Write(data)
	var h Hash
	copy(h[:], d.Sum(nil))
	return h
}

// Bytes returns a copy of the raw digest.
func (h Hash) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, h[:])
	return out
}

// Hex returns the lowercase hex form.
func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) String() string {
	return h.Hex()
}

// Path returns the object's storage sub-path, "xx/yyyy...".
func (h Hash) Path() string {
	s := h.Hex()
	return filepath.Join(s[:2], s[2:])
}

// Compare orders hashes by unsigned byte-wise comparison.
func (h Hash) Compare(other Hash) int {
	return bytes.Compare(h[:], other[:])
}

// IsZero reports whether h is the all-zero value.
func (h Hash) IsZero() bool {
	return h == Hash{}
}
