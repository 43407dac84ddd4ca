// Package objects implements the typed object model: blobs, trees, and
// commits, with bit-exact serialization to and from the canonical wire
// format.
//
// Every object serializes as "<kind> <decimal-length>\x00<payload>". The
// object's hash is the SHA-1 of that uncompressed form; the on-disk form
// is the zlib-compressed serialization. Parsers reject headers whose
// length field disagrees with the payload.
package objects

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/mugit-vcs/mugit/internal/codec"
	"github.com/mugit-vcs/mugit/internal/hash"
)

// Kind enumerates the object kinds carried by the store. The set is
// closed: unknown kinds are parse errors.
type Kind string

const (
	KindBlob   Kind = "blob"
	KindTree   Kind = "tree"
	KindCommit Kind = "commit"
)

// ErrParse reports a malformed object serialization.
var ErrParse = errors.New("malformed object")

// Object is any value with a canonical serialization.
type Object interface {
	Kind() Kind
	// Bytes returns the canonical serialization, header included.
	Bytes() []byte
	// Hash returns the SHA-1 of the canonical serialization.
	Hash() hash.Hash
}

// header renders the canonical object header for a payload of n bytes.
func header(kind Kind, n int) []byte {
	return []byte(fmt.Sprintf("%s %d\x00", kind, n))
}

// parseHeader validates "<kind> <len>\x00" and returns the payload. The
// stated length must match the remaining byte count exactly.
func parseHeader(kind Kind, data []byte) ([]byte, error) {
	prefix := []byte(string(kind) + " ")
	if !bytes.HasPrefix(data, prefix) {
		return nil, fmt.Errorf("%w: not a %s object", ErrParse, kind)
	}
	rest := data[len(prefix):]
	lenStr := string(codec.ExtractUntilNull(rest))
	if len(lenStr) == len(rest) {
		return nil, fmt.Errorf("%w: missing NUL after %s header", ErrParse, kind)
	}
	n, err := strconv.Atoi(lenStr)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: bad %s length %q", ErrParse, kind, lenStr)
	}
	payload := rest[len(lenStr)+1:]
	if len(payload) != n {
		return nil, fmt.Errorf("%w: %s header says %d bytes, payload has %d", ErrParse, kind, n, len(payload))
	}
	return payload, nil
}

// Parse dispatches canonical bytes to the parser for their kind.
func Parse(data []byte) (Object, error) {
	switch {
	case bytes.HasPrefix(data, []byte("blob ")):
		return BlobFromBytes(data)
	case bytes.HasPrefix(data, []byte("tree ")):
		return TreeFromBytes(data)
	case bytes.HasPrefix(data, []byte("commit ")):
		return CommitFromBytes(data)
	}
	return nil, fmt.Errorf("%w: unknown object kind", ErrParse)
}

// ParseCompressed inflates a zlib-compressed on-disk object and parses it.
func ParseCompressed(data []byte) (Object, error) {
	raw, err := codec.Decompress(data)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}
