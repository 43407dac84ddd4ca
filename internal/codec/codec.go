// Package codec holds the low-level byte plumbing shared by the object and
// index formats: zlib framing, fixed-width big-endian integers, and
// NUL-terminated string extraction.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ErrBadLength reports a slice whose length does not match the fixed-width
// integer being unpacked.
var ErrBadLength = errors.New("wrong slice length")

// Compress returns data zlib-compressed at the default level.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("zlib write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib close: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress inflates a zlib stream.
func Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib reader: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("zlib read: %w", err)
	}
	return out, nil
}

// Uint32 unpacks a big-endian u32 from exactly four bytes.
func Uint32(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("%w: want 4, got %d", ErrBadLength, len(b))
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// Uint16 unpacks a big-endian u16 from exactly two bytes.
func Uint16(b []byte) (uint16, error) {
	if len(b) != 2 {
		return 0, fmt.Errorf("%w: want 2, got %d", ErrBadLength, len(b))
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// AppendUint32 appends v in big-endian order.
func AppendUint32(dst []byte, v uint32) []byte {
	return append(dst, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// AppendUint16 appends v in big-endian order.
func AppendUint16(dst []byte, v uint16) []byte {
	return append(dst, byte(v>>8), byte(v))
}

// ExtractUntilNull returns the prefix of b up to but not including the
// first NUL byte, or all of b if it contains none.
func ExtractUntilNull(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}
