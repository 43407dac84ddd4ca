package index

import (
	"fmt"
	"os"
	"path"

	"github.com/mugit-vcs/mugit/internal/codec"
	"github.com/mugit-vcs/mugit/internal/hash"
)

// entryFixedLen is the byte length of an entry before the path: ten u32
// stat fields, the hash, and the u16 flags.
const entryFixedLen = 10*4 + hash.Size + 2

// Entry is the staged metadata for one repository-relative path,
// mirroring POSIX stat. All integer fields serialize big-endian.
type Entry struct {
	CTime     uint32
	CTimeNano uint32
	MTime     uint32
	MTimeNano uint32
	Dev       uint32
	Inode     uint32
	Mode      uint32
	UID       uint32
	GID       uint32
	Size      uint32
	Hash      hash.Hash
	Flags     uint16
	Path      string
}

// fillSystemInfo copies the stat fields the portable API does not expose
// (ctime, dev, inode, mode, uid, gid). Set per platform.
var fillSystemInfo func(*Entry, any)

// NewEntry stats the working-tree file at absPath and builds the entry
// keyed by relPath. The low 12 flag bits hold min(path length, 0xFFF).
func NewEntry(absPath, relPath string, h hash.Hash) (*Entry, error) {
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", absPath, err)
	}

	flags := len(relPath)
	if flags > 0xFFF {
		flags = 0xFFF
	}

	e := &Entry{
		MTime:     uint32(info.ModTime().Unix()),
		MTimeNano: uint32(info.ModTime().Nanosecond()),
		Size:      uint32(info.Size()),
		Hash:      h,
		Flags:     uint16(flags),
		Path:      relPath,
	}
	if fillSystemInfo != nil {
		fillSystemInfo(e, info.Sys())
	}
	return e, nil
}

// parseEntry reads one entry from the front of b, returning it and the
// total padded length consumed.
func parseEntry(b []byte) (*Entry, int, error) {
	if len(b) < entryFixedLen+1 {
		return nil, 0, fmt.Errorf("%w: index entry truncated", ErrParse)
	}

	e := &Entry{}
	pos := 0
	for _, field := range []*uint32{
		&e.CTime, &e.CTimeNano, &e.MTime, &e.MTimeNano, &e.Dev,
		&e.Inode, &e.Mode, &e.UID, &e.GID, &e.Size,
	} {
		v, err := codec.Uint32(b[pos : pos+4])
		if err != nil {
			return nil, 0, err
		}
		*field = v
		pos += 4
	}

	h, err := hash.FromBytes(b[pos : pos+hash.Size])
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrParse, err)
	}
	e.Hash = h
	pos += hash.Size

	flags, err := codec.Uint16(b[pos : pos+2])
	if err != nil {
		return nil, 0, err
	}
	e.Flags = flags
	pos += 2

	e.Path = string(codec.ExtractUntilNull(b[pos:]))
	pos += len(e.Path)

	// Pad to the next multiple of eight, always at least one NUL.
	total := (pos/8 + 1) * 8
	if total > len(b) {
		return nil, 0, fmt.Errorf("%w: index entry padding truncated", ErrParse)
	}
	return e, total, nil
}

// Bytes serializes the entry, padded with NULs to a multiple of eight
// bytes (at least one).
func (e *Entry) Bytes() []byte {
	out := make([]byte, 0, entryFixedLen+len(e.Path)+8)
	for _, v := range []uint32{
		e.CTime, e.CTimeNano, e.MTime, e.MTimeNano, e.Dev,
		e.Inode, e.Mode, e.UID, e.GID, e.Size,
	} {
		out = codec.AppendUint32(out, v)
	}
	out = append(out, e.Hash.Bytes()...)
	out = codec.AppendUint16(out, e.Flags)
	out = append(out, e.Path...)

	pad := 8 - len(out)%8
	if pad == 0 {
		pad = 8
	}
	return append(out, make([]byte, pad)...)
}

// ModTime packs the modification time as mtime seconds << 32 | nanos,
// the value modification detection compares against.
func (e *Entry) ModTime() uint64 {
	return uint64(e.MTime)<<32 | uint64(e.MTimeNano)
}

// FileType returns the file-type bits, (mode >> 12) & 0xF.
func (e *Entry) FileType() uint8 {
	return uint8((e.Mode >> 12) & 0xF)
}

// Permission returns the permission bits, mode & 0o777.
func (e *Entry) Permission() uint16 {
	return uint16(e.Mode & 0o777)
}

// FileName returns the final component of the entry's path.
func (e *Entry) FileName() string {
	return path.Base(e.Path)
}
