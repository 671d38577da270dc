// Package row implements the byte-exact CSV and binary wire forms of a
// single filesystem metadata record, and the tolerant parsers that read
// them back.
package row

import "errors"

// Row is one stat record describing a filesystem entry. Path is carried
// as raw OS bytes end to end; it is not required to be valid UTF-8.
type Row struct {
	Dev   uint64
	Ino   uint64
	Mode  uint32
	Uid   uint32
	Gid   uint32
	Size  uint64
	Disk  uint64
	Atime int64
	Mtime int64
	Path  []byte
}

// Errors returned for structural failures. Numeric fields are parsed
// tolerantly (zero on failure); only these conditions fail the row.
var (
	ErrBadHeader      = errors.New("row: csv header mismatch")
	ErrFieldCount     = errors.New("row: wrong csv field count")
	ErrBadInode       = errors.New("row: inode field missing '-'")
	ErrTruncated      = errors.New("row: truncated binary record")
	ErrBadMagic       = errors.New("row: bad zstd magic")
	ErrAlreadyExists  = errors.New("row: output file already exists")
	ErrUnknownExt     = errors.New("row: unsupported input extension")
)

// CSVHeader is the fixed header line for the per-entry CSV row format.
const CSVHeader = "INODE,ATIME,MTIME,UID,GID,MODE,SIZE,DISK,PATH\n"

// ZstdMagic is the four little-endian magic bytes that open a zstd frame.
var ZstdMagic = [4]byte{0x28, 0xB5, 0x2F, 0xFD}

// InodeKey returns the textual "{dev}-{ino}" inode key used in outputs.
func (r Row) InodeKey() string {
	return itoa(r.Dev) + "-" + itoa(r.Ino)
}
