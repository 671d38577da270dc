package row

import (
	"encoding/binary"
	"io"
)

// EncodeBinary writes one length-prefixed binary record:
// u32 path_len; path bytes; u64 dev; u64 ino; i64 atime; i64 mtime;
// u32 uid; u32 gid; u32 mode; u64 size; u64 disk. All little-endian.
func EncodeBinary(w io.Writer, r Row) error {
	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(len(r.Path)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.Write(r.Path); err != nil {
		return err
	}
	var fixed [8 + 8 + 8 + 8 + 4 + 4 + 4 + 8 + 8]byte
	off := 0
	binary.LittleEndian.PutUint64(fixed[off:], r.Dev)
	off += 8
	binary.LittleEndian.PutUint64(fixed[off:], r.Ino)
	off += 8
	binary.LittleEndian.PutUint64(fixed[off:], uint64(r.Atime))
	off += 8
	binary.LittleEndian.PutUint64(fixed[off:], uint64(r.Mtime))
	off += 8
	binary.LittleEndian.PutUint32(fixed[off:], r.Uid)
	off += 4
	binary.LittleEndian.PutUint32(fixed[off:], r.Gid)
	off += 4
	binary.LittleEndian.PutUint32(fixed[off:], r.Mode)
	off += 4
	binary.LittleEndian.PutUint64(fixed[off:], r.Size)
	off += 8
	binary.LittleEndian.PutUint64(fixed[off:], r.Disk)
	_, err := w.Write(fixed[:])
	return err
}

// DecodeBinary reads one record written by EncodeBinary. Returns io.EOF
// when the stream is exhausted exactly at a record boundary.
func DecodeBinary(r io.Reader) (Row, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Row{}, err
	}
	pathLen := binary.LittleEndian.Uint32(hdr[:])
	path := make([]byte, pathLen)
	if _, err := io.ReadFull(r, path); err != nil {
		return Row{}, ErrTruncated
	}
	var fixed [8 + 8 + 8 + 8 + 4 + 4 + 4 + 8 + 8]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return Row{}, ErrTruncated
	}
	off := 0
	dev := binary.LittleEndian.Uint64(fixed[off:])
	off += 8
	ino := binary.LittleEndian.Uint64(fixed[off:])
	off += 8
	atime := int64(binary.LittleEndian.Uint64(fixed[off:]))
	off += 8
	mtime := int64(binary.LittleEndian.Uint64(fixed[off:]))
	off += 8
	uid := binary.LittleEndian.Uint32(fixed[off:])
	off += 4
	gid := binary.LittleEndian.Uint32(fixed[off:])
	off += 4
	mode := binary.LittleEndian.Uint32(fixed[off:])
	off += 4
	size := binary.LittleEndian.Uint64(fixed[off:])
	off += 8
	disk := binary.LittleEndian.Uint64(fixed[off:])
	return Row{
		Dev: dev, Ino: ino, Atime: atime, Mtime: mtime,
		Uid: uid, Gid: gid, Mode: mode, Size: size, Disk: disk,
		Path: path,
	}, nil
}

// EncodeBinaryStream writes every row in order.
func EncodeBinaryStream(w io.Writer, rows []Row) error {
	for _, r := range rows {
		if err := EncodeBinary(w, r); err != nil {
			return err
		}
	}
	return nil
}

// DecodeBinaryStream reads rows until EOF, preserving order.
func DecodeBinaryStream(r io.Reader) ([]Row, error) {
	var rows []Row
	for {
		rw, err := DecodeBinary(r)
		if err != nil {
			if err == io.EOF {
				return rows, nil
			}
			return rows, err
		}
		rows = append(rows, rw)
	}
}
