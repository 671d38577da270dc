//go:build linux

package platform

import (
	"golang.org/x/sys/unix"

	"github.com/sganis/dutopia-go/internal/row"
)

// Lstat stats path without following a trailing symlink (symlinks are
// always treated as files per spec §4.C) and returns its Row, with Path
// left unset for the caller to fill in (the caller owns path joining).
func Lstat(path string) (row.Row, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return row.Row{}, err
	}
	return row.Row{
		Dev:   uint64(st.Dev),
		Ino:   st.Ino,
		Mode:  st.Mode,
		Uid:   st.Uid,
		Gid:   st.Gid,
		Size:  uint64(st.Size),
		Disk:  uint64(st.Blocks) * 512,
		Atime: int64(st.Atim.Sec),
		Mtime: int64(st.Mtim.Sec),
	}, nil
}
