//go:build !linux && (darwin || freebsd || netbsd || openbsd)

package platform

import (
	"golang.org/x/sys/unix"

	"github.com/sganis/dutopia-go/internal/row"
)

// Lstat mirrors stat_linux.go's Lstat for BSD-family Stat_t layouts,
// whose Dev and Mode field types differ from Linux's (both are converted
// explicitly here) and whose timestamps are read from Atimespec and
// Mtimespec, same split rationale as the teacher's inode_darwin.go.
func Lstat(path string) (row.Row, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return row.Row{}, err
	}
	return row.Row{
		Dev:   uint64(st.Dev),
		Ino:   uint64(st.Ino),
		Mode:  uint32(st.Mode),
		Uid:   st.Uid,
		Gid:   st.Gid,
		Size:  uint64(st.Size),
		Disk:  uint64(st.Blocks) * 512,
		Atime: int64(st.Atimespec.Sec),
		Mtime: int64(st.Mtimespec.Sec),
	}, nil
}
