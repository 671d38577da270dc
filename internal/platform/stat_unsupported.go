//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package platform

import (
	"errors"

	"github.com/sganis/dutopia-go/internal/row"
)

// ErrUnsupported is returned by Lstat on platforms outside the POSIX
// family this scanner targets.
var ErrUnsupported = errors.New("platform: unsupported on this GOOS")

func Lstat(path string) (row.Row, error) {
	return row.Row{}, ErrUnsupported
}
