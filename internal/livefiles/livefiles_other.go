//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package livefiles

import "github.com/sganis/dutopia-go/internal/aggregate"

// GetItems has no implementation outside the POSIX family; the contract
// for other platforms is unspecified by the source this was derived
// from (spec §9 open question) and is documented here per port: it
// always fails with ErrUnsupportedPlatform.
func GetItems(dirPath string, userFilter []string, ageFilter *int, resolver *aggregate.UserResolver, now int64) ([]FsItemOut, error) {
	return nil, ErrUnsupportedPlatform
}
