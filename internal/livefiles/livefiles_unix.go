//go:build linux || darwin || freebsd || netbsd || openbsd

package livefiles

import (
	"os"
	"path/filepath"
	"time"

	"github.com/sganis/dutopia-go/internal/aggregate"
	"github.com/sganis/dutopia-go/internal/platform"
)

// GetItems lists the immediate entries of dirPath, resolving each
// entry's owner and filtering by user/age per the query contract in
// spec §6 (get_items). now is passed in rather than taken from
// time.Now() so callers (and tests) control the age-bucket boundary.
func GetItems(dirPath string, userFilter []string, ageFilter *int, resolver *aggregate.UserResolver, now int64) ([]FsItemOut, error) {
	if now == 0 {
		now = time.Now().Unix()
	}
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}
	filterSet := map[string]struct{}{}
	for _, u := range userFilter {
		filterSet[u] = struct{}{}
	}

	var out []FsItemOut
	for _, e := range entries {
		full := filepath.Join(dirPath, e.Name())
		st, err := platform.Lstat(full)
		if err != nil {
			continue
		}
		if st.Mode&modeFmt != modeReg {
			continue
		}
		owner := resolver.Resolve(st.Uid)
		if !matchesUser(owner, filterSet) {
			continue
		}
		bucket := ageBucket(st.Mtime, now)
		if !matchesAge(bucket, ageFilter) {
			continue
		}
		out = append(out, FsItemOut{
			Path: full, Owner: owner, Size: st.Size,
			Accessed: st.Atime, Modified: st.Mtime,
		})
	}
	return out, nil
}
