// Package livefiles implements the live (on-demand) per-directory file
// listing the external API's GET /api/files dispatches onto a blocking
// pool (spec §6/§9). It intentionally uses its own age-bucket scheme,
// distinct from internal/aggregate's configurable 60/600-day buckets,
// grounded in original_source's duapi/item.rs hardcoded 60/730-day
// cutoffs.
package livefiles

import "errors"

// ErrUnsupportedPlatform is returned on GOOS families this package has
// no stat implementation for; the external HTTP layer maps it to 501
// per spec §6/§7.
var ErrUnsupportedPlatform = errors.New("livefiles: unsupported on this platform")

const (
	recentDays = 60
	oldDays    = 730
)

// modeFmt/modeReg implement the is-regular-file test GetItems applies
// before listing an entry, grounded in original_source's item.rs
// get_items, which does md.file_type().is_file() via symlink_metadata
// and skips directories and symlinks rather than reporting them as
// files.
const (
	modeFmt = 0o170000
	modeReg = 0o100000
)

// FsItemOut is one entry in a live directory listing, grounded in
// original_source's duapi/item.rs FsItemOut.
type FsItemOut struct {
	Path     string `json:"path"`
	Owner    string `json:"owner"`
	Size     uint64 `json:"size"`
	Accessed int64  `json:"accessed"`
	Modified int64  `json:"modified"`
}

// ageBucket classifies mtime using the distinct recent/old cutoffs this
// package uses instead of aggregate.AgeBucket. 0=recent,1=middling,2=old.
func ageBucket(mtime, now int64) int {
	ageDays := (now - mtime) / 86400
	switch {
	case ageDays < recentDays:
		return 0
	case ageDays < oldDays:
		return 1
	default:
		return 2
	}
}

func matchesUser(owner string, filter map[string]struct{}) bool {
	if len(filter) == 0 {
		return true
	}
	_, ok := filter[owner]
	return ok
}

func matchesAge(bucket int, ageFilter *int) bool {
	return ageFilter == nil || *ageFilter == bucket
}
