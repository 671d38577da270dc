// Package aggregate implements Component F: reducing the merged CSV row
// stream into a per-(folder, owner, age bucket) rollup.
package aggregate

import "math"

// AgeConfig holds the day thresholds separating the three age buckets,
// grounded in original_source's stats.rs AgeCfg{young,old}.
type AgeConfig struct {
	YoungDays int
	OldDays   int
}

// DefaultAgeConfig matches the Rust original's defaults.
var DefaultAgeConfig = AgeConfig{YoungDays: 60, OldDays: 600}

// UserStats is the saturating per-(folder,user,age) accumulator from
// spec §3/§4.F.
type UserStats struct {
	FileCount   uint64
	FileSize    uint64
	DiskSize    uint64
	LinkedSize  uint64
	LatestAtime int64
	LatestMtime int64
}

func saturatingAdd(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return math.MaxUint64
	}
	return sum
}

// Update folds one row's contribution into s, saturating the counters
// and keeping the maximum of each timestamp. update is commutative and
// associative across repeated application, per spec §8's universal
// invariant.
func (s *UserStats) Update(fileSize, diskSize, linkedSize uint64, atime, mtime int64) {
	s.FileCount = saturatingAdd(s.FileCount, 1)
	s.FileSize = saturatingAdd(s.FileSize, fileSize)
	s.DiskSize = saturatingAdd(s.DiskSize, diskSize)
	s.LinkedSize = saturatingAdd(s.LinkedSize, linkedSize)
	if atime > s.LatestAtime {
		s.LatestAtime = atime
	}
	if mtime > s.LatestMtime {
		s.LatestMtime = mtime
	}
}

// AgeBucket classifies a sanitized mtime relative to now using cfg's
// thresholds. mtime<=0 (unknown/invalid) always buckets as old (2).
func AgeBucket(mtime, now int64, cfg AgeConfig) int {
	if mtime <= 0 {
		return 2
	}
	ageDays := (now - mtime) / 86400
	switch {
	case ageDays < int64(cfg.YoungDays):
		return 0
	case ageDays < int64(cfg.OldDays):
		return 1
	default:
		return 2
	}
}

// SanitizeMtime replaces mtime with 0 when it is more than 86400 seconds
// in the future relative to now; otherwise returns it unchanged.
func SanitizeMtime(mtime, now int64) int64 {
	if mtime-now > 86400 {
		return 0
	}
	return mtime
}
