package aggregate

import (
	"io"

	"github.com/sganis/dutopia-go/internal/row"
)

// modeFmt and modeDir implement the is_dir test from spec §4.F step 4,
// grounded in original_source's dusum/main.rs constants S_IFMT/S_IFDIR.
const (
	modeFmt = 0o170000
	modeDir = 0o040000
)

func isDir(mode uint32) bool {
	return mode&modeFmt == modeDir
}

// Options configures one Aggregate pass.
type Options struct {
	Age        AgeConfig
	Now        int64
	OnProgress func(done, total int) // invoked at ~total/10 cadence
}

// Aggregate reads merged CSV rows from r and returns the built rollup
// plus the resolver used to resolve uids, so callers can also emit the
// unknown-uids file. totalLines should come from CountLines over the
// same input for progress milestones; it may be 0 to disable progress.
func Aggregate(r io.Reader, totalLines int, opts Options) (Rollup, *UserResolver, error) {
	lr := row.NewCSVLineReader(r)
	if err := row.ReadHeader(lr); err != nil {
		return nil, nil, err
	}

	resolver := NewUserResolver()
	rollup := make(Rollup)
	seenInodes := make(map[string]struct{})

	milestone := totalLines / 10
	if milestone <= 0 {
		milestone = 1
	}
	done := 0

	for {
		line, err := lr.ReadLine()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, nil, err
		}
		done++
		if opts.OnProgress != nil && done%milestone == 0 {
			opts.OnProgress(done, totalLines)
		}

		rec, err := row.DecodeCSV(line)
		if err != nil {
			// per §4.F/§7: per-row parse errors are skipped, not fatal.
			continue
		}

		owner := resolver.Resolve(rec.Uid)
		if owner == "" || len(rec.Path) == 0 {
			continue
		}

		dir := isDir(rec.Mode)
		mtime := SanitizeMtime(rec.Mtime, opts.Now)
		var atime int64
		if dir {
			atime = 0
		} else {
			atime = SanitizeMtime(rec.Atime, opts.Now)
		}

		inodeKey := rec.InodeKey()
		var diskSize, linkedSize uint64
		if _, seen := seenInodes[inodeKey]; seen {
			linkedSize = rec.Disk
		} else {
			diskSize = rec.Disk
			seenInodes[inodeKey] = struct{}{}
		}

		bucket := AgeBucket(mtime, opts.Now, opts.Age)
		path := BytesToSafeString(rec.Path)
		for _, ancestor := range FolderAncestors(path) {
			rollup.add(ancestor, owner, bucket, rec.Size, diskSize, linkedSize, atime, mtime)
		}
	}

	if opts.OnProgress != nil && totalLines > 0 {
		opts.OnProgress(totalLines, totalLines)
	}
	return rollup, resolver, nil
}
