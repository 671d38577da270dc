package aggregate

// RollupKey identifies one accumulator cell: a folder key, an owner
// name, and an age bucket.
type RollupKey struct {
	Path   string
	User   string
	Bucket int
}

// Rollup is the in-memory accumulator built by one Aggregate pass,
// consumed either by WriteResults or directly by fsindex.LoadFromCSV's
// CSV twin.
type Rollup map[RollupKey]*UserStats

func (m Rollup) add(path, user string, bucket int, fileSize, diskSize, linkedSize uint64, atime, mtime int64) {
	key := RollupKey{Path: path, User: user, Bucket: bucket}
	s, ok := m[key]
	if !ok {
		s = &UserStats{}
		m[key] = s
	}
	s.Update(fileSize, diskSize, linkedSize, atime, mtime)
}
