// Package platform provides direct, symlink-preserving stat access used
// by the scanner. Modeled on the teacher's inode_linux.go/inode_darwin.go
// GOOS split, here applied to real filesystem stat_t access instead of
// squashfs's synthetic inode numbers.
package platform

import "github.com/sganis/dutopia-go/internal/row"

// Entry is the subset of a directory entry the scanner needs before it
// commits to building a full Row: name plus already-resolved metadata,
// matching spec §4.C's "items carries (name, stat_metadata) pairs
// already materialized" requirement for Files tasks.
type Entry struct {
	Name string
	Row  row.Row
}
