// Package scan implements the parallel filesystem scanner: an unbounded
// work queue (Component D) feeding worker goroutines (Component C) that
// emit Rows into per-worker shards.
package scan

import "github.com/sganis/dutopia-go/internal/platform"

// Kind discriminates the three task variants from spec §4.C.
type Kind int

const (
	KindDir Kind = iota
	KindFiles
	KindShutdown
)

// Task is the unit of work passed through the dispatcher queue. Only
// the fields relevant to its Kind are populated.
type Task struct {
	Kind    Kind
	Path    string          // KindDir
	Base    string          // KindFiles
	Entries []platform.Entry // KindFiles
}

// fileChunkSize is the batch size files are grouped into before being
// enqueued as a KindFiles task, per spec §4.C.
const fileChunkSize = 2048
