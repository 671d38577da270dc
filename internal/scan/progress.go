package scan

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Progress is the optional atomic file counter bumped once per
// completed Dir task and once per file in a Files task (spec §4.C).
type Progress struct {
	files atomic.Uint64
}

func (p *Progress) Add(n uint64) { p.files.Add(n) }
func (p *Progress) Load() uint64 { return p.files.Load() }

// Report runs a ~1Hz reporter loop until stop is closed, printing the
// running file count. Mirrors the teacher's preference for a plain
// narrow sink over a progress-bar dependency (spec §9 design note).
func Report(p *Progress, stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			fmt.Printf("\rscanned %d files", p.Load())
		}
	}
}
