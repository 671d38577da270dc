package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sganis/dutopia-go/internal/platform"
	"github.com/sganis/dutopia-go/internal/row"
	"github.com/sganis/dutopia-go/internal/shard"
)

// Worker runs the consume loop for one scan goroutine: pop a task, act
// on its Kind, repeat until KindShutdown. writer is this worker's own
// shard sink; stats accumulates this worker's lifetime counters,
// including the shard writer's write/flush failures when it returns.
func Worker(d *Dispatcher, cfg Config, writer *shard.Writer, stats *Stats) {
	defer func() { stats.Errors += writer.Errors }()
	for {
		t, ok := d.Queue.Pop()
		if !ok {
			return
		}
		switch t.Kind {
		case KindShutdown:
			return
		case KindDir:
			handleDir(d, cfg, writer, stats, t.Path)
			d.Done()
		case KindFiles:
			handleFiles(d, cfg, writer, stats, t.Base, t.Entries)
			d.Done()
		}
	}
}

func skip(cfg Config, path string) bool {
	return cfg.SkipSubstring != "" && strings.Contains(path, cfg.SkipSubstring)
}

func handleDir(d *Dispatcher, cfg Config, w *shard.Writer, stats *Stats, path string) {
	if skip(cfg, path) {
		return
	}
	st, err := platform.Lstat(path)
	if err != nil {
		stats.Errors++
		return
	}
	emitRow(cfg, w, stats, st, path)
	d.Progress.Add(1)

	entries, err := os.ReadDir(path)
	if err != nil {
		stats.Errors++
		return
	}

	var pending []platform.Entry
	flush := func() {
		if len(pending) == 0 {
			return
		}
		d.Enqueue(Task{Kind: KindFiles, Base: path, Entries: pending})
		pending = nil
	}

	for _, e := range entries {
		full := filepath.Join(path, e.Name())
		if e.IsDir() {
			flush()
			d.Enqueue(Task{Kind: KindDir, Path: full})
			continue
		}
		est, err := platform.Lstat(full)
		if err != nil {
			stats.Errors++
			continue
		}
		pending = append(pending, platform.Entry{Name: e.Name(), Row: est})
		if len(pending) >= fileChunkSize {
			flush()
		}
	}
	flush()
}

func handleFiles(d *Dispatcher, cfg Config, w *shard.Writer, stats *Stats, base string, entries []platform.Entry) {
	if skip(cfg, base) {
		return
	}
	for _, e := range entries {
		full := filepath.Join(base, e.Name)
		emitRow(cfg, w, stats, e.Row, full)
		d.Progress.Add(1)
	}
}

func emitRow(cfg Config, w *shard.Writer, stats *Stats, st row.Row, path string) {
	st.Path = []byte(path)
	if cfg.ZeroAtime {
		st.Atime = 0
	}
	switch cfg.OutputFormat {
	case OutputBinary:
		if err := row.EncodeBinary(bufferedSink{w}, st); err != nil {
			stats.Errors++
			return
		}
	default:
		w.WriteRow(row.EncodeCSV(st))
	}
	stats.Files++
	stats.Bytes += st.Disk
}

// bufferedSink adapts *shard.Writer's byte-slice WriteRow method to the
// io.Writer shape row.EncodeBinary expects, without exposing the shard
// package's buffering scheme to the row codec.
type bufferedSink struct{ w *shard.Writer }

func (b bufferedSink) Write(p []byte) (int, error) {
	b.w.WriteRow(p)
	return len(p), nil
}
