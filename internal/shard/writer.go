package shard

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileName returns the shard filename for one worker, per spec §4.B:
// shard_{hostname}_{pid}_{tid}.tmp. tid identifies the worker goroutine,
// not an OS thread id (Go goroutines have no stable OS thread identity).
func FileName(hostname string, pid, tid int) string {
	return fmt.Sprintf("shard_%s_%d_%d.tmp", hostname, pid, tid)
}

// Format selects the wire form a Writer produces.
type Format int

const (
	FormatCSV Format = iota
	FormatBinary
)

// Writer buffers writes to one shard file and flushes once its buffered
// byte count crosses its configured flush threshold. Write failures
// increment Errors but do not abort the caller; the scan worker
// inspects Errors itself.
type Writer struct {
	sink      Sink
	pending   int
	threshold int
	Errors    uint64
}

// New opens (creating, truncating) the shard file at dir/FileName(...)
// and returns a Writer, configured by opts over the CSV-format,
// spec-minimum-buffered default (mirroring the teacher's WriterOption
// pattern: options apply in order over a base config, any of which can
// fail validation before the file is ever touched).
func New(dir, hostname string, pid, tid int, opts ...Option) (*Writer, error) {
	cfg := defaultWriterConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	path := filepath.Join(dir, FileName(hostname, pid, tid))
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	var sink Sink
	switch cfg.format {
	case FormatBinary:
		sink, err = newZstdSink(file, cfg.innerBufSize)
		if err != nil {
			file.Close()
			return nil, err
		}
	default:
		sink = newRawSink(file, cfg.innerBufSize)
	}
	return &Writer{sink: sink, threshold: cfg.flushThreshold}, nil
}

// WriteRow writes one already-encoded row's bytes, flushing if the
// accumulated pending size has crossed the threshold. Errors here are
// recorded, not propagated: per §4.B, a write failure bumps the error
// counter and the worker continues.
func (w *Writer) WriteRow(b []byte) {
	n, err := w.sink.Write(b)
	if err != nil {
		w.Errors++
		return
	}
	w.pending += n
	if w.pending >= w.threshold {
		if ferr := w.sink.Flush(); ferr != nil {
			w.Errors++
		}
		w.pending = 0
	}
}

// Close flushes and finalizes the shard (closing the zstd frame for
// binary output), then closes the underlying file.
func (w *Writer) Close() error {
	return w.sink.Close()
}
