// Package shard implements the per-worker buffered shard output used by
// the scanner: a narrow write sink, polymorphic over raw and zstd-framed
// variants, never a broader "row writer" hierarchy.
package shard

import (
	"bufio"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// innerBufferSize is the minimum inner buffer size for the sink.
const innerBufferSize = 32 << 20

// flushThreshold is the minimum number of buffered bytes before a flush
// is forced from the Writer side.
const flushThreshold = 4 << 20

// Sink is the capability set a shard writer needs from its underlying
// transport: write, flush and close. rawSink and zstdSink are its only
// two variants.
type Sink interface {
	io.Writer
	Flush() error
	Close() error
}

type rawSink struct {
	f  *os.File
	bw *bufio.Writer
}

func newRawSink(f *os.File, bufSize int) *rawSink {
	return &rawSink{f: f, bw: bufio.NewWriterSize(f, bufSize)}
}

func (s *rawSink) Write(p []byte) (int, error) { return s.bw.Write(p) }
func (s *rawSink) Flush() error                { return s.bw.Flush() }
func (s *rawSink) Close() error {
	if err := s.bw.Flush(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}

type zstdSink struct {
	f   *os.File
	bw  *bufio.Writer
	enc *zstd.Encoder
}

func newZstdSink(f *os.File, bufSize int) (*zstdSink, error) {
	bw := bufio.NewWriterSize(f, bufSize)
	enc, err := zstd.NewWriter(bw, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	return &zstdSink{f: f, bw: bw, enc: enc}, nil
}

func (s *zstdSink) Write(p []byte) (int, error) { return s.enc.Write(p) }
func (s *zstdSink) Flush() error {
	if err := s.enc.Flush(); err != nil {
		return err
	}
	return s.bw.Flush()
}

// Close finishes the zstd frame and flushes the underlying file. The
// encoder is guaranteed to finalize its frame here even on error paths
// elsewhere in the worker, per the scope-owned lifetime in spec §5.
func (s *zstdSink) Close() error {
	cerr := s.enc.Close()
	ferr := s.bw.Flush()
	clerr := s.f.Close()
	if cerr != nil {
		return cerr
	}
	if ferr != nil {
		return ferr
	}
	return clerr
}
