package shard

import "errors"

// Option configures a Writer under construction, mirroring the
// teacher's functional-options idiom (options.go's Option,
// writer.go's WriterOption/WithBlockSize/WithCompression) generalized
// from squashfs's block-size/compression knobs to shard wire format
// and buffer sizing.
type Option func(*writerConfig) error

// ErrFlushThresholdTooSmall/ErrInnerBufferTooSmall are returned by
// WithFlushThreshold/WithInnerBufferSize when the requested value falls
// below spec §4.B's stated minimums.
var (
	ErrFlushThresholdTooSmall = errors.New("shard: flush threshold below spec minimum (4 MiB)")
	ErrInnerBufferTooSmall    = errors.New("shard: inner buffer size below spec minimum (32 MiB)")
)

type writerConfig struct {
	format         Format
	innerBufSize   int
	flushThreshold int
}

func defaultWriterConfig() writerConfig {
	return writerConfig{
		format:         FormatCSV,
		innerBufSize:   innerBufferSize,
		flushThreshold: flushThreshold,
	}
}

// WithFormat selects the wire form the Writer produces. Default is
// FormatCSV.
func WithFormat(f Format) Option {
	return func(c *writerConfig) error {
		c.format = f
		return nil
	}
}

// WithFlushThreshold overrides the buffered-byte count that forces a
// flush. n must be at least spec §4.B's 4 MiB minimum.
func WithFlushThreshold(n int) Option {
	return func(c *writerConfig) error {
		if n < flushThreshold {
			return ErrFlushThresholdTooSmall
		}
		c.flushThreshold = n
		return nil
	}
}

// WithInnerBufferSize overrides the sink's inner buffer size. n must be
// at least spec §4.B's 32 MiB minimum.
func WithInnerBufferSize(n int) Option {
	return func(c *writerConfig) error {
		if n < innerBufferSize {
			return ErrInnerBufferTooSmall
		}
		c.innerBufSize = n
		return nil
	}
}
