package scan

// Option configures a Config via functional options, mirroring the
// teacher's functional-options idiom (options.go's Option, writer.go's
// WriterOption/WithBlockSize/WithCompression) generalized from
// squashfs's block-size/compression knobs to scan behavior.
type Option func(*Config)

// WithSkipSubstring sets the directory-skip substring (spec §4.C).
func WithSkipSubstring(s string) Option {
	return func(c *Config) { c.SkipSubstring = s }
}

// WithOutputFormat selects the row wire form workers write.
func WithOutputFormat(f OutputFormat) Option {
	return func(c *Config) { c.OutputFormat = f }
}

// WithZeroAtime enables the zero-atime testing mode (spec §4.C/§9).
func WithZeroAtime(v bool) Option {
	return func(c *Config) { c.ZeroAtime = v }
}

// WithVerbose sets Config.Verbose. Worker does not read this field, so
// it produces no extra output.
func WithVerbose(v bool) Option {
	return func(c *Config) { c.Verbose = v }
}

// NewConfig builds a Config for one scan run against outDir/hostname/pid,
// applying opts in order over the CSV, non-zero-atime default.
func NewConfig(outDir, hostname string, pid int, opts ...Option) Config {
	cfg := Config{OutDir: outDir, Hostname: hostname, PID: pid}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
