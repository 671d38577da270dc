package scan

// OutputFormat selects the wire form workers write rows in.
type OutputFormat int

const (
	OutputCSV OutputFormat = iota
	OutputBinary
)

// Config holds per-worker scan configuration, mirrored from
// original_source's worker.rs Config: skip substring, output format,
// zero-atime mode, verbosity. Progress is wired separately via
// Dispatcher.Progress so every worker shares one counter.
type Config struct {
	SkipSubstring string
	OutputFormat  OutputFormat
	ZeroAtime     bool
	OutDir        string
	Hostname      string
	PID           int
	Verbose       bool
}

// Stats accumulates one worker's lifetime counters, grounded in
// original_source's worker.rs Stats{files,errors,bytes}.
type Stats struct {
	Files  uint64
	Errors uint64
	Bytes  uint64
}
