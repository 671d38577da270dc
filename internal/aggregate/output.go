package aggregate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/sganis/dutopia-go/internal/row"
)

// AggregatedHeader is the fixed header line for the rollup CSV (spec
// §4.F/§6).
const AggregatedHeader = "path,user,age,files,size,disk,linked,accessed,modified\n"

// ErrBadAggregatedHeader is returned by readers of the rollup CSV (e.g.
// fsindex.LoadFromCSVReader) when the header line doesn't match.
var ErrBadAggregatedHeader = errors.New("aggregate: rollup csv header mismatch")

// WriteResults writes the rollup sorted by (path, user, age), grounded
// in original_source's output.rs write_results.
func WriteResults(w io.Writer, m Rollup) error {
	keys := make([]RollupKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.User != b.User {
			return a.User < b.User
		}
		return a.Bucket < b.Bucket
	})

	bw := bufio.NewWriterSize(w, 1<<20)
	if _, err := bw.WriteString(AggregatedHeader); err != nil {
		return err
	}
	for _, k := range keys {
		s := m[k]
		if _, err := fmt.Fprintf(bw, "%s,%s,%d,%d,%d,%d,%d,%d,%d\n",
			row.QuoteField([]byte(k.Path)), row.QuoteField([]byte(k.User)), k.Bucket,
			s.FileCount, s.FileSize, s.DiskSize,
			s.LinkedSize, s.LatestAtime, s.LatestMtime); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteUnknownUIDs writes one decimal uid per line, sorted ascending,
// no header, per spec §6.
func WriteUnknownUIDs(w io.Writer, resolver *UserResolver) error {
	bw := bufio.NewWriterSize(w, 1<<16)
	for _, uid := range resolver.UnknownUIDs() {
		if _, err := fmt.Fprintf(bw, "%d\n", uid); err != nil {
			return err
		}
	}
	return bw.Flush()
}
