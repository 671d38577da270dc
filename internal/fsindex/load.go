package fsindex

import (
	"bufio"
	"io"
	"strconv"

	"github.com/sganis/dutopia-go/internal/aggregate"
	"github.com/sganis/dutopia-go/internal/row"
)

// LoadFromCSVReader parses the aggregated rollup CSV (header
// "path,user,age,files,size,disk,linked,accessed,modified") produced by
// Component F and builds an Index from it. Malformed rows are skipped,
// matching the aggregator's own per-row tolerance.
func LoadFromCSVReader(r io.Reader) (*Index, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<20), 16<<20)
	if !sc.Scan() {
		return LoadFromCSV(nil, nil), sc.Err()
	}
	if sc.Text()+"\n" != aggregate.AggregatedHeader {
		return nil, aggregate.ErrBadAggregatedHeader
	}

	var rows []aggregate.RollupKey
	stats := make(map[aggregate.RollupKey]*aggregate.UserStats)
	for sc.Scan() {
		fields := row.SplitFields([]byte(sc.Text()))
		if len(fields) != 9 {
			continue
		}
		bucket, err := strconv.Atoi(fields[2])
		if err != nil {
			continue
		}
		path := row.UnquoteField(fields[0])
		user := row.UnquoteField(fields[1])
		key := aggregate.RollupKey{Path: path, User: user, Bucket: bucket}
		s := &aggregate.UserStats{
			FileCount:   parseU64(fields[3]),
			FileSize:    parseU64(fields[4]),
			DiskSize:    parseU64(fields[5]),
			LinkedSize:  parseU64(fields[6]),
			LatestAtime: parseI64(fields[7]),
			LatestMtime: parseI64(fields[8]),
		}
		rows = append(rows, key)
		stats[key] = s
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return LoadFromCSV(rows, stats), nil
}

func parseU64(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseI64(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
