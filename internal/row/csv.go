package row

import (
	"bytes"
	"strings"
)

// EncodeCSV formats r as one CSV line (including its trailing newline)
// in the fixed field order INODE,ATIME,MTIME,UID,GID,MODE,SIZE,DISK,PATH.
// PATH is the only field ever quoted, and only when necessary.
func EncodeCSV(r Row) []byte {
	var b bytes.Buffer
	b.WriteString(r.InodeKey())
	b.WriteByte(',')
	b.WriteString(itoaSigned(r.Atime))
	b.WriteByte(',')
	b.WriteString(itoaSigned(r.Mtime))
	b.WriteByte(',')
	b.WriteString(itoa(uint64(r.Uid)))
	b.WriteByte(',')
	b.WriteString(itoa(uint64(r.Gid)))
	b.WriteByte(',')
	b.WriteString(itoa(uint64(r.Mode)))
	b.WriteByte(',')
	b.WriteString(itoa(r.Size))
	b.WriteByte(',')
	b.WriteString(itoa(r.Disk))
	b.WriteByte(',')
	writeSmartQuoted(&b, r.Path)
	b.WriteByte('\n')
	return b.Bytes()
}

// needsQuoting reports whether raw must be wrapped in double quotes per
// the smart-quoting rule: quote only if it contains '"', ',', '\n' or '\r'.
func needsQuoting(raw []byte) bool {
	return bytes.IndexByte(raw, '"') >= 0 ||
		bytes.IndexByte(raw, ',') >= 0 ||
		bytes.IndexByte(raw, '\n') >= 0 ||
		bytes.IndexByte(raw, '\r') >= 0
}

func writeSmartQuoted(b *bytes.Buffer, raw []byte) {
	if !needsQuoting(raw) {
		b.Write(raw)
		return
	}
	b.WriteByte('"')
	start := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] == '"' {
			b.Write(raw[start : i+1])
			b.WriteByte('"')
			start = i + 1
		}
	}
	b.Write(raw[start:])
	b.WriteByte('"')
}

// QuoteField returns raw formatted per the smart-quoting rule (spec
// §4.A), exported so other fixed-order CSV producers in this module
// (the aggregator's rollup output) can embed arbitrary byte-ish fields
// in a comma-separated line without duplicating the quoting algorithm.
func QuoteField(raw []byte) string {
	var b bytes.Buffer
	writeSmartQuoted(&b, raw)
	return b.String()
}

// SplitFields splits one CSV line into its fields, quote-aware, for
// consumers that parse comma-separated lines outside the fixed 9-field
// Row layout (e.g. fsindex's rollup loader).
func SplitFields(line []byte) []string {
	fields, _ := splitCSVLine(line)
	return fields
}

// UnquoteField strips a wrapping pair of quotes (if present) and
// collapses doubled inner quotes, exported for the same consumers as
// SplitFields.
func UnquoteField(f string) string {
	return string(unquoteField(f))
}

// DecodeCSV parses one CSV line (without its trailing newline) back into
// a Row. Numeric fields parse tolerantly (zero on failure); the only
// structural failures are a wrong field count and an INODE missing '-'.
func DecodeCSV(line []byte) (Row, error) {
	fields, err := splitCSVLine(line)
	if err != nil {
		return Row{}, err
	}
	if len(fields) != 9 {
		return Row{}, ErrFieldCount
	}
	dev, ino, ok := splitInode(fields[0])
	if !ok {
		return Row{}, ErrBadInode
	}
	disk := parseUint(fields[7])
	return Row{
		Dev:   dev,
		Ino:   ino,
		Atime: parseInt(fields[1]),
		Mtime: parseInt(fields[2]),
		Uid:   parseUint32(fields[3]),
		Gid:   parseUint32(fields[4]),
		Mode:  parseUint32(fields[5]),
		Size:  parseUint(fields[6]),
		Disk:  disk,
		Path:  unquoteField(fields[8]),
	}, nil
}

// splitInode splits an "INODE" field on the first '-' only: everything
// after it, including any further '-', is the inode part. Each part
// parses tolerantly, so a part that is not an unsigned decimal
// (e.g. a negative number) becomes 0.
func splitInode(s string) (dev, ino uint64, ok bool) {
	i := strings.IndexByte(s, '-')
	if i < 0 {
		return 0, 0, false
	}
	return parseUint(s[:i]), parseUint(s[i+1:]), true
}

// splitCSVLine splits one record into its raw (still-quoted) fields,
// respecting '"' quoting and the '""' escape. It never needs to see the
// rest of the stream: line boundaries are resolved by the stream
// splitter in csv_stream.go before this function runs.
func splitCSVLine(line []byte) ([]string, error) {
	var fields []string
	inQuotes := false
	start := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				fields = append(fields, string(line[start:i]))
				start = i + 1
			}
		}
	}
	fields = append(fields, string(line[start:]))
	return fields, nil
}

// unquoteField strips a single wrapping pair of quotes (if present) and
// collapses doubled inner quotes back to one. Fields never quoted by
// writeSmartQuoted pass through unchanged.
func unquoteField(f string) []byte {
	if len(f) < 2 || f[0] != '"' || f[len(f)-1] != '"' {
		return []byte(f)
	}
	inner := f[1 : len(f)-1]
	return []byte(strings.ReplaceAll(inner, `""`, `"`))
}
