package aggregate

import (
	"bufio"
	"bytes"
	"io"
)

// CountLines counts '\n'-terminated lines in r, grounded in
// original_source's output.rs count_lines (there memchr-based; here a
// buffered byte scan serves the same purpose without adding a
// dependency for a single counting loop).
func CountLines(r io.Reader) (int, error) {
	br := bufio.NewReaderSize(r, 1<<20)
	count := 0
	buf := make([]byte, 1<<20)
	for {
		n, err := br.Read(buf)
		count += bytes.Count(buf[:n], []byte{'\n'})
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}
	}
}
