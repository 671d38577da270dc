// Command duzip converts a row stream between its CSV and zstd-binary
// wire forms (Component H), refusing to overwrite an existing output
// and sniffing binary input by its zstd magic.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/sganis/dutopia-go/internal/row"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: duzip <input.csv|input.zst>")
		os.Exit(1)
	}
	inPath := os.Args[1]
	if err := run(inPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(inPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	br := bufio.NewReaderSize(in, 1<<20)
	magic, err := br.Peek(4)
	isBinary := err == nil && magic[0] == row.ZstdMagic[0] && magic[1] == row.ZstdMagic[1] &&
		magic[2] == row.ZstdMagic[2] && magic[3] == row.ZstdMagic[3]

	ext := strings.ToLower(filepath.Ext(inPath))
	switch {
	case isBinary && (ext == ".zst" || ext == ""):
		return convertBinaryToCSV(br, outputPath(inPath, ".zst", ".csv"))
	case !isBinary && ext == ".csv":
		return convertCSVToBinary(br, outputPath(inPath, ".csv", ".zst"))
	case isBinary:
		return fmt.Errorf("%w: %s looks like zstd but has extension %q", row.ErrBadMagic, inPath, ext)
	default:
		return row.ErrUnknownExt
	}
}

func outputPath(in, fromExt, toExt string) string {
	return strings.TrimSuffix(in, fromExt) + toExt
}

func refuseExisting(path string) error {
	if _, err := os.Stat(path); err == nil {
		return row.ErrAlreadyExists
	}
	return nil
}

func convertCSVToBinary(br *bufio.Reader, outPath string) error {
	if err := refuseExisting(outPath); err != nil {
		return err
	}
	lr := row.NewCSVLineReader(br)
	if err := row.ReadHeader(lr); err != nil {
		return err
	}
	out, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()
	bw := bufio.NewWriterSize(out, 16<<20)
	enc, err := zstd.NewWriter(bw, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return err
	}

	for {
		line, err := lr.ReadLine()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		r, err := row.DecodeCSV(line)
		if err != nil {
			enc.Close()
			return err
		}
		if err := row.EncodeBinary(enc, r); err != nil {
			enc.Close()
			return err
		}
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return bw.Flush()
}

func convertBinaryToCSV(br *bufio.Reader, outPath string) error {
	if err := refuseExisting(outPath); err != nil {
		return err
	}
	dec, err := zstd.NewReader(br)
	if err != nil {
		return err
	}
	defer dec.Close()

	out, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()
	bw := bufio.NewWriterSize(out, 16<<20)
	if _, err := bw.WriteString(row.CSVHeader); err != nil {
		return err
	}

	for {
		r, err := row.DecodeBinary(dec)
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		if _, err := bw.Write(row.EncodeCSV(r)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
