package shard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestFileName(t *testing.T) {
	got := FileName("host1", 123, 4)
	want := "shard_host1_123_4.tmp"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestWriterCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, "h", 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	w.WriteRow([]byte("line one\n"))
	w.WriteRow([]byte("line two\n"))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, FileName("h", 1, 0)))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "line one\nline two\n" {
		t.Fatalf("got %q", data)
	}
}

func TestNewRejectsFlushThresholdBelowMinimum(t *testing.T) {
	dir := t.TempDir()
	if _, err := New(dir, "h", 1, 0, WithFlushThreshold(1024)); err != ErrFlushThresholdTooSmall {
		t.Fatalf("got %v want ErrFlushThresholdTooSmall", err)
	}
}

func TestWriterBinaryProducesValidZstdFrame(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, "h", 1, 0, WithFormat(FormatBinary))
	if err != nil {
		t.Fatal(err)
	}
	w.WriteRow([]byte("hello world"))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(filepath.Join(dir, FileName("h", 1, 0)))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()
	buf := make([]byte, 64)
	n, _ := dec.Read(buf)
	if string(buf[:n]) != "hello world" {
		t.Fatalf("got %q", buf[:n])
	}
}
