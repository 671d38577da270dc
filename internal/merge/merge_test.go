package merge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sganis/dutopia-go/internal/row"
	"github.com/sganis/dutopia-go/internal/shard"
)

func writeShard(t *testing.T, dir, host string, pid, tid int, lines ...string) {
	t.Helper()
	path := filepath.Join(dir, shard.FileName(host, pid, tid))
	if err := os.WriteFile(path, []byte(strings.Join(lines, "")), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestMergeConcatCSV(t *testing.T) {
	dir := t.TempDir()
	writeShard(t, dir, "h", 1, 0, "1-1,0,0,0,0,0,0,0,/a\n")
	writeShard(t, dir, "h", 1, 1, "2-2,0,0,0,0,0,0,0,/b\n")
	out := filepath.Join(dir, "out.csv")
	n, err := Merge(Config{OutDir: dir, OutFile: out, Hostname: "h", PID: 1, WorkerCount: 3, Format: shard.FormatCSV})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("merged %d shards, want 2", n)
	}
	data, _ := os.ReadFile(out)
	if !strings.HasPrefix(string(data), row.CSVHeader) {
		t.Fatalf("missing header: %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, shard.FileName("h", 1, 0))); !os.IsNotExist(err) {
		t.Fatalf("shard 0 was not deleted")
	}
}

func TestMergeCSVSorted(t *testing.T) {
	dir := t.TempDir()
	writeShard(t, dir, "h", 1, 0, "2-2,0,0,0,0,0,0,0,/b\n1-1,0,0,0,0,0,0,0,/a\n")
	out := filepath.Join(dir, "out.csv")
	_, err := Merge(Config{OutDir: dir, OutFile: out, Hostname: "h", PID: 1, WorkerCount: 1, Format: shard.FormatCSV, Sort: true})
	if err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(out)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if lines[0] != row.CSVHeader[:len(row.CSVHeader)-1] {
		t.Fatalf("unexpected header line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1-1,") || !strings.HasPrefix(lines[2], "2-2,") {
		t.Fatalf("rows not sorted: %v", lines[1:])
	}
}

func TestMergeSkipsMissingShards(t *testing.T) {
	dir := t.TempDir()
	writeShard(t, dir, "h", 1, 0, "1-1,0,0,0,0,0,0,0,/a\n")
	out := filepath.Join(dir, "out.csv")
	n, err := Merge(Config{OutDir: dir, OutFile: out, Hostname: "h", PID: 1, WorkerCount: 8, Format: shard.FormatCSV})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("merged %d shards, want 1 (7 missing should be skipped)", n)
	}
}
