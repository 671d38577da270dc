package scan

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/sganis/dutopia-go/internal/shard"
)

func TestNewConfigAppliesOptions(t *testing.T) {
	cfg := NewConfig("/out", "host1", 42,
		WithSkipSubstring("skipme"),
		WithOutputFormat(OutputBinary),
		WithZeroAtime(true),
		WithVerbose(true),
	)
	if cfg.OutDir != "/out" || cfg.Hostname != "host1" || cfg.PID != 42 {
		t.Fatalf("unexpected base fields: %+v", cfg)
	}
	if cfg.SkipSubstring != "skipme" || cfg.OutputFormat != OutputBinary || !cfg.ZeroAtime || !cfg.Verbose {
		t.Fatalf("options not applied: %+v", cfg)
	}
}

func runScan(t *testing.T, root string, workerCount int) ([]*Stats, *Dispatcher) {
	t.Helper()
	d := NewDispatcher(workerCount)
	cfg := Config{OutputFormat: OutputCSV, Hostname: "h", PID: os.Getpid()}
	outDir := t.TempDir()

	var wg sync.WaitGroup
	statsList := make([]*Stats, workerCount)
	for i := 0; i < workerCount; i++ {
		w, err := shard.New(outDir, cfg.Hostname, cfg.PID, i)
		if err != nil {
			t.Fatal(err)
		}
		st := &Stats{}
		statsList[i] = st
		wg.Add(1)
		go func(w *shard.Writer, st *Stats) {
			defer wg.Done()
			defer w.Close()
			Worker(d, cfg, w, st)
		}(w, st)
	}

	d.Seed([]string{root})
	d.RunShutdownWatcher()
	wg.Wait()
	return statsList, d
}

func TestShutdownCorrectnessManyFiles(t *testing.T) {
	root := t.TempDir()
	const n = 2500
	for i := 0; i < n; i++ {
		f := filepath.Join(root, "file"+strconv.Itoa(i))
		if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	stats, d := runScan(t, root, 4)
	var total uint64
	for _, s := range stats {
		total += s.Files
	}
	// n files + 1 row for the root directory itself.
	if total != uint64(n+1) {
		t.Fatalf("got %d rows, want %d", total, n+1)
	}
	if d.inFlight.Load() != 0 {
		t.Fatalf("in-flight counter did not settle at zero")
	}
}

func TestSkipSubstring(t *testing.T) {
	root := t.TempDir()
	skipped := filepath.Join(root, "skipme")
	if err := os.Mkdir(skipped, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(skipped, "a"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "b"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := NewDispatcher(2)
	cfg := Config{OutputFormat: OutputCSV, SkipSubstring: "skipme"}
	outDir := t.TempDir()
	var wg sync.WaitGroup
	stats := make([]*Stats, 2)
	for i := 0; i < 2; i++ {
		w, err := shard.New(outDir, "h", 1, i)
		if err != nil {
			t.Fatal(err)
		}
		stats[i] = &Stats{}
		wg.Add(1)
		go func(w *shard.Writer, st *Stats) {
			defer wg.Done()
			defer w.Close()
			Worker(d, cfg, w, st)
		}(w, stats[i])
	}
	d.Seed([]string{root})
	d.RunShutdownWatcher()
	wg.Wait()

	var total uint64
	for _, s := range stats {
		total += s.Files
	}
	// root dir row + "b" file row; "skipme" dir and its child are never statted.
	if total != 2 {
		t.Fatalf("got %d rows, want 2", total)
	}
}

