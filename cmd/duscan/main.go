// Command duscan walks one or more filesystem trees in parallel and
// writes per-entry metadata rows to a CSV or zstd-binary output file.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/sganis/dutopia-go/internal/merge"
	"github.com/sganis/dutopia-go/internal/scan"
	"github.com/sganis/dutopia-go/internal/shard"
)

func main() {
	var (
		outDir    = flag.String("out", ".", "output directory for shards and the final artifact")
		outName   = flag.String("name", "scan", "base name for the final artifact (without extension)")
		binary    = flag.Bool("binary", false, "write a zstd-compressed binary stream instead of CSV")
		skip      = flag.String("skip", "", "skip any directory whose path contains this substring")
		zeroAtime = flag.Bool("zero-atime", false, "zero every row's atime and sort CSV output on merge, for reproducible test runs")
		workers   = flag.Int("workers", 0, "worker count (0 = min(48, max(4, 2*NumCPU)))")
		verbose   = flag.Bool("v", false, "set the scan config's verbose flag (workers produce no extra output for it)")
	)
	flag.Parse()
	roots := flag.Args()
	if len(roots) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one root folder argument is required")
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: output directory: %s\n", err)
		os.Exit(1)
	}

	n := *workers
	if n <= 0 {
		n = runtime.NumCPU() * 2
		if n < 4 {
			n = 4
		}
		if n > 48 {
			n = 48
		}
	}

	format := shard.FormatCSV
	scanFmt := scan.OutputCSV
	ext := ".csv"
	if *binary {
		format = shard.FormatBinary
		scanFmt = scan.OutputBinary
		ext = ".zst"
	}

	hostname, _ := os.Hostname()
	pid := os.Getpid()
	cfg := scan.NewConfig(*outDir, hostname, pid,
		scan.WithSkipSubstring(*skip),
		scan.WithOutputFormat(scanFmt),
		scan.WithZeroAtime(*zeroAtime),
		scan.WithVerbose(*verbose),
	)

	d := scan.NewDispatcher(n)
	var wg sync.WaitGroup
	var allStats []*scan.Stats
	var spawnErrors uint64
	for i := 0; i < n; i++ {
		w, err := shard.New(*outDir, hostname, pid, i, shard.WithFormat(format))
		if err != nil {
			// Fatal resource failure per spec §4.D: this worker never
			// starts and is recorded as an error, but the others keep
			// running; the merger skips its missing shard file.
			fmt.Fprintf(os.Stderr, "Error: worker %d: %s\n", i, err)
			spawnErrors++
			continue
		}
		st := &scan.Stats{}
		allStats = append(allStats, st)
		wg.Add(1)
		go func(w *shard.Writer, st *scan.Stats) {
			defer wg.Done()
			defer w.Close()
			scan.Worker(d, cfg, w, st)
		}(w, st)
	}

	if len(allStats) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no worker could be started")
		os.Exit(1)
	}

	stop := make(chan struct{})
	go scan.Report(&d.Progress, stop)

	d.Seed(roots)
	d.RunShutdownWatcher()
	wg.Wait()
	close(stop)

	totalErrors := spawnErrors
	var totalFiles uint64
	for _, s := range allStats {
		totalFiles += s.Files
		totalErrors += s.Errors
	}
	fmt.Printf("\nscanned %d rows, %d errors\n", totalFiles, totalErrors)

	outFile := filepath.Join(*outDir, *outName+ext)
	merged, err := merge.Merge(merge.Config{
		OutDir: *outDir, OutFile: outFile, Hostname: hostname, PID: pid,
		WorkerCount: n, Format: format, Sort: *zeroAtime && !*binary,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: merge: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("merged %d shards into %s\n", merged, outFile)
}
