// Command dusum reduces a merged scan CSV into the per-(folder, owner,
// age-bucket) rollup the API server loads at startup.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sganis/dutopia-go/internal/aggregate"
)

func main() {
	var (
		out       = flag.String("out", "sum.csv", "output rollup CSV path")
		unknownOut = flag.String("unknown-out", "unknown_uids.txt", "output path for unresolved uids")
		young     = flag.Int("young-days", aggregate.DefaultAgeConfig.YoungDays, "age bucket 0/1 boundary in days")
		old       = flag.Int("old-days", aggregate.DefaultAgeConfig.OldDays, "age bucket 1/2 boundary in days")
	)
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: dusum [flags] <merged.csv>")
		os.Exit(1)
	}
	inPath := args[0]

	countFile, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	total, err := aggregate.CountLines(countFile)
	countFile.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: counting lines: %s\n", err)
		os.Exit(1)
	}

	in, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer in.Close()

	opts := aggregate.Options{
		Age: aggregate.AgeConfig{YoungDays: *young, OldDays: *old},
		Now: time.Now().Unix(),
		OnProgress: func(done, total int) {
			if total > 0 {
				fmt.Printf("\r%d%% (%d/%d)", done*100/total, done, total)
			}
		},
	}
	rollup, resolver, err := aggregate.Aggregate(in, total, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: aggregate: %s\n", err)
		os.Exit(1)
	}
	fmt.Println()

	outFile, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer outFile.Close()
	if err := aggregate.WriteResults(outFile, rollup); err != nil {
		fmt.Fprintf(os.Stderr, "Error: writing results: %s\n", err)
		os.Exit(1)
	}

	unknownFile, err := os.Create(*unknownOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer unknownFile.Close()
	if err := aggregate.WriteUnknownUIDs(unknownFile, resolver); err != nil {
		fmt.Fprintf(os.Stderr, "Error: writing unknown uids: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s and %s\n", *out, *unknownOut)
}
