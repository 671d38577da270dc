// Command duapi loads a built aggregation rollup, publishes it through a
// publish.Cell, prints the number of known users, and then answers
// list_children queries read from stdin. get_items (internal/livefiles)
// is not wired into this binary. The router itself, JWT
// issuance/verification, and the "DDN" input adapter are external
// collaborators per spec §1 and are not implemented here.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sganis/dutopia-go/internal/fsindex"
	"github.com/sganis/dutopia-go/internal/publish"
	"github.com/sganis/dutopia-go/internal/webapi"
)

func main() {
	sumPath := flag.String("sum", "sum.csv", "path to the aggregated rollup CSV")
	flag.Parse()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		fmt.Fprintln(os.Stderr, "warning: JWT_SECRET not set, substituting an insecure default (do not use in production)")
		jwtSecret = "insecure-default-secret"
	}
	_ = jwtSecret // cached for the external JWT layer; not used for anything here.

	admins := webapi.AdminSet(os.Getenv("ADMIN_GROUP"))

	f, err := os.Open(*sumPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	idx, err := fsindex.LoadFromCSVReader(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading index: %s\n", err)
		os.Exit(1)
	}

	var cell publish.Cell[*fsindex.Index]
	cell.Set(idx)

	fmt.Printf("loaded index from %s, %d users known, %d admin(s) configured\n",
		*sumPath, len(cell.Get().GetUsers()), len(admins))
	fmt.Println("enter: <path> [user,user,...] [age] ; blank path line exits")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			return
		}
		path := fields[0]
		var users []string
		var ageFilter *int
		if len(fields) > 1 {
			users = webapi.ParseUsersCSV(fields[1])
		}
		if len(fields) > 2 {
			if a, err := strconv.Atoi(fields[2]); err == nil {
				ageFilter = &a
			}
		}

		out, err := cell.Get().ListChildren(path, users, ageFilter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			continue
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(out)
	}
}
