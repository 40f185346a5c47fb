// Package main provides the bankeda command line tool for exploring the
// UCI bank marketing dataset.
//
// Usage:
//
//	bankeda describe --data bank-additional-full.csv
//	bankeda counts y --normalize
//	bankeda --where 'y == "yes"' sort duration:desc --head 5
//	bankeda crosstab y marital --normalize index
//	bankeda pivot --index job --values age,duration --agg mean
//	bankeda chart box age --by marital,housing
//	bankeda questions
//	bankeda repl
package main

import (
	"fmt"
	"os"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).root().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
