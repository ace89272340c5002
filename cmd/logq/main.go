// Command logq queries CSV and parquet log files with a small filter
// language.
//
// Usage:
//
//	logq                                  interactive session
//	logq query -q "severity >= '5'" logs/*.csv
//	logq saved --limit 5
package main

import (
	"os"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).run(os.Args[1:]); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
