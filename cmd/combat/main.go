// Package main provides the combat command: a tabletop combat assistant that
// rolls dice, orders initiative and tracks hit points for a persisted roster.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
