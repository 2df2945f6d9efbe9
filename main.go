package main

import (
	"fmt"
	"os"

	"keyword-radar/internal/cli"
)

func main() {
	// Global panic recovery to prevent application crash
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "🚨 CRITICAL ERROR: Application panic recovered: %v\n", r)
			fmt.Fprintf(os.Stderr, "Please check the logs for more details and report this issue.\n")
			os.Exit(1)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
