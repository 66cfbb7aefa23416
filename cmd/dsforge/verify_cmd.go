package main

import (
	"fmt"
	"os"

	"dsforge/internal/scaffold"
)

func runVerify(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: dsforge verify <project-dir>")
		return 2
	}

	report, err := scaffold.VerifyTree(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Verify failed: %v\n", err)
		return 1
	}

	if report.Clean() {
		fmt.Printf("OK: %s (%d files match the manifest)\n",
			report.Manifest.Project, len(report.Manifest.Entries))
		return 0
	}

	for _, path := range report.Missing {
		fmt.Printf("missing   %s\n", path)
	}
	for _, path := range report.Modified {
		fmt.Printf("modified  %s\n", path)
	}
	return 1
}
