package main

import (
	"fmt"
	"os"

	"dsforge/internal/loader"
)

func runValidate(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: dsforge validate <pack-dir>")
		return 2
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Not a directory: %s\n", dir)
		return 1
	}

	t, err := loader.Load(os.DirFS(dir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid template pack: %v\n", err)
		return 1
	}

	fmt.Printf("OK: %s (%d variables, %d directories, %d files)\n",
		t.Name, len(t.Variables), len(t.Directories), len(t.Files))
	return 0
}
