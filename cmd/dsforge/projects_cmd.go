package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"dsforge/internal/codec"
	"dsforge/internal/repository/sqlite"
	"dsforge/internal/service"
)

func runProjects(args []string) int {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	cfg := loadConfig()
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open registry: %v\n", err)
		return 1
	}
	defer repo.Close()

	projects := service.NewProjectService(repo, nil)
	ctx := context.Background()

	switch sub {
	case "list":
		list, err := projects.List(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		if len(list) == 0 {
			fmt.Println("No projects recorded.")
			return 0
		}
		for _, p := range list {
			fmt.Printf("%s  %-24s %-14s %4d files  %s\n",
				p.ID, p.Slug, p.Template, p.FileCount, p.CreatedAt.Format("2006-01-02 15:04"))
		}
		return 0

	case "show":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: dsforge projects show <id>")
			return 2
		}
		p, err := projects.Get(ctx, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		fmt.Printf("ID:       %s\n", p.ID)
		fmt.Printf("Name:     %s\n", p.Name)
		fmt.Printf("Slug:     %s\n", p.Slug)
		fmt.Printf("Template: %s\n", p.Template)
		fmt.Printf("License:  %s\n", p.License)
		fmt.Printf("Path:     %s\n", p.Path)
		fmt.Printf("Files:    %d\n", p.FileCount)
		fmt.Printf("Digest:   %s\n", p.Digest)
		fmt.Printf("Created:  %s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
		return 0

	case "manifest":
		fs := flag.NewFlagSet("dsforge projects manifest", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		format := fs.String("format", "yaml", "output format (json or yaml)")
		if err := fs.Parse(args); err != nil {
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "Usage: dsforge projects manifest <id> [--format=json|yaml]")
			return 2
		}

		m, err := projects.Manifest(ctx, fs.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		c, err := codec.ByFormat(*format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 2
		}
		if err := c.Export(m, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		return 0

	case "delete":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: dsforge projects delete <id>")
			return 2
		}
		if err := projects.Delete(ctx, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		fmt.Printf("Deleted %s (generated files left on disk)\n", args[0])
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown subcommand: %s\n", sub)
		fmt.Fprintln(os.Stderr, "Usage: dsforge projects [list|show|manifest|delete]")
		return 2
	}
}
