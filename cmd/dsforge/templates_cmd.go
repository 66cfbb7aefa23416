package main

import (
	"fmt"
	"os"

	"dsforge/internal/domain"
	"dsforge/internal/loader"
)

func runTemplates(args []string) int {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	cfg := loadConfig()
	templates, err := loader.NewRegistry(cfg.TemplatesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load templates: %v\n", err)
		return 1
	}

	switch sub {
	case "list":
		for _, t := range templates.List() {
			desc := t.Description
			if desc == "" {
				desc = "(no description)"
			}
			fmt.Printf("%-20s %s\n", t.Name, desc)
		}
		return 0

	case "show":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: dsforge templates show <name>")
			return 2
		}
		t, err := templates.Get(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		printTemplate(t)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown subcommand: %s\n", sub)
		fmt.Fprintln(os.Stderr, "Usage: dsforge templates [list|show <name>]")
		return 2
	}
}

func printTemplate(t *domain.Template) {
	fmt.Printf("Name:        %s\n", t.Name)
	if t.Description != "" {
		fmt.Printf("Description: %s\n", t.Description)
	}
	if t.Version != "" {
		fmt.Printf("Version:     %s\n", t.Version)
	}

	if len(t.Variables) > 0 {
		fmt.Println("Variables:")
		for _, v := range t.Variables {
			line := fmt.Sprintf("  %s (%s)", v.Name, v.Kind)
			if v.Default != "" {
				line += fmt.Sprintf(" default=%q", v.Default)
			}
			if len(v.Choices) > 0 {
				line += fmt.Sprintf(" choices=%v", v.Choices)
			}
			fmt.Println(line)
		}
	}

	if len(t.Directories) > 0 {
		fmt.Println("Directories:")
		for _, d := range t.Directories {
			fmt.Printf("  %s/\n", d)
		}
	}
	fmt.Printf("Files:       %d\n", len(t.Files))
}
