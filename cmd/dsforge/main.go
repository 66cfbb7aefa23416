// Command dsforge scaffolds data science projects from template packs.
//
// Usage:
//
//	dsforge new --name "Churn Analysis" [--template datascience] [flags]
//	dsforge templates [list|show <name>]
//	dsforge projects [list|show|manifest|delete] [args]
//	dsforge validate <pack-dir>
//	dsforge verify <project-dir>
//	dsforge serve [flags]
//	dsforge version
package main

import (
	"fmt"
	"os"

	"dsforge/internal/config"
	"dsforge/internal/log"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "new":
		os.Exit(runNew(args))
	case "templates":
		os.Exit(runTemplates(args))
	case "projects":
		os.Exit(runProjects(args))
	case "validate":
		os.Exit(runValidate(args))
	case "verify":
		os.Exit(runVerify(args))
	case "serve":
		os.Exit(runServe(args))
	case "version", "--version", "-version":
		fmt.Printf("dsforge %s (commit: %s, built: %s)\n", version, commit, buildDate)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  dsforge new --name <project name> [--template datascience] [--license MIT] [flags]")
	fmt.Fprintln(os.Stderr, "  dsforge templates [list]")
	fmt.Fprintln(os.Stderr, "  dsforge templates show <name>")
	fmt.Fprintln(os.Stderr, "  dsforge projects [list]")
	fmt.Fprintln(os.Stderr, "  dsforge projects show <id>")
	fmt.Fprintln(os.Stderr, "  dsforge projects manifest <id> [--format=json|yaml]")
	fmt.Fprintln(os.Stderr, "  dsforge projects delete <id>")
	fmt.Fprintln(os.Stderr, "  dsforge validate <pack-dir>")
	fmt.Fprintln(os.Stderr, "  dsforge verify <project-dir>")
	fmt.Fprintln(os.Stderr, "  dsforge serve [--addr :8468] [--db dsforge.db] [--templates <dir>]")
	fmt.Fprintln(os.Stderr, "  dsforge version")
}

// loadConfig loads layered configuration and configures logging from it
func loadConfig() *config.Config {
	cfg, path, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log.Configure(log.Config{Level: cfg.Log.Level, Console: cfg.Log.Console})

	logger := log.WithComponent("main")
	if path != "" {
		logger.Debug().Str("path", path).Msg("config loaded from file")
	} else {
		logger.Debug().Msg("config loaded from environment and defaults")
	}
	return cfg
}
