package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"dsforge/internal/loader"
	"dsforge/internal/repository"
	"dsforge/internal/repository/sqlite"
	"dsforge/internal/scaffold"
)

// varFlags collects repeatable --var name=value flags
type varFlags map[string]string

func (v varFlags) String() string {
	parts := make([]string, 0, len(v))
	for k, val := range v {
		parts = append(parts, k+"="+val)
	}
	return strings.Join(parts, ",")
}

func (v varFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	v[name] = value
	return nil
}

func runNew(args []string) int {
	fs := flag.NewFlagSet("dsforge new", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		name     = fs.String("name", "", "project name (required)")
		template = fs.String("template", "datascience", "template pack to use")
		license  = fs.String("license", "", "open source license (MIT, BSD-3-Clause, none)")
		author   = fs.String("author", "", "license holder and notebook author")
		slug     = fs.String("slug", "", "override the derived project directory name")
		module   = fs.String("module", "", "override the derived python module name")
		output   = fs.String("output", "", "parent directory for the project")
		dryRun   = fs.Bool("dry-run", false, "plan the project without writing files")
		force    = fs.Bool("force", false, "write into an existing directory")
		noRecord = fs.Bool("no-record", false, "skip recording the project in the registry")
	)
	vars := varFlags{}
	fs.Var(vars, "var", "extra template variable as name=value (repeatable)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *name == "" && fs.NArg() > 0 {
		*name = strings.Join(fs.Args(), " ")
	}
	if *name == "" {
		fmt.Fprintln(os.Stderr, "dsforge new: --name is required")
		fs.Usage()
		return 2
	}

	cfg := loadConfig()

	templates, err := loader.NewRegistry(cfg.TemplatesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load templates: %v\n", err)
		return 1
	}

	var repo repository.Repository
	if !*noRecord && !*dryRun {
		r, err := sqlite.New(cfg.Database.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open registry: %v\n", err)
			return 1
		}
		defer r.Close()
		repo = r
	}

	opts := []scaffold.Option{scaffold.WithDefaults(cfg.OutputDir, cfg.Author)}
	if repo != nil {
		opts = append(opts, scaffold.WithRepository(repo))
	}
	engine := scaffold.New(templates, opts...)

	lic := *license
	if lic == "" {
		lic = cfg.DefaultLicense
	}

	res, err := engine.Generate(context.Background(), scaffold.Request{
		Template:    *template,
		ProjectName: *name,
		Slug:        *slug,
		ModuleName:  *module,
		License:     lic,
		Author:      *author,
		Variables:   vars,
		OutputDir:   *output,
		DryRun:      *dryRun,
		Force:       *force,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		return 1
	}

	if *dryRun {
		fmt.Printf("Would generate %q (%d files):\n", res.Project.Slug, res.Project.FileCount)
		for _, dir := range res.Manifest.Directories {
			fmt.Printf("  %s/\n", dir)
		}
		for _, entry := range res.Manifest.Entries {
			fmt.Printf("  %s (%d bytes)\n", entry.Path, entry.Size)
		}
		return 0
	}

	fmt.Printf("Created %s (%d files, template %s)\n", res.Path, res.Project.FileCount, res.Project.Template)
	if repo != nil {
		fmt.Printf("Recorded as %s\n", res.Project.ID)
	}
	return 0
}
