// Package scaffold implements the project generation engine: it resolves a
// render context, runs the planned emitters, materializes the resulting
// build on disk and records the project in the registry.
package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"dsforge/internal/domain"
	"dsforge/internal/emitter"
	"dsforge/internal/loader"
	"dsforge/internal/log"
	"dsforge/internal/planner"
	"dsforge/internal/render"
	"dsforge/internal/repository"
	"dsforge/internal/service"
)

// Request describes one generation run
type Request struct {
	Template    string `json:"template" validate:"required"`
	ProjectName string `json:"project_name" validate:"required,min=1,max=128"`
	// Slug and ModuleName override the values derived from ProjectName.
	Slug       string            `json:"slug,omitempty" validate:"omitempty,max=128"`
	ModuleName string            `json:"module_name,omitempty" validate:"omitempty,max=128"`
	License    string            `json:"license,omitempty"`
	Author     string            `json:"author,omitempty" validate:"omitempty,max=128"`
	Variables  map[string]string `json:"variables,omitempty"`
	OutputDir  string            `json:"output_dir,omitempty"`
	DryRun     bool              `json:"dry_run,omitempty"`
	Force      bool              `json:"force,omitempty"`
}

// Result is the outcome of a generation run
type Result struct {
	Project  *domain.Project  `json:"project"`
	Manifest *domain.Manifest `json:"manifest"`
	// Path is empty for dry runs.
	Path string `json:"path,omitempty"`
}

// Engine orchestrates generation runs
type Engine struct {
	templates *loader.Registry
	emitters  *emitter.Registry
	renderer  *render.Engine
	repo      repository.Repository
	bus       *service.EventBus
	logger    zerolog.Logger

	// defaults applied when the request leaves them empty
	defaultOutput string
	defaultAuthor string
}

// Option configures the engine
type Option func(*Engine)

// WithRepository records generated projects in the given registry
func WithRepository(repo repository.Repository) Option {
	return func(e *Engine) { e.repo = repo }
}

// WithEventBus publishes run progress events
func WithEventBus(bus *service.EventBus) Option {
	return func(e *Engine) { e.bus = bus }
}

// WithDefaults sets the fallback output directory and author name
func WithDefaults(outputDir, author string) Option {
	return func(e *Engine) {
		e.defaultOutput = outputDir
		e.defaultAuthor = author
	}
}

// New creates an engine over the given template registry with the standard
// emitters.
func New(templates *loader.Registry, opts ...Option) *Engine {
	e := &Engine{
		templates:     templates,
		emitters:      emitter.Default(),
		renderer:      render.New(),
		logger:        log.WithComponent("scaffold"),
		defaultOutput: ".",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate runs one scaffolding request end to end. A failed run leaves no
// partial project behind: the output directory is removed again if this run
// created it.
func (e *Engine) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	tpl, err := e.templates.Get(req.Template)
	if err != nil {
		return nil, err
	}

	rctx, err := e.resolveContext(tpl, req)
	if err != nil {
		return nil, err
	}

	order, err := planner.Plan(e.emitters)
	if err != nil {
		return nil, err
	}

	e.publish(service.EventRunStarted, map[string]string{
		"project":  rctx.ProjectName(),
		"slug":     rctx.ProjectSlug(),
		"template": tpl.Name,
	})

	build := emitter.NewBuild(tpl, rctx, e.renderer)
	for _, em := range order {
		if err := em.Emit(ctx, build); err != nil {
			e.publish(service.EventRunFailed, map[string]string{"error": err.Error()})
			return nil, fmt.Errorf("emitter %s: %w", em.Name(), err)
		}
	}

	project := &domain.Project{
		ID:        uuid.NewString(),
		Name:      rctx.ProjectName(),
		Slug:      rctx.ProjectSlug(),
		Template:  tpl.Name,
		License:   rctx.License(),
		FileCount: len(build.Manifest.Entries),
		Digest:    emitter.ProjectDigest(build.Manifest),
		CreatedAt: build.Now,
	}

	if req.DryRun {
		e.logger.Info().Str("slug", project.Slug).Int("files", project.FileCount).
			Msg("dry run complete")
		e.publish(service.EventRunFinished, project)
		return &Result{Project: project, Manifest: build.Manifest}, nil
	}

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = e.defaultOutput
	}
	dest := filepath.Join(outputDir, project.Slug)

	created, err := e.prepareDest(dest, req.Force)
	if err != nil {
		return nil, err
	}

	if err := e.materialize(ctx, dest, build); err != nil {
		if created {
			os.RemoveAll(dest)
		}
		e.publish(service.EventRunFailed, map[string]string{"error": err.Error()})
		return nil, err
	}
	project.Path = dest

	if e.repo != nil {
		if err := e.repo.CreateProject(ctx, project, build.Manifest); err != nil {
			return nil, fmt.Errorf("record project: %w", err)
		}
	}

	e.logger.Info().
		Str("slug", project.Slug).
		Str("path", dest).
		Int("files", project.FileCount).
		Dur("elapsed", time.Since(start)).
		Msg("project generated")
	e.publish(service.EventRunFinished, project)

	return &Result{Project: project, Manifest: build.Manifest, Path: dest}, nil
}

// resolveContext builds and validates the render context for a request
func (e *Engine) resolveContext(tpl *domain.Template, req Request) (*domain.RenderContext, error) {
	rctx, err := domain.NewRenderContext(req.ProjectName)
	if err != nil {
		return nil, err
	}

	if req.Slug != "" {
		rctx.Set(domain.KeyProjectSlug, domain.Slugify(req.Slug))
	}
	if req.ModuleName != "" {
		rctx.Set(domain.KeyModuleName, domain.ModuleName(req.ModuleName))
	}
	if req.License != "" {
		rctx.Set(domain.KeyLicense, string(domain.ParseLicense(req.License)))
	}
	author := req.Author
	if author == "" {
		author = e.defaultAuthor
	}
	if author != "" {
		rctx.Set(domain.KeyAuthorName, author)
	}

	for name, value := range req.Variables {
		if _, declared := tpl.Variable(name); !declared && !wellKnown(name) {
			return nil, fmt.Errorf("variable %q: %w", name, domain.ErrUnknownVariable)
		}
		rctx.Set(name, value)
	}

	if err := rctx.ApplyDefaults(tpl); err != nil {
		return nil, err
	}
	if _, ok := rctx.Get(domain.KeyAuthorName); !ok {
		rctx.Set(domain.KeyAuthorName, rctx.ProjectName())
	}
	return rctx, nil
}

// prepareDest creates the destination directory. It reports whether this run
// created it, so failure cleanup never removes a pre-existing directory.
func (e *Engine) prepareDest(dest string, force bool) (bool, error) {
	if info, err := os.Stat(dest); err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", dest)
		}
		if !force {
			return false, fmt.Errorf("%s: %w", dest, domain.ErrOutputExists)
		}
		return false, nil
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return false, fmt.Errorf("create %s: %w", dest, err)
	}
	return true, nil
}

// materialize writes the build to disk: directories first, then all files
// concurrently. Files are written atomically so an interrupted run never
// leaves half-written content behind.
func (e *Engine) materialize(ctx context.Context, dest string, build *emitter.Build) error {
	for _, dir := range build.Dirs() {
		if err := os.MkdirAll(filepath.Join(dest, filepath.FromSlash(dir)), 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, f := range build.Files() {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			target := filepath.Join(dest, filepath.FromSlash(f.Path))
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create directory for %s: %w", f.Path, err)
			}
			if err := renameio.WriteFile(target, f.Content, f.Mode); err != nil {
				return fmt.Errorf("write %s: %w", f.Path, err)
			}

			e.logger.Debug().Str("path", f.Path).Str("emitter", f.Emitter).Msg("file written")
			e.publish(service.EventRunFileWritten, map[string]string{"path": f.Path})
			return nil
		})
	}
	return g.Wait()
}

func (e *Engine) publish(t service.EventType, payload any) {
	if e.bus != nil {
		e.bus.Publish(service.Event{Type: t, Payload: payload})
	}
}

// wellKnown reports whether a variable name is always part of a context,
// whether or not the template declares it.
func wellKnown(name string) bool {
	switch name {
	case domain.KeyProjectName, domain.KeyProjectSlug, domain.KeyModuleName,
		domain.KeyLicense, domain.KeyAuthorName, domain.KeyYear:
		return true
	}
	return false
}
