// Package emitter defines the pluggable generation steps that contribute
// files and directories to a scaffolding run. Emitters declare dependencies
// on each other by name; the planner orders them before the engine executes
// the run.
package emitter

import (
	"context"
	"io/fs"
	"sort"
	"sync"
	"time"

	"dsforge/internal/domain"
	"dsforge/internal/render"
)

// Output is one file produced by an emitter, path relative to the project
// root with forward slashes.
type Output struct {
	Path    string      `json:"path"`
	Content []byte      `json:"-"`
	Mode    fs.FileMode `json:"mode"`
	Emitter string      `json:"emitter"`
}

// Build collects the outputs of one generation run. Emitters append to it;
// the engine materializes it on disk afterwards. Appends are safe for
// concurrent use.
type Build struct {
	Template *domain.Template
	Context  *domain.RenderContext
	Renderer *render.Engine
	// Now is the timestamp stamped into generated metadata, fixed once per
	// run so all artifacts agree.
	Now time.Time

	mu    sync.Mutex
	dirs  []string
	files []Output

	// Manifest is populated by the manifest emitter at the end of the run.
	Manifest *domain.Manifest
}

// NewBuild creates a build for the given template and context
func NewBuild(tpl *domain.Template, rctx *domain.RenderContext, eng *render.Engine) *Build {
	return &Build{
		Template: tpl,
		Context:  rctx,
		Renderer: eng,
		Now:      time.Now().UTC(),
	}
}

// AddDir records a directory to create
func (b *Build) AddDir(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dirs = append(b.dirs, path)
}

// AddFile records a file to write
func (b *Build) AddFile(out Output) {
	if out.Mode == 0 {
		out.Mode = 0o644
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.files = append(b.files, out)
}

// Dirs returns the recorded directories, sorted and deduplicated
func (b *Build) Dirs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	seen := make(map[string]struct{}, len(b.dirs))
	out := make([]string, 0, len(b.dirs))
	for _, d := range b.dirs {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Files returns the recorded files sorted by path
func (b *Build) Files() []Output {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Output, len(b.files))
	copy(out, b.files)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Emitter is one generation step
type Emitter interface {
	// Name returns the unique identifier for this emitter
	Name() string

	// Requires lists emitters that must run before this one
	Requires() []string

	// Emit contributes outputs to the build
	Emit(ctx context.Context, b *Build) error
}
