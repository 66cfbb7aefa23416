package emitter

import (
	"context"
	"strings"
)

// GitkeepEmitter drops a .gitkeep marker into every skeleton directory that
// ends a run without files, so the generated layout survives a git clone.
// It must run after every emitter that contributes files.
type GitkeepEmitter struct{}

// NewGitkeepEmitter creates the gitkeep emitter
func NewGitkeepEmitter() *GitkeepEmitter { return &GitkeepEmitter{} }

// Name implements Emitter
func (e *GitkeepEmitter) Name() string { return "gitkeep" }

// Requires implements Emitter
func (e *GitkeepEmitter) Requires() []string { return []string{"tree", "files", "notebook"} }

// Emit adds .gitkeep files for directories no other emitter populated
func (e *GitkeepEmitter) Emit(ctx context.Context, b *Build) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	files := b.Files()
	for _, dir := range b.Dirs() {
		populated := false
		for _, f := range files {
			if strings.HasPrefix(f.Path, dir+"/") {
				populated = true
				break
			}
		}
		if !populated {
			b.AddFile(Output{Path: dir + "/.gitkeep", Mode: 0o644, Emitter: e.Name()})
		}
	}
	return nil
}
