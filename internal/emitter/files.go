package emitter

import (
	"context"
	"fmt"
	"io/fs"
)

// FilesEmitter renders the template pack's file tree
type FilesEmitter struct{}

// NewFilesEmitter creates the files emitter
func NewFilesEmitter() *FilesEmitter { return &FilesEmitter{} }

// Name implements Emitter
func (e *FilesEmitter) Name() string { return "files" }

// Requires implements Emitter
func (e *FilesEmitter) Requires() []string { return []string{"tree"} }

// Emit renders every file entry's path and content against the run context
func (e *FilesEmitter) Emit(ctx context.Context, b *Build) error {
	for _, f := range b.Template.SortedFiles() {
		if err := ctx.Err(); err != nil {
			return err
		}

		path, err := b.Renderer.RenderPath(f.Path, b.Context)
		if err != nil {
			return fmt.Errorf("file %q: %w", f.Path, err)
		}
		content, err := b.Renderer.RenderContent(f.Path, f.Content, b.Context)
		if err != nil {
			return fmt.Errorf("file %q: %w", f.Path, err)
		}

		mode := fs.FileMode(f.Mode)
		if mode == 0 {
			mode = 0o644
		}
		b.AddFile(Output{Path: path, Content: content, Mode: mode, Emitter: e.Name()})
	}
	return nil
}
