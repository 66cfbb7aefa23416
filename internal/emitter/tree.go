package emitter

import (
	"context"
	"fmt"
)

// TreeEmitter creates the skeleton directories declared by the template
type TreeEmitter struct{}

// NewTreeEmitter creates the tree emitter
func NewTreeEmitter() *TreeEmitter { return &TreeEmitter{} }

// Name implements Emitter
func (e *TreeEmitter) Name() string { return "tree" }

// Requires implements Emitter; the tree goes first
func (e *TreeEmitter) Requires() []string { return nil }

// Emit renders each declared directory path and records it
func (e *TreeEmitter) Emit(ctx context.Context, b *Build) error {
	for _, dir := range b.Template.Directories {
		if err := ctx.Err(); err != nil {
			return err
		}
		rendered, err := b.Renderer.RenderPath(dir, b.Context)
		if err != nil {
			return fmt.Errorf("directory %q: %w", dir, err)
		}
		b.AddDir(rendered)
	}
	return nil
}
