package emitter

import (
	"context"
	"fmt"

	"dsforge/internal/notebook"
)

// NotebookPath is where the generated analysis notebook lands, relative to
// the project root.
const NotebookPath = "notebooks/analysis.ipynb"

// NotebookEmitter generates the boilerplate analysis notebook
type NotebookEmitter struct{}

// NewNotebookEmitter creates the notebook emitter
func NewNotebookEmitter() *NotebookEmitter { return &NotebookEmitter{} }

// Name implements Emitter
func (e *NotebookEmitter) Name() string { return "notebook" }

// Requires implements Emitter; notebooks/ comes from the tree emitter
func (e *NotebookEmitter) Requires() []string { return []string{"tree"} }

// Emit builds the analysis notebook for the project and module name in the
// run context
func (e *NotebookEmitter) Emit(ctx context.Context, b *Build) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	nb := notebook.BuildAnalysis(b.Context.ProjectName(), b.Context.ModuleName())
	data, err := nb.Encode()
	if err != nil {
		return fmt.Errorf("notebook: %w", err)
	}

	b.AddFile(Output{Path: NotebookPath, Content: data, Mode: 0o644, Emitter: e.Name()})
	return nil
}
