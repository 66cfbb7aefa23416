// Package notebook builds Jupyter notebooks (nbformat 4) as structured
// documents. The scaffolder generates the boilerplate analysis notebook
// programmatically instead of shipping a static .ipynb asset, so the cells
// can reference the rendered module name.
package notebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Cell types understood by Jupyter.
const (
	CellMarkdown = "markdown"
	CellCode     = "code"
)

// Cell is a single notebook cell
type Cell struct {
	Type string `json:"cell_type"`
	ID   string `json:"id"`
	// Metadata is always serialized, even when empty, per nbformat.
	Metadata map[string]any `json:"metadata"`
	// Source holds the cell text split into lines; every line except the
	// last carries its trailing newline, matching Jupyter's on-disk form.
	Source []string `json:"source"`

	// Code-cell only fields.
	ExecutionCount *int  `json:"execution_count,omitempty"`
	Outputs        []any `json:"outputs,omitempty"`
}

// Notebook is a complete nbformat 4 document
type Notebook struct {
	Cells         []Cell         `json:"cells"`
	Metadata      map[string]any `json:"metadata"`
	NBFormat      int            `json:"nbformat"`
	NBFormatMinor int            `json:"nbformat_minor"`
}

// New creates an empty notebook with Python kernel metadata
func New() *Notebook {
	return &Notebook{
		Cells: []Cell{},
		Metadata: map[string]any{
			"kernelspec": map[string]any{
				"display_name": "Python 3 (ipykernel)",
				"language":     "python",
				"name":         "python3",
			},
			"language_info": map[string]any{
				"name": "python",
			},
		},
		NBFormat:      4,
		NBFormatMinor: 5,
	}
}

// AddMarkdown appends a markdown cell
func (n *Notebook) AddMarkdown(text string) {
	n.Cells = append(n.Cells, Cell{
		Type:     CellMarkdown,
		ID:       n.nextID(),
		Metadata: map[string]any{},
		Source:   splitSource(text),
	})
}

// AddCode appends an unexecuted code cell
func (n *Notebook) AddCode(code string) {
	n.Cells = append(n.Cells, Cell{
		Type:     CellCode,
		ID:       n.nextID(),
		Metadata: map[string]any{},
		Source:   splitSource(code),
		Outputs:  []any{},
	})
}

// nextID returns a deterministic cell id. Deterministic ids keep generated
// notebooks byte-stable across runs with the same inputs.
func (n *Notebook) nextID() string {
	return fmt.Sprintf("cell-%d", len(n.Cells)+1)
}

// Encode writes the notebook as indented JSON
func (n *Notebook) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", " ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(n); err != nil {
		return nil, fmt.Errorf("encode notebook: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses an ipynb document
func Decode(data []byte) (*Notebook, error) {
	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("decode notebook: %w", err)
	}
	if nb.NBFormat != 4 {
		return nil, fmt.Errorf("unsupported nbformat %d", nb.NBFormat)
	}
	return &nb, nil
}

// MarshalJSON keeps outputs present (as an empty array) on code cells,
// which nbformat requires even for unexecuted cells.
func (c Cell) MarshalJSON() ([]byte, error) {
	type alias Cell
	a := alias(c)
	if a.Type == CellCode {
		if a.Outputs == nil {
			a.Outputs = []any{}
		}
		// Force "execution_count": null for unexecuted code cells.
		return json.Marshal(struct {
			alias
			ExecutionCount *int  `json:"execution_count"`
			Outputs        []any `json:"outputs"`
		}{alias: a, ExecutionCount: a.ExecutionCount, Outputs: a.Outputs})
	}
	return json.Marshal(a)
}

// splitSource splits text into nbformat source lines: each line keeps its
// trailing newline except the final one.
func splitSource(text string) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return []string{}
	}
	lines := strings.SplitAfter(text, "\n")
	return lines
}
