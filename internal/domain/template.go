package domain

import (
	"fmt"
	"sort"
)

// VariableKind represents the type of a template variable
type VariableKind string

const (
	VariableKindString VariableKind = "string"
	VariableKindChoice VariableKind = "choice"
	VariableKindBool   VariableKind = "bool"
)

// Valid reports whether the kind is one of the known kinds
func (k VariableKind) Valid() bool {
	switch k {
	case VariableKindString, VariableKindChoice, VariableKindBool:
		return true
	}
	return false
}

// Variable declares a template variable that callers may supply
type Variable struct {
	Name    string       `json:"name" yaml:"name"`
	Prompt  string       `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Kind    VariableKind `json:"kind" yaml:"kind"`
	Default string       `json:"default,omitempty" yaml:"default,omitempty"`
	Choices []string     `json:"choices,omitempty" yaml:"choices,omitempty"`
}

// Accepts reports whether the given value is acceptable for this variable
func (v Variable) Accepts(value string) bool {
	switch v.Kind {
	case VariableKindChoice:
		for _, c := range v.Choices {
			if c == value {
				return true
			}
		}
		return false
	case VariableKindBool:
		return value == "true" || value == "false"
	default:
		return true
	}
}

// FileEntry is a single templated file within a template pack.
// Path may contain placeholders; Content is the raw template bytes.
type FileEntry struct {
	Path    string `json:"path"`
	Content []byte `json:"-"`
	Mode    uint32 `json:"mode,omitempty"`
}

// Template represents a loaded template pack
type Template struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Version     string      `json:"version,omitempty"`
	Variables   []Variable  `json:"variables,omitempty"`
	// Directories are skeleton directories created relative to the project
	// root; empty ones receive a .gitkeep marker. Paths may contain
	// placeholders.
	Directories []string    `json:"directories,omitempty"`
	Files       []FileEntry `json:"files,omitempty"`
}

// Variable returns the declared variable with the given name
func (t *Template) Variable(name string) (Variable, bool) {
	for _, v := range t.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// Validate checks the template for structural problems
func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template: %w", ErrMissingName)
	}

	seen := make(map[string]struct{}, len(t.Variables))
	for _, v := range t.Variables {
		if v.Name == "" {
			return fmt.Errorf("template %q: variable with empty name", t.Name)
		}
		if _, dup := seen[v.Name]; dup {
			return fmt.Errorf("template %q: duplicate variable %q", t.Name, v.Name)
		}
		seen[v.Name] = struct{}{}

		if !v.Kind.Valid() {
			return fmt.Errorf("template %q: variable %q has unknown kind %q", t.Name, v.Name, v.Kind)
		}
		if v.Kind == VariableKindChoice && len(v.Choices) == 0 {
			return fmt.Errorf("template %q: choice variable %q has no choices", t.Name, v.Name)
		}
		if v.Default != "" && !v.Accepts(v.Default) {
			return fmt.Errorf("template %q: variable %q default %q is not an accepted value", t.Name, v.Name, v.Default)
		}
	}

	if len(t.Files) == 0 && len(t.Directories) == 0 {
		return fmt.Errorf("template %q: %w", t.Name, ErrEmptyTemplate)
	}
	return nil
}

// SortedFiles returns the file entries ordered by path for deterministic output
func (t *Template) SortedFiles() []FileEntry {
	files := make([]FileEntry, len(t.Files))
	copy(files, t.Files)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}
