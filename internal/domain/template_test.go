package domain

import (
	"errors"
	"strings"
	"testing"
)

func validTemplate() *Template {
	return &Template{
		Name: "datascience",
		Variables: []Variable{
			{Name: "project_name", Kind: VariableKindString},
			{Name: "project_open_source_license", Kind: VariableKindChoice,
				Choices: []string{"MIT", "BSD-3-Clause", "none"}, Default: "none"},
		},
		Directories: []string{"data/raw", "data/processed"},
		Files: []FileEntry{
			{Path: "README.md", Content: []byte("# {{project_name}}")},
		},
	}
}

func TestTemplateValidate(t *testing.T) {
	if err := validTemplate().Validate(); err != nil {
		t.Fatalf("valid template rejected: %v", err)
	}
}

func TestTemplateValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Template)
		want   string
	}{
		{
			name:   "missing name",
			mutate: func(tpl *Template) { tpl.Name = "" },
			want:   "name is required",
		},
		{
			name: "duplicate variable",
			mutate: func(tpl *Template) {
				tpl.Variables = append(tpl.Variables, Variable{Name: "project_name", Kind: VariableKindString})
			},
			want: "duplicate variable",
		},
		{
			name: "unknown kind",
			mutate: func(tpl *Template) {
				tpl.Variables[0].Kind = "integer"
			},
			want: "unknown kind",
		},
		{
			name: "choice without choices",
			mutate: func(tpl *Template) {
				tpl.Variables = append(tpl.Variables, Variable{Name: "empty", Kind: VariableKindChoice})
			},
			want: "no choices",
		},
		{
			name: "default outside choices",
			mutate: func(tpl *Template) {
				tpl.Variables[1].Default = "GPL"
			},
			want: "not an accepted value",
		},
		{
			name: "empty tree",
			mutate: func(tpl *Template) {
				tpl.Files = nil
				tpl.Directories = nil
			},
			want: "no files or directories",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := validTemplate()
			tt.mutate(tpl)
			err := tpl.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestTemplateValidateEmptyTreeSentinel(t *testing.T) {
	tpl := validTemplate()
	tpl.Files = nil
	tpl.Directories = nil
	if err := tpl.Validate(); !errors.Is(err, ErrEmptyTemplate) {
		t.Errorf("expected ErrEmptyTemplate, got %v", err)
	}
}

func TestVariableAccepts(t *testing.T) {
	tests := []struct {
		v     Variable
		value string
		want  bool
	}{
		{Variable{Kind: VariableKindString}, "anything", true},
		{Variable{Kind: VariableKindChoice, Choices: []string{"a", "b"}}, "a", true},
		{Variable{Kind: VariableKindChoice, Choices: []string{"a", "b"}}, "c", false},
		{Variable{Kind: VariableKindBool}, "true", true},
		{Variable{Kind: VariableKindBool}, "false", true},
		{Variable{Kind: VariableKindBool}, "yes", false},
	}

	for _, tt := range tests {
		if got := tt.v.Accepts(tt.value); got != tt.want {
			t.Errorf("Accepts(%q) kind=%s = %v, want %v", tt.value, tt.v.Kind, got, tt.want)
		}
	}
}

func TestSortedFiles(t *testing.T) {
	tpl := &Template{
		Name: "t",
		Files: []FileEntry{
			{Path: "b.txt"},
			{Path: "a.txt"},
			{Path: "a/b.txt"},
		},
	}

	sorted := tpl.SortedFiles()
	want := []string{"a.txt", "a/b.txt", "b.txt"}
	for i, f := range sorted {
		if f.Path != want[i] {
			t.Errorf("sorted[%d] = %q, want %q", i, f.Path, want[i])
		}
	}
	// Original slice untouched
	if tpl.Files[0].Path != "b.txt" {
		t.Error("SortedFiles mutated the template")
	}
}
