// Package loader reads template packs from any fs.FS: the builtin packs
// compiled into the binary and on-disk packs under the configured templates
// directory.
//
// A pack is a directory with a template.yaml manifest beside a tree/
// directory. File and directory names inside tree/ may carry {{placeholder}}
// tokens; the loader records them untouched, rendering happens at generation
// time.
package loader

import (
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"

	"dsforge/internal/domain"
)

// ManifestFileName is the pack manifest at the root of every template pack
const ManifestFileName = "template.yaml"

// TreeDirName holds the templated file tree of a pack
const TreeDirName = "tree"

// manifestYAML mirrors the template.yaml structure
type manifestYAML struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Version     string         `yaml:"version,omitempty"`
	Variables   []variableYAML `yaml:"variables,omitempty"`
	Directories []string       `yaml:"directories,omitempty"`
}

// variableYAML mirrors one variable declaration
type variableYAML struct {
	Name    string   `yaml:"name"`
	Prompt  string   `yaml:"prompt,omitempty"`
	Kind    string   `yaml:"kind"`
	Default string   `yaml:"default,omitempty"`
	Choices []string `yaml:"choices,omitempty"`
}

// Load reads a template pack from fsys, which must be rooted at the pack
// directory. The returned template is validated.
func Load(fsys fs.FS) (*domain.Template, error) {
	data, err := fs.ReadFile(fsys, ManifestFileName)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ManifestFileName, err)
	}

	var m manifestYAML
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ManifestFileName, err)
	}

	tpl := &domain.Template{
		Name:        m.Name,
		Description: m.Description,
		Version:     m.Version,
		Directories: m.Directories,
	}
	for _, v := range m.Variables {
		kind := domain.VariableKind(v.Kind)
		if v.Kind == "" {
			kind = domain.VariableKindString
		}
		tpl.Variables = append(tpl.Variables, domain.Variable{
			Name:    v.Name,
			Prompt:  v.Prompt,
			Kind:    kind,
			Default: v.Default,
			Choices: v.Choices,
		})
	}

	files, err := loadTree(fsys)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", m.Name, err)
	}
	tpl.Files = files

	if err := tpl.Validate(); err != nil {
		return nil, err
	}
	return tpl, nil
}

// loadTree walks tree/ collecting every regular file with its content.
// Paths are recorded relative to tree/, forward slashes.
func loadTree(fsys fs.FS) ([]domain.FileEntry, error) {
	if _, err := fs.Stat(fsys, TreeDirName); err != nil {
		// A pack may declare skeleton directories only.
		return nil, nil
	}

	var files []domain.FileEntry
	err := fs.WalkDir(fsys, TreeDirName, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}

		rel := path.Clean(p[len(TreeDirName)+1:])
		entry := domain.FileEntry{Path: rel, Content: content}
		if info, err := d.Info(); err == nil {
			entry.Mode = uint32(info.Mode().Perm())
		}
		files = append(files, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", TreeDirName, err)
	}
	return files, nil
}
