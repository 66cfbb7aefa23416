// Package assets carries the builtin template packs compiled into the
// binary. Each pack lives under templates/<name>/ with a template.yaml
// manifest beside a tree/ directory of templated files.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var templates embed.FS

// Builtin returns the filesystem of a builtin template pack, rooted at the
// pack directory (template.yaml at the top).
func Builtin(name string) (fs.FS, error) {
	return fs.Sub(templates, "templates/"+name)
}

// BuiltinNames lists the builtin pack names
func BuiltinNames() []string {
	entries, err := templates.ReadDir("templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}
