// Package render substitutes template placeholders in file paths and file
// contents. Placeholders use {{name}} syntax where every context variable is
// exposed as a zero-argument template function, so template packs can write
// {{project_slug}} in directory names as well as file bodies.
//
// Substitution is total: a placeholder that does not resolve to a context
// variable aborts the render with an error naming the offending template.
package render

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"dsforge/internal/domain"
)

// Engine renders paths and contents against a RenderContext
type Engine struct {
	base template.FuncMap
}

// New creates an engine with the standard helper functions
func New() *Engine {
	return &Engine{
		base: template.FuncMap{
			"slug":  domain.Slugify,
			"snake": domain.ModuleName,
			"upper": strings.ToUpper,
			"lower": strings.ToLower,
			"title": titleCase,
		},
	}
}

// funcs builds the function map for one context: helpers plus one
// zero-argument function per context variable.
func (e *Engine) funcs(ctx *domain.RenderContext) template.FuncMap {
	fm := template.FuncMap{}
	for name, fn := range e.base {
		fm[name] = fn
	}
	for name, value := range ctx.Values() {
		v := value
		fm[name] = func() string { return v }
	}
	return fm
}

// RenderString renders a template string. name is used in error messages.
func (e *Engine) RenderString(name, text string, ctx *domain.RenderContext) (string, error) {
	tpl, err := template.New(name).Funcs(e.funcs(ctx)).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, nil); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// RenderPath renders a relative file or directory path and verifies the
// result stays inside the project root.
func (e *Engine) RenderPath(p string, ctx *domain.RenderContext) (string, error) {
	rendered, err := e.RenderString(p, p, ctx)
	if err != nil {
		return "", err
	}

	rendered = path.Clean(strings.TrimSpace(rendered))
	if rendered == "" || rendered == "." {
		return "", fmt.Errorf("path template %q rendered empty", p)
	}
	if path.IsAbs(rendered) || rendered == ".." || strings.HasPrefix(rendered, "../") {
		return "", fmt.Errorf("path template %q: %w", p, domain.ErrPathEscape)
	}
	return rendered, nil
}

// RenderContent renders file content. Content that is not valid UTF-8 or
// carries no placeholders passes through verbatim, so binary assets survive
// untouched.
func (e *Engine) RenderContent(name string, content []byte, ctx *domain.RenderContext) ([]byte, error) {
	if !utf8.Valid(content) || !bytes.Contains(content, []byte("{{")) {
		return content, nil
	}

	out, err := e.RenderString(name, string(content), ctx)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// titleCase upper-cases the first letter of each space-separated word
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
