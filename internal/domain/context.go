package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Well-known context keys. Every render context carries these regardless of
// what the template pack declares.
const (
	KeyProjectName = "project_name"
	KeyProjectSlug = "project_slug"
	KeyModuleName  = "project_module_name"
	KeyLicense     = "project_open_source_license"
	KeyAuthorName  = "author_name"
	KeyYear        = "year"
)

// RenderContext holds the resolved variable values for one generation run
type RenderContext struct {
	values map[string]string
}

// NewRenderContext creates a context seeded with the derived defaults for the
// given project name. The slug and module name may be overridden afterwards
// via Set.
func NewRenderContext(projectName string) (*RenderContext, error) {
	name := strings.TrimSpace(projectName)
	if name == "" {
		return nil, fmt.Errorf("render context: project %w", ErrMissingName)
	}

	slug := Slugify(name)
	ctx := &RenderContext{values: map[string]string{
		KeyProjectName: name,
		KeyProjectSlug: slug,
		KeyModuleName:  ModuleName(slug),
		KeyLicense:     string(LicenseNone),
		KeyYear:        fmt.Sprintf("%d", time.Now().Year()),
	}}
	return ctx, nil
}

// Set stores a value, keeping slug and module name consistent when the
// project slug itself is overridden.
func (c *RenderContext) Set(key, value string) {
	c.values[key] = value
	if key == KeyProjectSlug {
		if _, explicit := c.values[KeyModuleName]; !explicit || c.values[KeyModuleName] == "" {
			c.values[KeyModuleName] = ModuleName(value)
		}
	}
}

// Get returns the value for a key
func (c *RenderContext) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// ProjectName returns the human-readable project name
func (c *RenderContext) ProjectName() string { return c.values[KeyProjectName] }

// ProjectSlug returns the filesystem-safe project directory name
func (c *RenderContext) ProjectSlug() string { return c.values[KeyProjectSlug] }

// ModuleName returns the importable module name of the generated project
func (c *RenderContext) ModuleName() string { return c.values[KeyModuleName] }

// License returns the selected license
func (c *RenderContext) License() License { return License(c.values[KeyLicense]) }

// Values returns a copy of the underlying map for use by template engines
func (c *RenderContext) Values() map[string]string {
	out := make(map[string]string, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// ApplyDefaults fills declared variables that the caller did not supply with
// their template defaults, and validates supplied values against declarations.
func (c *RenderContext) ApplyDefaults(t *Template) error {
	for _, v := range t.Variables {
		val, ok := c.values[v.Name]
		if !ok || val == "" {
			if v.Default != "" {
				c.values[v.Name] = v.Default
			}
			continue
		}
		if !v.Accepts(val) {
			return fmt.Errorf("variable %q=%q: %w", v.Name, val, ErrInvalidValue)
		}
	}
	return nil
}

// Slugify converts a project name into a filesystem and URL safe slug:
// lowercase, runs of non-alphanumerics collapsed to single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// ModuleName converts a slug into a valid Python module name: hyphens become
// underscores and a leading digit is prefixed.
func ModuleName(slug string) string {
	mod := strings.ReplaceAll(Slugify(slug), "-", "_")
	if mod == "" {
		return mod
	}
	if r := rune(mod[0]); unicode.IsDigit(r) {
		mod = "_" + mod
	}
	return mod
}
