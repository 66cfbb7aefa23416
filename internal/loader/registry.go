package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"dsforge/internal/domain"
	"dsforge/internal/log"

	"dsforge/internal/assets"
)

// Registry holds the loaded template packs: builtins plus packs discovered
// under an optional on-disk templates directory. Reload is safe to call
// concurrently with lookups; the watcher triggers it on directory changes.
type Registry struct {
	mu        sync.RWMutex
	dir       string
	templates map[string]*domain.Template
}

// NewRegistry creates a registry. dir may be empty, in which case only the
// builtin packs are available.
func NewRegistry(dir string) (*Registry, error) {
	r := &Registry{dir: dir}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-reads all packs. On-disk packs shadow builtins of the same name.
func (r *Registry) Reload() error {
	logger := log.WithComponent("loader")
	templates := make(map[string]*domain.Template)

	for _, name := range assets.BuiltinNames() {
		fsys, err := assets.Builtin(name)
		if err != nil {
			return fmt.Errorf("builtin pack %q: %w", name, err)
		}
		tpl, err := Load(fsys)
		if err != nil {
			return fmt.Errorf("builtin pack %q: %w", name, err)
		}
		templates[tpl.Name] = tpl
	}

	if r.dir != "" {
		entries, err := os.ReadDir(r.dir)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("read templates dir %s: %w", r.dir, err)
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			packDir := filepath.Join(r.dir, e.Name())
			tpl, err := Load(os.DirFS(packDir))
			if err != nil {
				// A broken pack must not take down the registry.
				logger.Warn().Err(err).Str("pack", e.Name()).Msg("skipping invalid template pack")
				continue
			}
			templates[tpl.Name] = tpl
		}
	}

	r.mu.Lock()
	r.templates = templates
	r.mu.Unlock()

	logger.Debug().Int("templates", len(templates)).Msg("template registry loaded")
	return nil
}

// Get returns a template by name
func (r *Registry) Get(name string) (*domain.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tpl, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q: %w", name, domain.ErrNotFound)
	}
	return tpl, nil
}

// List returns all templates sorted by name
func (r *Registry) List() []*domain.Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Template, 0, len(r.templates))
	for _, tpl := range r.templates {
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
