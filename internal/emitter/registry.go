package emitter

import (
	"fmt"
	"sort"
	"sync"

	"dsforge/internal/log"
)

// Registry manages the registered emitters
type Registry struct {
	mu       sync.RWMutex
	emitters map[string]Emitter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{emitters: make(map[string]Emitter)}
}

// Register adds an emitter to the registry
func (r *Registry) Register(e Emitter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := e.Name()
	if _, exists := r.emitters[name]; exists {
		return fmt.Errorf("emitter %s already registered", name)
	}
	r.emitters[name] = e

	logger := log.WithComponent("emitter")
	logger.Debug().
		Str("emitter", name).
		Strs("requires", e.Requires()).
		Msg("registered emitter")
	return nil
}

// Get returns a registered emitter by name
func (r *Registry) Get(name string) (Emitter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.emitters[name]
	return e, ok
}

// All returns the registered emitters sorted by name
func (r *Registry) All() []Emitter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Emitter, 0, len(r.emitters))
	for _, e := range r.emitters {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Default returns a registry with the standard emitters for data-science
// project generation.
func Default() *Registry {
	r := NewRegistry()
	for _, e := range []Emitter{
		NewTreeEmitter(),
		NewFilesEmitter(),
		NewNotebookEmitter(),
		NewLicenseEmitter(),
		NewGitkeepEmitter(),
		NewManifestEmitter(),
	} {
		// Names are fixed at compile time, duplicates cannot happen here.
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
	return r
}
