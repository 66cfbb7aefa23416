// Package planner orders emitters by their declared dependencies. The
// dependency relation forms a directed acyclic graph; cycles and references
// to unregistered emitters are hard errors caught before anything touches
// disk.
package planner

import (
	"errors"
	"fmt"

	"github.com/dominikbraun/graph"

	"dsforge/internal/emitter"
)

// ErrDependencyCycle indicates emitters that require each other
var ErrDependencyCycle = errors.New("emitter dependency cycle")

// Plan computes the execution order for all emitters in the registry.
// The order is deterministic: dependencies first, ties broken by name.
func Plan(reg *emitter.Registry) ([]emitter.Emitter, error) {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())

	emitters := reg.All()
	for _, e := range emitters {
		if err := g.AddVertex(e.Name()); err != nil {
			return nil, fmt.Errorf("plan: add %s: %w", e.Name(), err)
		}
	}

	for _, e := range emitters {
		for _, dep := range e.Requires() {
			if _, ok := reg.Get(dep); !ok {
				return nil, fmt.Errorf("plan: emitter %s requires unknown emitter %s", e.Name(), dep)
			}
			err := g.AddEdge(dep, e.Name())
			if errors.Is(err, graph.ErrEdgeCreatesCycle) {
				return nil, fmt.Errorf("plan: %s -> %s: %w", dep, e.Name(), ErrDependencyCycle)
			}
			if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return nil, fmt.Errorf("plan: edge %s -> %s: %w", dep, e.Name(), err)
			}
		}
	}

	order, err := graph.StableTopologicalSort(g, func(a, b string) bool { return a < b })
	if err != nil {
		return nil, fmt.Errorf("plan: sort: %w", err)
	}

	out := make([]emitter.Emitter, 0, len(order))
	for _, name := range order {
		e, _ := reg.Get(name)
		out = append(out, e)
	}
	return out, nil
}
