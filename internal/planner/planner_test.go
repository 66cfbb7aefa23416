package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsforge/internal/emitter"
)

// fakeEmitter is a no-op emitter with configurable dependencies
type fakeEmitter struct {
	name     string
	requires []string
}

func (f *fakeEmitter) Name() string                                { return f.name }
func (f *fakeEmitter) Requires() []string                          { return f.requires }
func (f *fakeEmitter) Emit(context.Context, *emitter.Build) error { return nil }

func registryOf(t *testing.T, emitters ...*fakeEmitter) *emitter.Registry {
	t.Helper()
	reg := emitter.NewRegistry()
	for _, e := range emitters {
		require.NoError(t, reg.Register(e))
	}
	return reg
}

func names(order []emitter.Emitter) []string {
	out := make([]string, len(order))
	for i, e := range order {
		out[i] = e.Name()
	}
	return out
}

func TestPlanOrdersDependenciesFirst(t *testing.T) {
	reg := registryOf(t,
		&fakeEmitter{name: "manifest", requires: []string{"files", "notebook"}},
		&fakeEmitter{name: "files", requires: []string{"tree"}},
		&fakeEmitter{name: "notebook", requires: []string{"tree"}},
		&fakeEmitter{name: "tree"},
	)

	order, err := Plan(reg)
	require.NoError(t, err)

	got := names(order)
	assert.Equal(t, []string{"tree", "files", "notebook", "manifest"}, got)
}

func TestPlanIsDeterministic(t *testing.T) {
	reg := registryOf(t,
		&fakeEmitter{name: "b"},
		&fakeEmitter{name: "a"},
		&fakeEmitter{name: "c"},
	)

	first, err := Plan(reg)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Plan(reg)
		require.NoError(t, err)
		assert.Equal(t, names(first), names(again))
	}
	assert.Equal(t, []string{"a", "b", "c"}, names(first))
}

func TestPlanDefaultRegistry(t *testing.T) {
	order, err := Plan(emitter.Default())
	require.NoError(t, err)

	got := names(order)
	require.Len(t, got, 6)
	assert.Equal(t, "tree", got[0])
	assert.Equal(t, "manifest", got[len(got)-1])
}

func TestPlanRejectsCycle(t *testing.T) {
	reg := registryOf(t,
		&fakeEmitter{name: "a", requires: []string{"b"}},
		&fakeEmitter{name: "b", requires: []string{"a"}},
	)

	_, err := Plan(reg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDependencyCycle), "got %v", err)
}

func TestPlanRejectsUnknownDependency(t *testing.T) {
	reg := registryOf(t, &fakeEmitter{name: "a", requires: []string{"ghost"}})

	_, err := Plan(reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown emitter")
}
