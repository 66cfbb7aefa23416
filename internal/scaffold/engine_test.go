package scaffold

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"dsforge/internal/domain"
	"dsforge/internal/emitter"
	"dsforge/internal/loader"
	"dsforge/internal/notebook"
	"dsforge/internal/repository/sqlite"
	"dsforge/internal/service"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	reg, err := loader.NewRegistry("")
	require.NoError(t, err)
	return New(reg, opts...)
}

func generate(t *testing.T, e *Engine, req Request) *Result {
	t.Helper()
	res, err := e.Generate(context.Background(), req)
	require.NoError(t, err)
	return res
}

func TestGenerateDataScienceProject(t *testing.T) {
	out := t.TempDir()
	e := newTestEngine(t)

	res := generate(t, e, Request{
		Template:    "datascience",
		ProjectName: "Churn Analysis",
		License:     "MIT",
		Author:      "Ada Lovelace",
		OutputDir:   out,
	})

	root := filepath.Join(out, "churn-analysis")
	assert.Equal(t, root, res.Path)

	// Documented skeleton.
	for _, dir := range []string{
		"data/raw", "data/interim", "data/processed", "data/external",
		"models", "notebooks", "references", "reports/figures",
		"churn_analysis/data", "churn_analysis/features", "churn_analysis/models",
		"churn_analysis/utils", "churn_analysis/visualization",
	} {
		info, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err, "missing directory %s", dir)
		assert.True(t, info.IsDir())
	}

	// Empty skeleton dirs keep a marker; populated ones do not.
	assert.FileExists(t, filepath.Join(root, "data/raw/.gitkeep"))
	assert.NoFileExists(t, filepath.Join(root, "notebooks/.gitkeep"))

	// Rendered README.
	readme, err := os.ReadFile(filepath.Join(root, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "# Churn Analysis")
	assert.Contains(t, string(readme), "pip install -r requirements.txt")
	assert.Contains(t, string(readme), "python main.py")
	assert.Contains(t, string(readme), "MIT license")
	assert.NotContains(t, string(readme), "{{", "all placeholders must be substituted")

	// License file with substituted holder.
	lic, err := os.ReadFile(filepath.Join(root, "LICENSE"))
	require.NoError(t, err)
	assert.Contains(t, string(lic), "Ada Lovelace")

	// Module payload under the rendered module name.
	assert.FileExists(t, filepath.Join(root, "churn_analysis/__init__.py"))
	makeDataset, err := os.ReadFile(filepath.Join(root, "churn_analysis/data/make_dataset.py"))
	require.NoError(t, err)
	assert.Contains(t, string(makeDataset), "def preprocessing(")

	// Valid notebook referencing the module.
	nbData, err := os.ReadFile(filepath.Join(root, "notebooks/analysis.ipynb"))
	require.NoError(t, err)
	nb, err := notebook.Decode(nbData)
	require.NoError(t, err)
	assert.NotEmpty(t, nb.Cells)

	// Manifest lists every file with a digest.
	manifestData, err := os.ReadFile(filepath.Join(root, emitter.ManifestPath))
	require.NoError(t, err)
	var m domain.Manifest
	require.NoError(t, yaml.Unmarshal(manifestData, &m))
	assert.Equal(t, "churn-analysis", m.Slug)
	entry, ok := m.Entry("notebooks/analysis.ipynb")
	require.True(t, ok)
	assert.Equal(t, emitter.Digest(nbData), entry.Digest, "manifest digest must match file on disk")

	assert.Equal(t, len(m.Entries), res.Project.FileCount)
	assert.NotEmpty(t, res.Project.Digest)
}

func TestGenerateNoLicense(t *testing.T) {
	out := t.TempDir()
	e := newTestEngine(t)

	generate(t, e, Request{Template: "datascience", ProjectName: "demo", OutputDir: out})

	root := filepath.Join(out, "demo")
	assert.NoFileExists(t, filepath.Join(root, "LICENSE"))

	readme, err := os.ReadFile(filepath.Join(root, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "not licensed")
}

func TestGenerateDryRun(t *testing.T) {
	out := t.TempDir()
	e := newTestEngine(t)

	res := generate(t, e, Request{
		Template:    "datascience",
		ProjectName: "demo",
		OutputDir:   out,
		DryRun:      true,
	})

	assert.Empty(t, res.Path)
	assert.NotEmpty(t, res.Manifest.Entries)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries, "dry run must not touch disk")
}

func TestGenerateOutputCollision(t *testing.T) {
	out := t.TempDir()
	e := newTestEngine(t)

	generate(t, e, Request{Template: "datascience", ProjectName: "demo", OutputDir: out})

	_, err := e.Generate(context.Background(), Request{
		Template: "datascience", ProjectName: "demo", OutputDir: out,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOutputExists), "got %v", err)

	// Force overwrites in place.
	generate(t, e, Request{Template: "datascience", ProjectName: "demo", OutputDir: out, Force: true})
}

func TestGenerateUnknownTemplate(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Generate(context.Background(), Request{Template: "nope", ProjectName: "x"})
	assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
}

func TestGenerateUnknownVariable(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Generate(context.Background(), Request{
		Template:    "datascience",
		ProjectName: "demo",
		DryRun:      true,
		Variables:   map[string]string{"no_such_var": "x"},
	})
	assert.True(t, errors.Is(err, domain.ErrUnknownVariable), "got %v", err)
}

func TestGenerateEmptyProjectName(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Generate(context.Background(), Request{Template: "datascience", ProjectName: "  "})
	assert.True(t, errors.Is(err, domain.ErrMissingName), "got %v", err)
}

func TestGenerateRecordsProject(t *testing.T) {
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	out := t.TempDir()
	e := newTestEngine(t, WithRepository(repo))

	res := generate(t, e, Request{Template: "datascience", ProjectName: "Tracked", OutputDir: out})

	stored, err := repo.GetProject(context.Background(), res.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, "tracked", stored.Slug)
	assert.Equal(t, res.Project.Digest, stored.Digest)

	m, err := repo.GetManifest(context.Background(), res.Project.ID)
	require.NoError(t, err)
	assert.Len(t, m.Entries, res.Project.FileCount)
}

func TestGeneratePublishesEvents(t *testing.T) {
	bus := service.NewEventBus()
	events := make(chan service.Event, 256)
	bus.Subscribe(events)

	out := t.TempDir()
	e := newTestEngine(t, WithEventBus(bus))

	generate(t, e, Request{Template: "datascience", ProjectName: "evented", OutputDir: out})

	var types []service.EventType
	for len(events) > 0 {
		types = append(types, (<-events).Type)
	}
	assert.Contains(t, types, service.EventRunStarted)
	assert.Contains(t, types, service.EventRunFileWritten)
	assert.Contains(t, types, service.EventRunFinished)
}

func TestGenerateModuleNameOverride(t *testing.T) {
	out := t.TempDir()
	e := newTestEngine(t)

	generate(t, e, Request{
		Template:    "datascience",
		ProjectName: "Some Long Project Name",
		Slug:        "slp",
		ModuleName:  "analysis_lib",
		OutputDir:   out,
	})

	root := filepath.Join(out, "slp")
	assert.FileExists(t, filepath.Join(root, "analysis_lib/__init__.py"))
}
