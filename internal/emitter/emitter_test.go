package emitter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"dsforge/internal/domain"
	"dsforge/internal/notebook"
	"dsforge/internal/render"
)

func testBuild(t *testing.T, license domain.License) *Build {
	t.Helper()

	tpl := &domain.Template{
		Name:        "test",
		Directories: []string{"data/raw", "notebooks", "{{project_module_name}}/data"},
		Files: []domain.FileEntry{
			{Path: "README.md", Content: []byte("# {{project_name}}\n")},
			{Path: "{{project_module_name}}/__init__.py", Content: nil},
		},
	}

	rctx, err := domain.NewRenderContext("Churn Analysis")
	require.NoError(t, err)
	rctx.Set(domain.KeyLicense, string(license))
	rctx.Set(domain.KeyAuthorName, "Ada Lovelace")

	return NewBuild(tpl, rctx, render.New())
}

func find(b *Build, path string) (Output, bool) {
	for _, f := range b.Files() {
		if f.Path == path {
			return f, true
		}
	}
	return Output{}, false
}

func TestTreeEmitter(t *testing.T) {
	b := testBuild(t, domain.LicenseNone)
	require.NoError(t, NewTreeEmitter().Emit(context.Background(), b))

	dirs := b.Dirs()
	assert.Contains(t, dirs, "data/raw")
	assert.Contains(t, dirs, "churn_analysis/data", "placeholders in directory names must render")
}

func TestFilesEmitter(t *testing.T) {
	b := testBuild(t, domain.LicenseNone)
	require.NoError(t, NewFilesEmitter().Emit(context.Background(), b))

	readme, ok := find(b, "README.md")
	require.True(t, ok)
	assert.Equal(t, "# Churn Analysis\n", string(readme.Content))
	assert.Equal(t, "files", readme.Emitter)

	_, ok = find(b, "churn_analysis/__init__.py")
	assert.True(t, ok, "placeholders in file paths must render")
}

func TestNotebookEmitter(t *testing.T) {
	b := testBuild(t, domain.LicenseNone)
	require.NoError(t, NewNotebookEmitter().Emit(context.Background(), b))

	out, ok := find(b, NotebookPath)
	require.True(t, ok)

	nb, err := notebook.Decode(out.Content)
	require.NoError(t, err, "generated notebook must be valid")
	assert.NotEmpty(t, nb.Cells)
}

func TestLicenseEmitter(t *testing.T) {
	b := testBuild(t, domain.LicenseMIT)
	require.NoError(t, NewLicenseEmitter().Emit(context.Background(), b))

	lic, ok := find(b, "LICENSE")
	require.True(t, ok)
	assert.Contains(t, string(lic.Content), "MIT License")
	assert.Contains(t, string(lic.Content), "Ada Lovelace")
}

func TestLicenseEmitterNone(t *testing.T) {
	b := testBuild(t, domain.LicenseNone)
	require.NoError(t, NewLicenseEmitter().Emit(context.Background(), b))

	_, ok := find(b, "LICENSE")
	assert.False(t, ok, "license none must not produce a LICENSE file")
}

func TestManifestEmitter(t *testing.T) {
	b := testBuild(t, domain.LicenseMIT)
	ctx := context.Background()
	require.NoError(t, NewTreeEmitter().Emit(ctx, b))
	require.NoError(t, NewFilesEmitter().Emit(ctx, b))
	require.NoError(t, NewLicenseEmitter().Emit(ctx, b))
	require.NoError(t, NewManifestEmitter().Emit(ctx, b))

	require.NotNil(t, b.Manifest)
	assert.Equal(t, "churn-analysis", b.Manifest.Slug)
	assert.Equal(t, domain.LicenseMIT, b.Manifest.License)

	entry, ok := b.Manifest.Entry("README.md")
	require.True(t, ok)
	assert.Len(t, entry.Digest, 64, "BLAKE2b-256 digest is 32 hex-encoded bytes")
	assert.Equal(t, Digest([]byte("# Churn Analysis\n")), entry.Digest)

	// The manifest file itself is emitted but not self-listed.
	out, ok := find(b, ManifestPath)
	require.True(t, ok)
	_, listed := b.Manifest.Entry(ManifestPath)
	assert.False(t, listed)

	var decoded domain.Manifest
	require.NoError(t, yaml.Unmarshal(out.Content, &decoded))
	assert.Equal(t, b.Manifest.Slug, decoded.Slug)
	assert.Len(t, decoded.Entries, len(b.Manifest.Entries))
}

func TestProjectDigestStable(t *testing.T) {
	b := testBuild(t, domain.LicenseNone)
	ctx := context.Background()
	require.NoError(t, NewFilesEmitter().Emit(ctx, b))
	require.NoError(t, NewManifestEmitter().Emit(ctx, b))

	d1 := ProjectDigest(b.Manifest)
	d2 := ProjectDigest(b.Manifest)
	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 64)
	assert.False(t, strings.Contains(d1, " "))
}

func TestRegistryDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(NewTreeEmitter()))
	err := r.Register(NewTreeEmitter())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}
