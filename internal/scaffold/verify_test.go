package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateForVerify(t *testing.T) string {
	t.Helper()
	out := t.TempDir()
	e := newTestEngine(t)
	res := generate(t, e, Request{
		Template:    "datascience",
		ProjectName: "Sensor Drift",
		License:     "MIT",
		Author:      "Ada Lovelace",
		OutputDir:   out,
	})
	return res.Path
}

func TestVerifyTreeClean(t *testing.T) {
	root := generateForVerify(t)

	report, err := VerifyTree(root)
	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Equal(t, "Sensor Drift", report.Manifest.Project)
	assert.NotEmpty(t, report.Manifest.Entries)
}

func TestVerifyTreeModified(t *testing.T) {
	root := generateForVerify(t)

	readme := filepath.Join(root, "README.md")
	require.NoError(t, os.WriteFile(readme, []byte("tampered\n"), 0o644))

	report, err := VerifyTree(root)
	require.NoError(t, err)
	assert.False(t, report.Clean())
	assert.Equal(t, []string{"README.md"}, report.Modified)
	assert.Empty(t, report.Missing)
}

func TestVerifyTreeMissing(t *testing.T) {
	root := generateForVerify(t)

	require.NoError(t, os.Remove(filepath.Join(root, "LICENSE")))

	report, err := VerifyTree(root)
	require.NoError(t, err)
	assert.False(t, report.Clean())
	assert.Equal(t, []string{"LICENSE"}, report.Missing)
	assert.Empty(t, report.Modified)
}

func TestVerifyTreeNoManifest(t *testing.T) {
	_, err := VerifyTree(t.TempDir())
	require.Error(t, err)
}
