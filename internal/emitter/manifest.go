package emitter

import (
	"context"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"dsforge/internal/domain"
)

// ManifestPath is the manifest file written into every generated project
const ManifestPath = ".dsforge.yaml"

// ManifestEmitter records every emitted file with its BLAKE2b-256 digest
// and writes the run manifest into the project root.
type ManifestEmitter struct{}

// NewManifestEmitter creates the manifest emitter
func NewManifestEmitter() *ManifestEmitter { return &ManifestEmitter{} }

// Name implements Emitter
func (e *ManifestEmitter) Name() string { return "manifest" }

// Requires implements Emitter; the manifest covers everything, so it runs last
func (e *ManifestEmitter) Requires() []string {
	return []string{"tree", "files", "notebook", "license", "gitkeep"}
}

// Emit builds the manifest over all files recorded so far and appends the
// manifest file itself to the build.
func (e *ManifestEmitter) Emit(ctx context.Context, b *Build) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := &domain.Manifest{
		Project:     b.Context.ProjectName(),
		Slug:        b.Context.ProjectSlug(),
		Template:    b.Template.Name,
		License:     b.Context.License(),
		GeneratedAt: b.Now,
		Directories: b.Dirs(),
	}

	for _, f := range b.Files() {
		m.Entries = append(m.Entries, domain.ManifestEntry{
			Path:    f.Path,
			Size:    int64(len(f.Content)),
			Digest:  Digest(f.Content),
			Emitter: f.Emitter,
		})
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	b.Manifest = m
	b.AddFile(Output{Path: ManifestPath, Content: data, Mode: 0o644, Emitter: e.Name()})
	return nil
}

// Digest returns the hex BLAKE2b-256 digest of content
func Digest(content []byte) string {
	sum := blake2b.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ProjectDigest folds the per-entry digests into a single digest identifying
// the generated content as a whole. Entries must already be path-sorted.
func ProjectDigest(m *domain.Manifest) string {
	h, _ := blake2b.New256(nil)
	for _, e := range m.Entries {
		fmt.Fprintf(h, "%s\x00%s\n", e.Path, e.Digest)
	}
	return hex.EncodeToString(h.Sum(nil))
}
