// Package codec converts project manifests to and from interchange formats.
// Manifests are written into generated projects and served over the API, so
// both directions matter: exporting for humans and tooling, importing to
// verify a project tree against the manifest it was generated with.
package codec

import (
	"fmt"
	"io"

	"dsforge/internal/domain"
)

// Importer parses manifest data from an interchange format
type Importer interface {
	Parse(r io.Reader) (*domain.Manifest, error)
	Format() string
}

// Exporter writes manifest data to an interchange format
type Exporter interface {
	Export(m *domain.Manifest, w io.Writer) error
	Format() string
}

// Codec handles both directions for one format
type Codec interface {
	Importer
	Exporter
}

// ByFormat returns the codec for a format identifier
func ByFormat(format string) (Codec, error) {
	switch format {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	}
	return nil, fmt.Errorf("codec: unsupported format %q", format)
}

// Formats lists the supported format identifiers
func Formats() []string {
	return []string{"json", "yaml"}
}
