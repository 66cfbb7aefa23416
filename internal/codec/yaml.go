package codec

import (
	"fmt"
	"io"

	"dsforge/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export. YAML is the on-disk manifest format,
// so parsing here must accept exactly what the manifest emitter writes.
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse imports a manifest from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Manifest, error) {
	var m domain.Manifest
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &m, nil
}

// Export writes a manifest as YAML
func (c *YAMLCodec) Export(m *domain.Manifest, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(m); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
