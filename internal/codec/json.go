package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"dsforge/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports a manifest from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Manifest, error) {
	var m domain.Manifest
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &m, nil
}

// Export writes a manifest as JSON
func (c *JSONCodec) Export(m *domain.Manifest, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(m); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
