package domain

import "time"

// Project is the registry record of a generated project
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Template  string    `json:"template"`
	License   License   `json:"license"`
	Path      string    `json:"path"`
	FileCount int       `json:"file_count"`
	// Digest is the hex BLAKE2b-256 digest over the sorted manifest entries,
	// identifying the generated content as a whole.
	Digest    string    `json:"digest"`
	CreatedAt time.Time `json:"created_at"`
}

// ManifestEntry records one file emitted during a generation run
type ManifestEntry struct {
	// Path is relative to the project root, forward slashes.
	Path    string `json:"path" yaml:"path"`
	Size    int64  `json:"size" yaml:"size"`
	Digest  string `json:"digest" yaml:"digest"`
	Emitter string `json:"emitter" yaml:"emitter"`
}

// Manifest records everything a generation run produced
type Manifest struct {
	Project     string          `json:"project" yaml:"project"`
	Slug        string          `json:"slug" yaml:"slug"`
	Template    string          `json:"template" yaml:"template"`
	License     License         `json:"license" yaml:"license"`
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
	Directories []string        `json:"directories,omitempty" yaml:"directories,omitempty"`
	Entries     []ManifestEntry `json:"entries" yaml:"entries"`
}

// Entry returns the manifest entry for a relative path
func (m *Manifest) Entry(path string) (ManifestEntry, bool) {
	for _, e := range m.Entries {
		if e.Path == path {
			return e, true
		}
	}
	return ManifestEntry{}, false
}
