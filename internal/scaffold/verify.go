package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"dsforge/internal/codec"
	"dsforge/internal/domain"
	"dsforge/internal/emitter"
)

// VerifyReport is the result of checking a project tree against its manifest
type VerifyReport struct {
	Manifest *domain.Manifest `json:"manifest"`
	// Missing lists manifest entries with no file on disk.
	Missing []string `json:"missing,omitempty"`
	// Modified lists files whose content digest no longer matches.
	Modified []string `json:"modified,omitempty"`
}

// Clean reports whether the tree matches the manifest exactly
func (r *VerifyReport) Clean() bool {
	return len(r.Missing) == 0 && len(r.Modified) == 0
}

// VerifyTree re-digests a generated project against the manifest it was
// generated with. The manifest itself is trusted; a tampered manifest makes
// the check meaningless, so callers who care should compare the project
// digest against the registry record as well.
func VerifyTree(dir string) (*VerifyReport, error) {
	f, err := os.Open(filepath.Join(dir, emitter.ManifestPath))
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	m, err := codec.NewYAMLCodec().Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	report := &VerifyReport{Manifest: m}
	for _, entry := range m.Entries {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(entry.Path)))
		if err != nil {
			if os.IsNotExist(err) {
				report.Missing = append(report.Missing, entry.Path)
				continue
			}
			return nil, fmt.Errorf("read %s: %w", entry.Path, err)
		}
		if emitter.Digest(data) != entry.Digest {
			report.Modified = append(report.Modified, entry.Path)
		}
	}
	sort.Strings(report.Missing)
	sort.Strings(report.Modified)

	return report, nil
}
