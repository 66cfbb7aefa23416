package emitter

import (
	"context"
	"fmt"

	"dsforge/internal/domain"
)

// LicenseEmitter writes the LICENSE file for licensed projects
type LicenseEmitter struct{}

// NewLicenseEmitter creates the license emitter
func NewLicenseEmitter() *LicenseEmitter { return &LicenseEmitter{} }

// Name implements Emitter
func (e *LicenseEmitter) Name() string { return "license" }

// Requires implements Emitter
func (e *LicenseEmitter) Requires() []string { return []string{"tree"} }

// Emit writes LICENSE with the year and author substituted. Projects with
// license "none" get no file.
func (e *LicenseEmitter) Emit(ctx context.Context, b *Build) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lic := b.Context.License()
	if !lic.HasFile() {
		return nil
	}

	year, _ := b.Context.Get(domain.KeyYear)
	holder, _ := b.Context.Get(domain.KeyAuthorName)
	if holder == "" {
		holder = b.Context.ProjectName()
	}

	text := lic.Text(year, holder)
	if text == "" {
		return fmt.Errorf("no license text for %q", lic)
	}

	b.AddFile(Output{Path: "LICENSE", Content: []byte(text), Mode: 0o644, Emitter: e.Name()})
	return nil
}
