package service

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"dsforge/internal/domain"
	"dsforge/internal/repository"
)

// ProjectService manages the registry of generated projects
type ProjectService struct {
	repo repository.Repository
	bus  *EventBus
}

// NewProjectService creates a project service
func NewProjectService(repo repository.Repository, bus *EventBus) *ProjectService {
	return &ProjectService{repo: repo, bus: bus}
}

// List returns all recorded projects, newest first
func (s *ProjectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.repo.ListProjects(ctx)
}

// Get returns one project record
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.GetProject(ctx, id)
}

// Manifest returns the stored manifest of a project
func (s *ProjectService) Manifest(ctx context.Context, id string) (*domain.Manifest, error) {
	return s.repo.GetManifest(ctx, id)
}

// Delete removes a project record. The generated files stay on disk.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return err
	}
	if s.bus != nil {
		s.bus.Publish(Event{Type: EventProjectDeleted, Payload: map[string]string{"id": id}})
	}
	return nil
}

// Archive streams a zip of the generated project tree to w. Paths inside the
// archive are prefixed with the project slug.
func (s *ProjectService) Archive(ctx context.Context, id string, w io.Writer) error {
	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return err
	}

	info, err := os.Stat(p.Path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("project files missing at %s: %w", p.Path, domain.ErrNotFound)
	}

	zw := zip.NewWriter(w)
	root := os.DirFS(p.Path)
	err = fs.WalkDir(root, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() {
			return nil
		}

		f, err := root.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		entry, err := zw.Create(filepath.ToSlash(filepath.Join(p.Slug, path)))
		if err != nil {
			return err
		}
		_, err = io.Copy(entry, f)
		return err
	})
	if err != nil {
		zw.Close()
		return fmt.Errorf("archive project %s: %w", id, err)
	}
	return zw.Close()
}
