package repository

import (
	"context"

	"dsforge/internal/domain"
)

// Repository defines the interface for the generated-project registry
type Repository interface {
	// CreateProject records a generated project with its run manifest
	CreateProject(ctx context.Context, p *domain.Project, m *domain.Manifest) error

	// GetProject returns a project record by id
	GetProject(ctx context.Context, id string) (*domain.Project, error)

	// GetManifest returns the stored manifest of a project
	GetManifest(ctx context.Context, id string) (*domain.Manifest, error)

	// ListProjects returns all records, newest first
	ListProjects(ctx context.Context) ([]*domain.Project, error)

	// DeleteProject removes a record; the generated files stay on disk
	DeleteProject(ctx context.Context, id string) error

	// Close releases resources
	Close() error
}
