// Package sqlite implements the project registry on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"dsforge/internal/domain"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository. Use ":memory:" for tests.
func New(dbPath string) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn = "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A bare :memory: DSN gives every pooled connection its own empty
	// database, so pin the pool to a single connection.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL,
		template TEXT NOT NULL,
		license TEXT NOT NULL,
		path TEXT NOT NULL,
		file_count INTEGER NOT NULL DEFAULT 0,
		digest TEXT NOT NULL DEFAULT '',
		manifest JSON NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_projects_slug ON projects(slug);
	CREATE INDEX IF NOT EXISTS idx_projects_created ON projects(created_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// CreateProject records a generated project with its manifest
func (r *Repository) CreateProject(ctx context.Context, p *domain.Project, m *domain.Manifest) error {
	manifest, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, slug, template, license, path, file_count, digest, manifest, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Slug, p.Template, string(p.License), p.Path,
		p.FileCount, p.Digest, manifest, p.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

// GetProject retrieves a single project record by ID
func (r *Repository) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, slug, template, license, path, file_count, digest, created_at
		FROM projects WHERE id = ?
	`, id)

	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query project: %w", err)
	}
	return p, nil
}

// GetManifest retrieves the stored manifest of a project
func (r *Repository) GetManifest(ctx context.Context, id string) (*domain.Manifest, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT manifest FROM projects WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query manifest: %w", err)
	}

	var m domain.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}
	return &m, nil
}

// ListProjects returns all project records, newest first
func (r *Repository) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, slug, template, license, path, file_count, digest, created_at
		FROM projects ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}
	return projects, nil
}

// DeleteProject removes a project record
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Close closes the database
func (r *Repository) Close() error {
	return r.db.Close()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (*domain.Project, error) {
	var (
		p       domain.Project
		license string
		created string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Template, &license,
		&p.Path, &p.FileCount, &p.Digest, &created); err != nil {
		return nil, err
	}
	p.License = domain.License(license)
	if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
		p.CreatedAt = ts
	}
	return &p, nil
}
