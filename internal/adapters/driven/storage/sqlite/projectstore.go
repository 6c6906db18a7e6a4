package sqlite

import (
	"context"
	"fmt"

	"github.com/inkwell-md/inkwell/internal/core/domain"
	"github.com/inkwell-md/inkwell/internal/core/ports/driven"
)

// projectStore implements driven.ProjectStore.
type projectStore struct {
	db *Database
}

var _ driven.ProjectStore = (*projectStore)(nil)

// List returns all projects ordered by name.
func (s *projectStore) List(ctx context.Context) ([]domain.Project, error) {
	conn, err := s.db.CreateConnection()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
		SELECT id, name, created_at FROM projects ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project //nolint:prealloc // size unknown from query
	for rows.Next() {
		var p domain.Project
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		p.CreatedAt = parseStamp(createdAt)
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}

	return projects, nil
}

// Create inserts a new project and returns the generated id.
func (s *projectStore) Create(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("creating project: %w: empty name", domain.ErrInvalidInput)
	}

	conn, err := s.db.CreateConnection()
	if err != nil {
		return "", err
	}
	defer conn.Close()

	id := domain.NewID()
	_, err = conn.ExecContext(ctx, `
		INSERT INTO projects (id, name, created_at) VALUES (?, ?, ?)
	`, id, name, nowStamp())
	if err != nil {
		return "", wrapExecErr("creating project", err)
	}
	return id, nil
}

// Rename changes the project name.
func (s *projectStore) Rename(ctx context.Context, id, name string) error {
	if name == "" {
		return fmt.Errorf("renaming project: %w: empty name", domain.ErrInvalidInput)
	}

	conn, err := s.db.CreateConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, `
		UPDATE projects SET name = ? WHERE id = ?
	`, name, id)
	if err != nil {
		return wrapExecErr("renaming project", err)
	}
	return requireRow(res, "renaming project")
}

// Delete removes the project. Documents still referencing it have their
// reference cleared by the foreign key. Deleting a missing project is a
// no-op.
func (s *projectStore) Delete(ctx context.Context, id string) error {
	conn, err := s.db.CreateConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// UnlinkDocuments clears the project reference on every document under the
// project. Modified-at is deliberately left alone; reorganizing the library
// is not an edit.
func (s *projectStore) UnlinkDocuments(ctx context.Context, id string) error {
	conn, err := s.db.CreateConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `
		UPDATE documents SET project_id = NULL WHERE project_id = ?
	`, id); err != nil {
		return fmt.Errorf("unlinking documents: %w", err)
	}
	return nil
}
