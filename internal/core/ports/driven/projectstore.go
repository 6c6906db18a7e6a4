package driven

import (
	"context"

	"github.com/inkwell-md/inkwell/internal/core/domain"
)

// ProjectStore persists projects.
type ProjectStore interface {
	// List returns all projects ordered by name.
	List(ctx context.Context) ([]domain.Project, error)

	// Create inserts a new project and returns the generated id.
	Create(ctx context.Context, name string) (string, error)

	// Rename changes the project name.
	Rename(ctx context.Context, id, name string) error

	// Delete removes the project. Documents still referencing it have the
	// reference cleared by the storage engine.
	Delete(ctx context.Context, id string) error

	// UnlinkDocuments clears the project reference on every document under
	// the project without touching their modified-at timestamps.
	UnlinkDocuments(ctx context.Context, id string) error
}
