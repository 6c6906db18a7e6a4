package driven

import (
	"context"

	"github.com/inkwell-md/inkwell/internal/core/domain"
)

// TagStore persists tags and the document-tag associations.
type TagStore interface {
	// List returns all tags ordered by name.
	List(ctx context.Context) ([]domain.Tag, error)

	// Create inserts a new tag and returns the generated id. An empty
	// color uses domain.DefaultTagColor.
	Create(ctx context.Context, name, color string) (string, error)

	// Rename changes the tag name.
	Rename(ctx context.Context, id, name string) error

	// UpdateColor changes the tag color.
	UpdateColor(ctx context.Context, id, color string) error

	// Delete removes the tag; document associations cascade.
	Delete(ctx context.Context, id string) error

	// AddTagToDocument associates a tag with a document. Adding an existing
	// association is a no-op.
	AddTagToDocument(ctx context.Context, documentID, tagID string) error

	// RemoveTagFromDocument removes an association. Removing a non-existent
	// one is a no-op.
	RemoveTagFromDocument(ctx context.Context, documentID, tagID string) error
}
