package driven

import (
	"context"

	"github.com/inkwell-md/inkwell/internal/core/domain"
)

// DocumentStore persists documents. Backed by SQLite.
//
// Every call opens, uses and releases one storage connection; no connection
// is held across calls. Archived documents are excluded from all listings
// and from search; they are reachable only through ListArchived.
type DocumentStore interface {
	// ListAll returns up to limit summaries ordered by modified-at
	// descending. A limit of zero applies domain.DefaultListLimit; a
	// negative limit is rejected with domain.ErrInvalidInput.
	ListAll(ctx context.Context, limit int) ([]domain.DocumentSummary, error)

	// ListByProject returns summaries for one project, same ordering.
	// An empty projectID selects documents assigned to no project.
	ListByProject(ctx context.Context, projectID string) ([]domain.DocumentSummary, error)

	// ListByTag returns summaries for documents carrying the tag.
	ListByTag(ctx context.Context, tagID string) ([]domain.DocumentSummary, error)

	// ListFavorites returns summaries flagged as favorite.
	ListFavorites(ctx context.Context) ([]domain.DocumentSummary, error)

	// ListRecent returns the domain.RecentDocumentLimit most recently
	// modified summaries.
	ListRecent(ctx context.Context) ([]domain.DocumentSummary, error)

	// ListArchived returns summaries flagged as archived.
	ListArchived(ctx context.Context) ([]domain.DocumentSummary, error)

	// Search matches query as a case-insensitive substring of the title or
	// content. Case folding is ASCII-only; non-ASCII letters match
	// case-sensitively.
	Search(ctx context.Context, query string) ([]domain.DocumentSummary, error)

	// GetByID returns the full document including its tag-id set, or
	// domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.Document, error)

	// Create inserts a new document with empty content, zero counts and
	// current timestamps. An empty projectID leaves it unassigned. Returns
	// the generated id.
	Create(ctx context.Context, title, projectID string) (string, error)

	// UpdateContent replaces the content, recomputes the word and character
	// counts and touches modified-at.
	UpdateContent(ctx context.Context, id, content string) error

	// UpdateTitle replaces the title and touches modified-at.
	UpdateTitle(ctx context.Context, id, title string) error

	// ToggleFavorite flips the favorite flag.
	ToggleFavorite(ctx context.Context, id string) error

	// SetArchived sets or clears the archived flag.
	SetArchived(ctx context.Context, id string, archived bool) error

	// Duplicate copies title, content and project assignment into a new
	// document with fresh timestamps and cleared flags. Tag associations
	// are not copied. Returns the new id.
	Duplicate(ctx context.Context, id string) (string, error)

	// MoveToProject reassigns the document; an empty projectID unassigns
	// it. A dangling projectID is rejected by the storage engine with
	// domain.ErrConstraint.
	MoveToProject(ctx context.Context, id, projectID string) error

	// Delete removes the document; tag associations cascade.
	Delete(ctx context.Context, id string) error

	// DeleteByProject removes every document assigned to the project,
	// archived documents included; tag associations cascade. Deleting
	// from an empty or unknown project is a no-op.
	DeleteByProject(ctx context.Context, projectID string) error

	// GetTagIDs returns the set of tag ids attached to the document.
	GetTagIDs(ctx context.Context, id string) ([]string, error)
}
