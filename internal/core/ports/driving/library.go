package driving

import "context"

// Library exposes the operations that span stores or carry policy beyond
// plain CRUD: project deletion policies, archive signalling, duplication.
type Library interface {
	// DeleteProjectKeepDocuments unlinks the project's documents and then
	// deletes the project; documents survive with the reference cleared.
	DeleteProjectKeepDocuments(ctx context.Context, projectID string) error

	// DeleteProjectWithDocuments deletes the project's documents and then
	// the project itself.
	DeleteProjectWithDocuments(ctx context.Context, projectID string) error

	// ArchiveDocument sets the archived flag and signals the selection
	// listener so callers can clear a "currently selected" state. The
	// cleared selection is signalled, never stored.
	ArchiveDocument(ctx context.Context, documentID string) error

	// UnarchiveDocument clears the archived flag.
	UnarchiveDocument(ctx context.Context, documentID string) error

	// DuplicateDocument copies a document and returns the new id.
	DuplicateDocument(ctx context.Context, documentID string) (string, error)

	// SetSelectionListener registers the at-most-one listener notified when
	// archiving invalidates a selection. A second call replaces the first.
	SetSelectionListener(fn func(documentID string))
}
