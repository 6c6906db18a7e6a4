package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/inkwell-md/inkwell/internal/core/ports/driven"
	"github.com/inkwell-md/inkwell/internal/core/ports/driving"
)

// Ensure Library implements the interface.
var _ driving.Library = (*Library)(nil)

// Library carries the policy that spans stores: the two project deletion
// policies and the archive-clears-selection signal.
type Library struct {
	docs     driven.DocumentStore
	projects driven.ProjectStore

	mu         sync.Mutex
	onDeselect func(documentID string)
}

// NewLibrary creates a library service over the given stores.
func NewLibrary(docs driven.DocumentStore, projects driven.ProjectStore) *Library {
	return &Library{
		docs:     docs,
		projects: projects,
	}
}

// SetSelectionListener registers the at-most-one listener notified when
// archiving invalidates a selection. A second call replaces the first.
func (l *Library) SetSelectionListener(fn func(documentID string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onDeselect = fn
}

// DeleteProjectKeepDocuments unlinks the project's documents, then deletes
// the project; the documents survive with their reference cleared.
func (l *Library) DeleteProjectKeepDocuments(ctx context.Context, projectID string) error {
	if err := l.projects.UnlinkDocuments(ctx, projectID); err != nil {
		return fmt.Errorf("unlinking documents: %w", err)
	}
	if err := l.projects.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// DeleteProjectWithDocuments deletes every document under the project, then
// the project itself. The store-level delete covers archived documents too;
// listings filter those out, so this path must not go through a listing.
func (l *Library) DeleteProjectWithDocuments(ctx context.Context, projectID string) error {
	if err := l.docs.DeleteByProject(ctx, projectID); err != nil {
		return fmt.Errorf("deleting project documents: %w", err)
	}
	if err := l.projects.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// ArchiveDocument sets the archived flag and signals the selection listener.
func (l *Library) ArchiveDocument(ctx context.Context, documentID string) error {
	if err := l.docs.SetArchived(ctx, documentID, true); err != nil {
		return fmt.Errorf("archiving document: %w", err)
	}
	l.mu.Lock()
	fn := l.onDeselect
	l.mu.Unlock()
	if fn != nil {
		fn(documentID)
	}
	return nil
}

// UnarchiveDocument clears the archived flag.
func (l *Library) UnarchiveDocument(ctx context.Context, documentID string) error {
	if err := l.docs.SetArchived(ctx, documentID, false); err != nil {
		return fmt.Errorf("unarchiving document: %w", err)
	}
	return nil
}

// DuplicateDocument copies a document and returns the new id.
func (l *Library) DuplicateDocument(ctx context.Context, documentID string) (string, error) {
	id, err := l.docs.Duplicate(ctx, documentID)
	if err != nil {
		return "", fmt.Errorf("duplicating document: %w", err)
	}
	return id, nil
}
