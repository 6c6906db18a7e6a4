package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/inkwell-md/inkwell/internal/core/domain"
	"github.com/inkwell-md/inkwell/internal/core/ports/driven"
)

// summaryColumns is the projection shared by every listing query.
const summaryColumns = "id, title, word_count, modified_at"

// documentStore implements driven.DocumentStore.
type documentStore struct {
	db *Database
}

var _ driven.DocumentStore = (*documentStore)(nil)

// ListAll returns up to limit summaries, most recently modified first.
func (s *documentStore) ListAll(ctx context.Context, limit int) ([]domain.DocumentSummary, error) {
	if limit < 0 {
		return nil, fmt.Errorf("listing documents: %w: negative limit", domain.ErrInvalidInput)
	}
	if limit == 0 {
		limit = domain.DefaultListLimit
	}
	return s.listSummaries(ctx, `
		SELECT `+summaryColumns+` FROM documents
		WHERE is_archived = 0
		ORDER BY modified_at DESC LIMIT ?
	`, limit)
}

// ListByProject returns summaries for one project; an empty projectID
// selects the unassigned documents.
func (s *documentStore) ListByProject(ctx context.Context, projectID string) ([]domain.DocumentSummary, error) {
	if projectID == "" {
		return s.listSummaries(ctx, `
			SELECT `+summaryColumns+` FROM documents
			WHERE project_id IS NULL AND is_archived = 0
			ORDER BY modified_at DESC
		`)
	}
	return s.listSummaries(ctx, `
		SELECT `+summaryColumns+` FROM documents
		WHERE project_id = ? AND is_archived = 0
		ORDER BY modified_at DESC
	`, projectID)
}

// ListByTag returns summaries for documents carrying the tag.
func (s *documentStore) ListByTag(ctx context.Context, tagID string) ([]domain.DocumentSummary, error) {
	return s.listSummaries(ctx, `
		SELECT d.id, d.title, d.word_count, d.modified_at
		FROM documents d
		JOIN document_tags dt ON dt.document_id = d.id
		WHERE dt.tag_id = ? AND d.is_archived = 0
		ORDER BY d.modified_at DESC
	`, tagID)
}

// ListFavorites returns summaries flagged as favorite.
func (s *documentStore) ListFavorites(ctx context.Context) ([]domain.DocumentSummary, error) {
	return s.listSummaries(ctx, `
		SELECT `+summaryColumns+` FROM documents
		WHERE is_favorite = 1 AND is_archived = 0
		ORDER BY modified_at DESC
	`)
}

// ListRecent returns the most recently modified summaries.
func (s *documentStore) ListRecent(ctx context.Context) ([]domain.DocumentSummary, error) {
	return s.listSummaries(ctx, `
		SELECT `+summaryColumns+` FROM documents
		WHERE is_archived = 0
		ORDER BY modified_at DESC LIMIT ?
	`, domain.RecentDocumentLimit)
}

// ListArchived returns summaries flagged as archived.
func (s *documentStore) ListArchived(ctx context.Context) ([]domain.DocumentSummary, error) {
	return s.listSummaries(ctx, `
		SELECT `+summaryColumns+` FROM documents
		WHERE is_archived = 1
		ORDER BY modified_at DESC
	`)
}

// Search matches query as a case-insensitive substring of title or content.
// instr avoids treating % and _ in the query as LIKE wildcards. SQLite's
// lower() folds ASCII only, so non-ASCII letters match case-sensitively.
func (s *documentStore) Search(ctx context.Context, query string) ([]domain.DocumentSummary, error) {
	if query == "" {
		return nil, nil
	}
	return s.listSummaries(ctx, `
		SELECT `+summaryColumns+` FROM documents
		WHERE is_archived = 0
			AND (instr(lower(title), lower(?)) > 0 OR instr(lower(content), lower(?)) > 0)
		ORDER BY modified_at DESC
	`, query, query)
}

// GetByID returns the full document including its tag-id set.
func (s *documentStore) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	conn, err := s.db.CreateConnection()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	row := conn.QueryRowContext(ctx, `
		SELECT id, title, content, project_id, word_count, character_count,
			is_favorite, is_archived, created_at, modified_at
		FROM documents WHERE id = ?
	`, id)

	var doc domain.Document
	var projectID sql.NullString
	var createdAt, modifiedAt string
	if err := row.Scan(&doc.ID, &doc.Title, &doc.Content, &projectID,
		&doc.WordCount, &doc.CharacterCount, &doc.Favorite, &doc.Archived,
		&createdAt, &modifiedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.ProjectID = projectID.String
	doc.CreatedAt = parseStamp(createdAt)
	doc.ModifiedAt = parseStamp(modifiedAt)

	doc.TagIDs, err = scanTagIDs(ctx, conn, id)
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// Create inserts a new document with empty content and zero counts. An empty
// title falls back to the default; an empty projectID leaves it unassigned.
func (s *documentStore) Create(ctx context.Context, title, projectID string) (string, error) {
	if title == "" {
		title = domain.DefaultDocumentTitle
	}

	conn, err := s.db.CreateConnection()
	if err != nil {
		return "", err
	}
	defer conn.Close()

	id := domain.NewID()
	now := nowStamp()
	_, err = conn.ExecContext(ctx, `
		INSERT INTO documents
			(id, title, content, project_id, word_count, character_count,
			 is_favorite, is_archived, created_at, modified_at)
		VALUES (?, ?, '', ?, 0, 0, 0, 0, ?, ?)
	`, id, title, nullString(projectID), now, now)
	if err != nil {
		return "", wrapExecErr("creating document", err)
	}
	return id, nil
}

// UpdateContent replaces the content, recomputes both counts and touches
// modified-at.
func (s *documentStore) UpdateContent(ctx context.Context, id, content string) error {
	conn, err := s.db.CreateConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, `
		UPDATE documents
		SET content = ?, word_count = ?, character_count = ?, modified_at = ?
		WHERE id = ?
	`, content, domain.CountWords(content), domain.CountCharacters(content), nowStamp(), id)
	if err != nil {
		return wrapExecErr("updating content", err)
	}
	return requireRow(res, "updating content")
}

// UpdateTitle replaces the title and touches modified-at.
func (s *documentStore) UpdateTitle(ctx context.Context, id, title string) error {
	if title == "" {
		title = domain.DefaultDocumentTitle
	}

	conn, err := s.db.CreateConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, `
		UPDATE documents SET title = ?, modified_at = ? WHERE id = ?
	`, title, nowStamp(), id)
	if err != nil {
		return wrapExecErr("updating title", err)
	}
	return requireRow(res, "updating title")
}

// ToggleFavorite flips the favorite flag without touching modified-at.
func (s *documentStore) ToggleFavorite(ctx context.Context, id string) error {
	conn, err := s.db.CreateConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, `
		UPDATE documents SET is_favorite = 1 - is_favorite WHERE id = ?
	`, id)
	if err != nil {
		return wrapExecErr("toggling favorite", err)
	}
	return requireRow(res, "toggling favorite")
}

// SetArchived sets or clears the archived flag without touching modified-at.
func (s *documentStore) SetArchived(ctx context.Context, id string, archived bool) error {
	conn, err := s.db.CreateConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, `
		UPDATE documents SET is_archived = ? WHERE id = ?
	`, archived, id)
	if err != nil {
		return wrapExecErr("setting archived", err)
	}
	return requireRow(res, "setting archived")
}

// Duplicate copies title, content and project assignment into a new document
// with fresh timestamps and cleared flags. Tag associations stay behind; a
// duplicate is a new working copy, not a filed one.
func (s *documentStore) Duplicate(ctx context.Context, id string) (string, error) {
	conn, err := s.db.CreateConnection()
	if err != nil {
		return "", err
	}
	defer conn.Close()

	newID := domain.NewID()
	now := nowStamp()
	res, err := conn.ExecContext(ctx, `
		INSERT INTO documents
			(id, title, content, project_id, word_count, character_count,
			 is_favorite, is_archived, created_at, modified_at)
		SELECT ?, title, content, project_id, word_count, character_count,
			0, 0, ?, ?
		FROM documents WHERE id = ?
	`, newID, now, now, id)
	if err != nil {
		return "", wrapExecErr("duplicating document", err)
	}
	if err := requireRow(res, "duplicating document"); err != nil {
		return "", err
	}
	return newID, nil
}

// MoveToProject reassigns the document; an empty projectID unassigns it.
func (s *documentStore) MoveToProject(ctx context.Context, id, projectID string) error {
	conn, err := s.db.CreateConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, `
		UPDATE documents SET project_id = ? WHERE id = ?
	`, nullString(projectID), id)
	if err != nil {
		return wrapExecErr("moving document", err)
	}
	return requireRow(res, "moving document")
}

// Delete removes the document; tag associations cascade. Deleting a missing
// document is a no-op.
func (s *documentStore) Delete(ctx context.Context, id string) error {
	conn, err := s.db.CreateConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// DeleteByProject removes every document assigned to the project. The delete
// is unfiltered on is_archived; a project deletion takes its archived
// documents with it.
func (s *documentStore) DeleteByProject(ctx context.Context, projectID string) error {
	conn, err := s.db.CreateConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "DELETE FROM documents WHERE project_id = ?", projectID); err != nil {
		return fmt.Errorf("deleting project documents: %w", err)
	}
	return nil
}

// GetTagIDs returns the set of tag ids attached to the document.
func (s *documentStore) GetTagIDs(ctx context.Context, id string) ([]string, error) {
	conn, err := s.db.CreateConnection()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return scanTagIDs(ctx, conn, id)
}

// listSummaries runs a summary-projection query on a fresh connection.
func (s *documentStore) listSummaries(ctx context.Context, query string, args ...any) ([]domain.DocumentSummary, error) {
	conn, err := s.db.CreateConnection()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var summaries []domain.DocumentSummary //nolint:prealloc // size unknown from query
	for rows.Next() {
		var sum domain.DocumentSummary
		var modifiedAt string
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.WordCount, &modifiedAt); err != nil {
			return nil, fmt.Errorf("scanning document summary: %w", err)
		}
		sum.ModifiedAt = parseStamp(modifiedAt)
		summaries = append(summaries, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return summaries, nil
}

// scanTagIDs reads the tag-id set for a document on an existing connection.
func scanTagIDs(ctx context.Context, conn *sql.DB, documentID string) ([]string, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT tag_id FROM document_tags WHERE document_id = ? ORDER BY tag_id
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying document tags: %w", err)
	}
	defer rows.Close()

	var ids []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning tag id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating document tags: %w", err)
	}

	return ids, nil
}

// requireRow converts a zero-row id-targeted write into domain.ErrNotFound.
func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
