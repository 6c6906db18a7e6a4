package sqlite

import (
	"context"
	"fmt"

	"github.com/inkwell-md/inkwell/internal/core/domain"
	"github.com/inkwell-md/inkwell/internal/core/ports/driven"
)

// tagStore implements driven.TagStore.
type tagStore struct {
	db *Database
}

var _ driven.TagStore = (*tagStore)(nil)

// List returns all tags ordered by name.
func (s *tagStore) List(ctx context.Context) ([]domain.Tag, error) {
	conn, err := s.db.CreateConnection()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
		SELECT id, name, color FROM tags ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag //nolint:prealloc // size unknown from query
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	return tags, nil
}

// Create inserts a new tag and returns the generated id. An empty color uses
// the default.
func (s *tagStore) Create(ctx context.Context, name, color string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("creating tag: %w: empty name", domain.ErrInvalidInput)
	}
	if color == "" {
		color = domain.DefaultTagColor
	}

	conn, err := s.db.CreateConnection()
	if err != nil {
		return "", err
	}
	defer conn.Close()

	id := domain.NewID()
	_, err = conn.ExecContext(ctx, `
		INSERT INTO tags (id, name, color) VALUES (?, ?, ?)
	`, id, name, color)
	if err != nil {
		return "", wrapExecErr("creating tag", err)
	}
	return id, nil
}

// Rename changes the tag name.
func (s *tagStore) Rename(ctx context.Context, id, name string) error {
	if name == "" {
		return fmt.Errorf("renaming tag: %w: empty name", domain.ErrInvalidInput)
	}

	conn, err := s.db.CreateConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, `
		UPDATE tags SET name = ? WHERE id = ?
	`, name, id)
	if err != nil {
		return wrapExecErr("renaming tag", err)
	}
	return requireRow(res, "renaming tag")
}

// UpdateColor changes the tag color.
func (s *tagStore) UpdateColor(ctx context.Context, id, color string) error {
	if color == "" {
		color = domain.DefaultTagColor
	}

	conn, err := s.db.CreateConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, `
		UPDATE tags SET color = ? WHERE id = ?
	`, color, id)
	if err != nil {
		return wrapExecErr("updating tag color", err)
	}
	return requireRow(res, "updating tag color")
}

// Delete removes the tag; document associations cascade. Deleting a missing
// tag is a no-op.
func (s *tagStore) Delete(ctx context.Context, id string) error {
	conn, err := s.db.CreateConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	return nil
}

// AddTagToDocument associates a tag with a document. Re-adding an existing
// association is a no-op; a dangling document or tag id is a constraint
// violation.
func (s *tagStore) AddTagToDocument(ctx context.Context, documentID, tagID string) error {
	conn, err := s.db.CreateConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `
		INSERT OR IGNORE INTO document_tags (document_id, tag_id) VALUES (?, ?)
	`, documentID, tagID); err != nil {
		return wrapExecErr("tagging document", err)
	}
	return nil
}

// RemoveTagFromDocument removes an association. Removing a non-existent one
// is a no-op.
func (s *tagStore) RemoveTagFromDocument(ctx context.Context, documentID, tagID string) error {
	conn, err := s.db.CreateConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `
		DELETE FROM document_tags WHERE document_id = ? AND tag_id = ?
	`, documentID, tagID); err != nil {
		return fmt.Errorf("untagging document: %w", err)
	}
	return nil
}
