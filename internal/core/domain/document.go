package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultDocumentTitle is used when a document is created without a title.
const DefaultDocumentTitle = "Untitled"

// RecentDocumentLimit bounds the "recent documents" listing to the
// most-recently-modified N documents.
const RecentDocumentLimit = 20

// DefaultListLimit bounds unpaginated document listings.
const DefaultListLimit = 200

// Document is a full note with content and derived statistics.
//
// WordCount and CharacterCount are always recomputed from Content on every
// content write; they are never stored independently of it. ModifiedAt is
// touched on content and title writes only.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Title is the human-readable title.
	Title string

	// Content is the full markdown text.
	Content string

	// ProjectID links to the owning Project, empty when unassigned.
	ProjectID string

	// TagIDs is the set of tags attached to this document.
	TagIDs []string

	// WordCount is derived from Content (whitespace-delimited tokens).
	WordCount int

	// CharacterCount is derived from Content (rune count).
	CharacterCount int

	// Favorite marks the document as a favorite.
	Favorite bool

	// Archived hides the document from the default listings.
	Archived bool

	// CreatedAt is when the document was created.
	CreatedAt time.Time

	// ModifiedAt is when the title or content last changed.
	ModifiedAt time.Time
}

// DocumentSummary is the lightweight projection used by list views.
type DocumentSummary struct {
	ID         string
	Title      string
	WordCount  int
	ModifiedAt time.Time
}

// CountWords splits content on runs of whitespace, discards empty tokens and
// counts the remainder. Empty or whitespace-only content yields zero.
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// CountCharacters returns the number of characters (runes) in content.
func CountCharacters(content string) int {
	return utf8.RuneCountInString(content)
}
