package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-md/inkwell/internal/core/domain"
)

func TestDocumentStore_CreateAndGet(t *testing.T) {
	db := setupTestDatabase(t)
	docs := db.DocumentStore()
	ctx := context.Background()

	id, err := docs.Create(ctx, "First Draft", "")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := docs.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "First Draft", doc.Title)
	assert.Empty(t, doc.Content)
	assert.Empty(t, doc.ProjectID)
	assert.Zero(t, doc.WordCount)
	assert.Zero(t, doc.CharacterCount)
	assert.False(t, doc.Favorite)
	assert.False(t, doc.Archived)
	assert.Empty(t, doc.TagIDs)
	assert.False(t, doc.CreatedAt.IsZero())
	assert.Equal(t, doc.CreatedAt, doc.ModifiedAt)
}

func TestDocumentStore_CreateDefaultTitle(t *testing.T) {
	db := setupTestDatabase(t)
	docs := db.DocumentStore()
	ctx := context.Background()

	id, err := docs.Create(ctx, "", "")
	require.NoError(t, err)

	doc, err := docs.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDocumentTitle, doc.Title)
}

func TestDocumentStore_CreateInProject(t *testing.T) {
	db := setupTestDatabase(t)
	ctx := context.Background()

	projID, err := db.ProjectStore().Create(ctx, "Novel")
	require.NoError(t, err)

	docs := db.DocumentStore()
	id, err := docs.Create(ctx, "Chapter 1", projID)
	require.NoError(t, err)

	doc, err := docs.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, projID, doc.ProjectID)

	// A dangling project id must be rejected up front.
	_, err = docs.Create(ctx, "Orphan", "no-such-project")
	assert.ErrorIs(t, err, domain.ErrConstraint)
}

func TestDocumentStore_GetByID_NotFound(t *testing.T) {
	db := setupTestDatabase(t)

	_, err := db.DocumentStore().GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_UpdateContentRecomputesCounts(t *testing.T) {
	db := setupTestDatabase(t)
	docs := db.DocumentStore()
	ctx := context.Background()

	id, err := docs.Create(ctx, "Stats", "")
	require.NoError(t, err)

	require.NoError(t, docs.UpdateContent(ctx, id, "héllo wörld  again\n"))

	doc, err := docs.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "héllo wörld  again\n", doc.Content)
	assert.Equal(t, 3, doc.WordCount)
	assert.Equal(t, 19, doc.CharacterCount, "runes, not bytes")

	// Blank content zeroes the word count.
	require.NoError(t, docs.UpdateContent(ctx, id, "   \n\t "))
	doc, err = docs.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, doc.WordCount)
	assert.Equal(t, 6, doc.CharacterCount)

	assert.ErrorIs(t, docs.UpdateContent(ctx, "missing", "x"), domain.ErrNotFound)
}

func TestDocumentStore_UpdateContentTouchesModifiedAt(t *testing.T) {
	db := setupTestDatabase(t)
	docs := db.DocumentStore()
	ctx := context.Background()

	id, err := docs.Create(ctx, "Touched", "")
	require.NoError(t, err)
	before, err := docs.GetByID(ctx, id)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, docs.UpdateContent(ctx, id, "new content"))

	after, err := docs.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, after.ModifiedAt.After(before.ModifiedAt))
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
}

func TestDocumentStore_UpdateTitle(t *testing.T) {
	db := setupTestDatabase(t)
	docs := db.DocumentStore()
	ctx := context.Background()

	id, err := docs.Create(ctx, "Old Title", "")
	require.NoError(t, err)

	require.NoError(t, docs.UpdateTitle(ctx, id, "New Title"))
	doc, err := docs.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New Title", doc.Title)

	assert.ErrorIs(t, docs.UpdateTitle(ctx, "missing", "X"), domain.ErrNotFound)
}

func TestDocumentStore_ToggleFavorite(t *testing.T) {
	db := setupTestDatabase(t)
	docs := db.DocumentStore()
	ctx := context.Background()

	id, err := docs.Create(ctx, "Starred", "")
	require.NoError(t, err)

	require.NoError(t, docs.ToggleFavorite(ctx, id))
	doc, err := docs.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, doc.Favorite)

	require.NoError(t, docs.ToggleFavorite(ctx, id))
	doc, err = docs.GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, doc.Favorite)

	assert.ErrorIs(t, docs.ToggleFavorite(ctx, "missing"), domain.ErrNotFound)
}

func TestDocumentStore_ListAll(t *testing.T) {
	db := setupTestDatabase(t)
	docs := db.DocumentStore()
	ctx := context.Background()

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := docs.Create(ctx, title, "")
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	all, err := docs.ListAll(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Three", all[0].Title, "most recently modified first")
	assert.Equal(t, "One", all[2].Title)

	limited, err := docs.ListAll(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	_, err = docs.ListAll(ctx, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentStore_ListByProject(t *testing.T) {
	db := setupTestDatabase(t)
	docs := db.DocumentStore()
	ctx := context.Background()

	projID, err := db.ProjectStore().Create(ctx, "Novel")
	require.NoError(t, err)
	inID, err := docs.Create(ctx, "Inside", projID)
	require.NoError(t, err)
	outID, err := docs.Create(ctx, "Outside", "")
	require.NoError(t, err)

	inProject, err := docs.ListByProject(ctx, projID)
	require.NoError(t, err)
	require.Len(t, inProject, 1)
	assert.Equal(t, inID, inProject[0].ID)

	unassigned, err := docs.ListByProject(ctx, "")
	require.NoError(t, err)
	require.Len(t, unassigned, 1)
	assert.Equal(t, outID, unassigned[0].ID)
}

func TestDocumentStore_ListFavoritesAndRecent(t *testing.T) {
	db := setupTestDatabase(t)
	docs := db.DocumentStore()
	ctx := context.Background()

	favID, err := docs.Create(ctx, "Starred", "")
	require.NoError(t, err)
	require.NoError(t, docs.ToggleFavorite(ctx, favID))
	_, err = docs.Create(ctx, "Plain", "")
	require.NoError(t, err)

	favs, err := docs.ListFavorites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, favID, favs[0].ID)

	recent, err := docs.ListRecent(ctx)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestDocumentStore_ListRecentLimit(t *testing.T) {
	db := setupTestDatabase(t)
	docs := db.DocumentStore()
	ctx := context.Background()

	for i := 0; i < domain.RecentDocumentLimit+5; i++ {
		_, err := docs.Create(ctx, "Note", "")
		require.NoError(t, err)
	}

	recent, err := docs.ListRecent(ctx)
	require.NoError(t, err)
	assert.Len(t, recent, domain.RecentDocumentLimit)
}

func TestDocumentStore_ArchivedExcludedFromListings(t *testing.T) {
	db := setupTestDatabase(t)
	docs := db.DocumentStore()
	ctx := context.Background()

	keepID, err := docs.Create(ctx, "Kept", "")
	require.NoError(t, err)
	goneID, err := docs.Create(ctx, "Shelved", "")
	require.NoError(t, err)
	require.NoError(t, docs.SetArchived(ctx, goneID, true))

	all, err := docs.ListAll(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keepID, all[0].ID)

	archived, err := docs.ListArchived(ctx)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, goneID, archived[0].ID)

	// Archived documents stay loadable by id.
	doc, err := docs.GetByID(ctx, goneID)
	require.NoError(t, err)
	assert.True(t, doc.Archived)

	// Unarchiving restores visibility.
	require.NoError(t, docs.SetArchived(ctx, goneID, false))
	all, err = docs.ListAll(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDocumentStore_Search(t *testing.T) {
	db := setupTestDatabase(t)
	docs := db.DocumentStore()
	ctx := context.Background()

	titleID, err := docs.Create(ctx, "Meeting Notes", "")
	require.NoError(t, err)
	bodyID, err := docs.Create(ctx, "Scratch", "")
	require.NoError(t, err)
	require.NoError(t, docs.UpdateContent(ctx, bodyID, "agenda for the meeting tomorrow"))
	_, err = docs.Create(ctx, "Unrelated", "")
	require.NoError(t, err)

	hits, err := docs.Search(ctx, "MEETING")
	require.NoError(t, err)
	require.Len(t, hits, 2, "case-insensitive match across title and content")
	ids := []string{hits[0].ID, hits[1].ID}
	assert.Contains(t, ids, titleID)
	assert.Contains(t, ids, bodyID)

	// LIKE metacharacters are literal text for this search.
	pctID, err := docs.Create(ctx, "100% done", "")
	require.NoError(t, err)
	hits, err = docs.Search(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, pctID, hits[0].ID)

	hits, err = docs.Search(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestDocumentStore_SearchFoldsASCIIOnly(t *testing.T) {
	db := setupTestDatabase(t)
	docs := db.DocumentStore()
	ctx := context.Background()

	id, err := docs.Create(ctx, "CAFÉ menu", "")
	require.NoError(t, err)

	// lower() in SQLite leaves non-ASCII letters alone, so É only matches
	// itself.
	hits, err := docs.Search(ctx, "CAFÉ")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, id, hits[0].ID)

	hits, err = docs.Search(ctx, "café")
	require.NoError(t, err)
	assert.Empty(t, hits)

	// ASCII letters around the non-ASCII one still fold.
	hits, err = docs.Search(ctx, "MENU")
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestDocumentStore_SearchExcludesArchived(t *testing.T) {
	db := setupTestDatabase(t)
	docs := db.DocumentStore()
	ctx := context.Background()

	id, err := docs.Create(ctx, "Hidden treasure", "")
	require.NoError(t, err)
	require.NoError(t, docs.SetArchived(ctx, id, true))

	hits, err := docs.Search(ctx, "treasure")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestDocumentStore_Duplicate(t *testing.T) {
	db := setupTestDatabase(t)
	docs := db.DocumentStore()
	tags := db.TagStore()
	ctx := context.Background()

	projID, err := db.ProjectStore().Create(ctx, "Novel")
	require.NoError(t, err)
	id, err := docs.Create(ctx, "Original", projID)
	require.NoError(t, err)
	require.NoError(t, docs.UpdateContent(ctx, id, "some words here"))
	require.NoError(t, docs.ToggleFavorite(ctx, id))
	tagID, err := tags.Create(ctx, "draft", "")
	require.NoError(t, err)
	require.NoError(t, tags.AddTagToDocument(ctx, id, tagID))

	time.Sleep(5 * time.Millisecond)
	copyID, err := docs.Duplicate(ctx, id)
	require.NoError(t, err)
	require.NotEqual(t, id, copyID)

	original, err := docs.GetByID(ctx, id)
	require.NoError(t, err)
	dup, err := docs.GetByID(ctx, copyID)
	require.NoError(t, err)

	assert.Equal(t, original.Title, dup.Title)
	assert.Equal(t, original.Content, dup.Content)
	assert.Equal(t, original.ProjectID, dup.ProjectID)
	assert.Equal(t, original.WordCount, dup.WordCount)
	assert.Equal(t, original.CharacterCount, dup.CharacterCount)
	assert.False(t, dup.Favorite, "flags start cleared on the copy")
	assert.Empty(t, dup.TagIDs, "tag associations stay with the original")
	assert.True(t, dup.CreatedAt.After(original.CreatedAt))

	_, err = docs.Duplicate(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_MoveToProject(t *testing.T) {
	db := setupTestDatabase(t)
	docs := db.DocumentStore()
	ctx := context.Background()

	projID, err := db.ProjectStore().Create(ctx, "Novel")
	require.NoError(t, err)
	id, err := docs.Create(ctx, "Wanderer", "")
	require.NoError(t, err)

	require.NoError(t, docs.MoveToProject(ctx, id, projID))
	doc, err := docs.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, projID, doc.ProjectID)

	// Empty project id unassigns.
	require.NoError(t, docs.MoveToProject(ctx, id, ""))
	doc, err = docs.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, doc.ProjectID)

	assert.ErrorIs(t, docs.MoveToProject(ctx, id, "no-such-project"), domain.ErrConstraint)
	assert.ErrorIs(t, docs.MoveToProject(ctx, "missing", projID), domain.ErrNotFound)
}

func TestDocumentStore_DeleteCascadesTags(t *testing.T) {
	db := setupTestDatabase(t)
	docs := db.DocumentStore()
	tags := db.TagStore()
	ctx := context.Background()

	id, err := docs.Create(ctx, "Doomed", "")
	require.NoError(t, err)
	tagID, err := tags.Create(ctx, "keep", "")
	require.NoError(t, err)
	require.NoError(t, tags.AddTagToDocument(ctx, id, tagID))

	require.NoError(t, docs.Delete(ctx, id))
	_, err = docs.GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The tag itself survives; only the association is gone.
	remaining, err := tags.List(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	// Deleting again is a no-op.
	assert.NoError(t, docs.Delete(ctx, id))
}

func TestDocumentStore_DeleteByProject(t *testing.T) {
	db := setupTestDatabase(t)
	docs := db.DocumentStore()
	ctx := context.Background()

	projID, err := db.ProjectStore().Create(ctx, "Doomed")
	require.NoError(t, err)
	plainID, err := docs.Create(ctx, "Plain", projID)
	require.NoError(t, err)
	shelvedID, err := docs.Create(ctx, "Shelved", projID)
	require.NoError(t, err)
	require.NoError(t, docs.SetArchived(ctx, shelvedID, true))
	outID, err := docs.Create(ctx, "Elsewhere", "")
	require.NoError(t, err)

	require.NoError(t, docs.DeleteByProject(ctx, projID))

	// Archived documents in the project go too, even though listings
	// never show them.
	_, err = docs.GetByID(ctx, plainID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = docs.GetByID(ctx, shelvedID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = docs.GetByID(ctx, outID)
	assert.NoError(t, err, "documents outside the project must survive")

	// Unknown project is a no-op.
	assert.NoError(t, docs.DeleteByProject(ctx, "no-such-project"))
}
