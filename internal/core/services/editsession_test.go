package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-md/inkwell/internal/core/domain"
	"github.com/inkwell-md/inkwell/internal/core/ports/driven"
)

// --- Mock implementations for coordinator testing ---

type contentUpdate struct {
	id      string
	content string
}

// mockDocumentStore implements driven.DocumentStore for testing.
type mockDocumentStore struct {
	mu        sync.Mutex
	docs      map[string]*domain.Document
	updates   []contentUpdate
	deleted   []string
	archived  map[string]bool
	updateErr error
}

var _ driven.DocumentStore = (*mockDocumentStore)(nil)

func newMockDocumentStore() *mockDocumentStore {
	return &mockDocumentStore{
		docs:     make(map[string]*domain.Document),
		archived: make(map[string]bool),
	}
}

func (m *mockDocumentStore) addDoc(id, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[id] = &domain.Document{ID: id, Title: "Doc " + id, Content: content}
}

func (m *mockDocumentStore) updateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.updates)
}

func (m *mockDocumentStore) lastUpdate() contentUpdate {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.updates) == 0 {
		return contentUpdate{}
	}
	return m.updates[len(m.updates)-1]
}

func (m *mockDocumentStore) ListAll(_ context.Context, _ int) ([]domain.DocumentSummary, error) {
	return nil, nil
}

func (m *mockDocumentStore) ListByProject(_ context.Context, projectID string) ([]domain.DocumentSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.DocumentSummary
	for _, d := range m.docs {
		if d.ProjectID == projectID {
			out = append(out, domain.DocumentSummary{ID: d.ID, Title: d.Title})
		}
	}
	return out, nil
}

func (m *mockDocumentStore) ListByTag(_ context.Context, _ string) ([]domain.DocumentSummary, error) {
	return nil, nil
}

func (m *mockDocumentStore) ListFavorites(_ context.Context) ([]domain.DocumentSummary, error) {
	return nil, nil
}

func (m *mockDocumentStore) ListRecent(_ context.Context) ([]domain.DocumentSummary, error) {
	return nil, nil
}

func (m *mockDocumentStore) ListArchived(_ context.Context) ([]domain.DocumentSummary, error) {
	return nil, nil
}

func (m *mockDocumentStore) Search(_ context.Context, _ string) ([]domain.DocumentSummary, error) {
	return nil, nil
}

func (m *mockDocumentStore) GetByID(_ context.Context, id string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	docCopy := *doc
	return &docCopy, nil
}

func (m *mockDocumentStore) Create(_ context.Context, title, _ string) (string, error) {
	id := domain.NewID()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[id] = &domain.Document{ID: id, Title: title}
	return id, nil
}

func (m *mockDocumentStore) UpdateContent(_ context.Context, id, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	doc, ok := m.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Content = content
	m.updates = append(m.updates, contentUpdate{id: id, content: content})
	return nil
}

func (m *mockDocumentStore) UpdateTitle(_ context.Context, id, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Title = title
	return nil
}

func (m *mockDocumentStore) ToggleFavorite(_ context.Context, _ string) error { return nil }

func (m *mockDocumentStore) SetArchived(_ context.Context, id string, archived bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return domain.ErrNotFound
	}
	m.archived[id] = archived
	return nil
}

func (m *mockDocumentStore) Duplicate(_ context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	newID := domain.NewID()
	m.docs[newID] = &domain.Document{ID: newID, Title: doc.Title, Content: doc.Content}
	return newID, nil
}

func (m *mockDocumentStore) MoveToProject(_ context.Context, id, projectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.ProjectID = projectID
	return nil
}

func (m *mockDocumentStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockDocumentStore) DeleteByProject(_ context.Context, projectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, d := range m.docs {
		if d.ProjectID == projectID {
			delete(m.docs, id)
			m.deleted = append(m.deleted, id)
		}
	}
	return nil
}

func (m *mockDocumentStore) GetTagIDs(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

// mockRenderer implements driven.PreviewRenderer for testing.
type mockRenderer struct{}

func (mockRenderer) Render(markdown string) (string, error) {
	return "<p>" + markdown + "</p>", nil
}

// --- Tests ---

// fastSettings keeps the debounce windows short enough for tests while
// preserving the save >> preview ratio.
func fastSettings() domain.EditorSettings {
	return domain.EditorSettings{
		PreviewDebounce: 30 * time.Millisecond,
		SaveDebounce:    120 * time.Millisecond,
	}
}

func TestEditSession_BurstProducesSinglePreviewAndSave(t *testing.T) {
	store := newMockDocumentStore()
	store.addDoc("doc-1", "initial")

	session := NewEditSession(store, mockRenderer{}, fastSettings())
	previews := make(chan string, 16)
	session.SetPreviewListener(func(html string) { previews <- html })

	ctx := context.Background()
	require.NoError(t, session.Open(ctx, "doc-1"))
	assert.Equal(t, "initial", session.Buffer())

	// A burst of edits inside the debounce window.
	for _, text := range []string{"d", "dr", "dra", "draf", "draft"} {
		session.Edit(text)
		time.Sleep(2 * time.Millisecond)
	}
	assert.True(t, session.SavePending())

	// Exactly one preview, reflecting the final buffer state.
	select {
	case html := <-previews:
		assert.Equal(t, "<p>draft</p>", html)
	case <-time.After(2 * time.Second):
		t.Fatal("preview signal never fired")
	}

	// Exactly one save, reflecting the final buffer state.
	require.Eventually(t, func() bool { return store.updateCount() == 1 },
		2*time.Second, 5*time.Millisecond)
	assert.Equal(t, contentUpdate{id: "doc-1", content: "draft"}, store.lastUpdate())

	// Quiescent period: no double delivery.
	time.Sleep(3 * fastSettings().SaveDebounce)
	assert.Len(t, previews, 0, "second preview delivered for one burst")
	assert.Equal(t, 1, store.updateCount(), "second save delivered for one burst")
	assert.False(t, session.PreviewPending())
	assert.False(t, session.SavePending())
}

func TestEditSession_PreviewReadsBufferAtFireTime(t *testing.T) {
	store := newMockDocumentStore()
	store.addDoc("doc-1", "")

	session := NewEditSession(store, nil, fastSettings())
	previews := make(chan string, 16)
	session.SetPreviewListener(func(html string) { previews <- html })

	require.NoError(t, session.Open(context.Background(), "doc-1"))
	session.Edit("first")
	session.Edit("second")

	select {
	case got := <-previews:
		assert.Equal(t, "second", got, "preview must never reflect a stale buffer")
	case <-time.After(2 * time.Second):
		t.Fatal("preview signal never fired")
	}
}

func TestEditSession_SwitchFlushesPendingSave(t *testing.T) {
	store := newMockDocumentStore()
	store.addDoc("doc-a", "alpha")
	store.addDoc("doc-b", "beta")

	session := NewEditSession(store, nil, domain.EditorSettings{
		PreviewDebounce: 50 * time.Millisecond,
		SaveDebounce:    10 * time.Second, // never fires on its own
	})

	ctx := context.Background()
	require.NoError(t, session.Open(ctx, "doc-a"))
	session.Edit("alpha edited")
	require.True(t, session.SavePending())

	// Switching must flush doc-a synchronously before doc-b loads.
	require.NoError(t, session.Open(ctx, "doc-b"))
	require.Equal(t, 1, store.updateCount())
	assert.Equal(t, contentUpdate{id: "doc-a", content: "alpha edited"}, store.lastUpdate())
	assert.Equal(t, "doc-b", session.DocumentID())
	assert.Equal(t, "beta", session.Buffer())
	assert.False(t, session.SavePending())
	assert.False(t, session.PreviewPending(), "no render is owed after a switch")

	// The flushed content is immediately readable through the store.
	doc, err := store.GetByID(ctx, "doc-a")
	require.NoError(t, err)
	assert.Equal(t, "alpha edited", doc.Content)
}

func TestEditSession_SwitchDiscardsPendingPreview(t *testing.T) {
	store := newMockDocumentStore()
	store.addDoc("doc-a", "alpha")
	store.addDoc("doc-b", "beta")

	session := NewEditSession(store, nil, domain.EditorSettings{
		PreviewDebounce: 60 * time.Millisecond,
		SaveDebounce:    10 * time.Second,
	})
	previews := make(chan string, 16)
	session.SetPreviewListener(func(html string) { previews <- html })

	ctx := context.Background()
	require.NoError(t, session.Open(ctx, "doc-a"))
	session.Edit("alpha edited")
	require.NoError(t, session.Open(ctx, "doc-b"))

	time.Sleep(200 * time.Millisecond)
	assert.Len(t, previews, 0, "preview for the old document must be discarded")
}

func TestEditSession_SaveErrorSurfaces(t *testing.T) {
	store := newMockDocumentStore()
	store.addDoc("doc-1", "")

	session := NewEditSession(store, nil, fastSettings())
	errs := make(chan error, 1)
	session.SetSaveErrorListener(func(err error) { errs <- err })

	require.NoError(t, session.Open(context.Background(), "doc-1"))
	store.mu.Lock()
	store.updateErr = assert.AnError
	store.mu.Unlock()
	session.Edit("doomed")

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, assert.AnError)
	case <-time.After(2 * time.Second):
		t.Fatal("autosave failure was silently dropped")
	}
}

func TestEditSession_FlushFailureAbortsSwitch(t *testing.T) {
	store := newMockDocumentStore()
	store.addDoc("doc-a", "alpha")
	store.addDoc("doc-b", "beta")

	session := NewEditSession(store, nil, domain.EditorSettings{
		PreviewDebounce: 50 * time.Millisecond,
		SaveDebounce:    10 * time.Second,
	})

	ctx := context.Background()
	require.NoError(t, session.Open(ctx, "doc-a"))
	session.Edit("alpha edited")

	store.mu.Lock()
	store.updateErr = assert.AnError
	store.mu.Unlock()

	err := session.Open(ctx, "doc-b")
	require.Error(t, err)
	assert.Equal(t, "doc-a", session.DocumentID(), "old document stays loaded on flush failure")
}

func TestEditSession_CloseFlushesAndStops(t *testing.T) {
	store := newMockDocumentStore()
	store.addDoc("doc-1", "")

	session := NewEditSession(store, nil, domain.EditorSettings{
		PreviewDebounce: 50 * time.Millisecond,
		SaveDebounce:    10 * time.Second,
	})

	ctx := context.Background()
	require.NoError(t, session.Open(ctx, "doc-1"))
	session.Edit("final words")

	require.NoError(t, session.Close(ctx))
	require.Equal(t, 1, store.updateCount())
	assert.Equal(t, contentUpdate{id: "doc-1", content: "final words"}, store.lastUpdate())

	assert.ErrorIs(t, session.Close(ctx), domain.ErrSessionClosed)
	assert.ErrorIs(t, session.Flush(ctx), domain.ErrSessionClosed)
}

func TestEditSession_FlushWithoutPendingIsNoop(t *testing.T) {
	store := newMockDocumentStore()
	store.addDoc("doc-1", "content")

	session := NewEditSession(store, nil, fastSettings())
	ctx := context.Background()
	require.NoError(t, session.Open(ctx, "doc-1"))

	require.NoError(t, session.Flush(ctx))
	assert.Equal(t, 0, store.updateCount())
}

func TestEditSession_EditWithoutDocumentIsDropped(t *testing.T) {
	store := newMockDocumentStore()
	session := NewEditSession(store, nil, fastSettings())

	session.Edit("into the void")
	assert.False(t, session.SavePending())
	assert.False(t, session.PreviewPending())
	assert.Empty(t, session.Buffer())
}

func TestEditSession_OpenUnknownDocument(t *testing.T) {
	store := newMockDocumentStore()
	session := NewEditSession(store, nil, fastSettings())

	err := session.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
