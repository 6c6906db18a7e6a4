package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/inkwell-md/inkwell/internal/core/domain"
	"github.com/inkwell-md/inkwell/internal/core/ports/driven"
	"github.com/inkwell-md/inkwell/internal/core/ports/driving"
	"github.com/inkwell-md/inkwell/internal/logger"
)

// Ensure EditSession implements the interface.
var _ driving.EditSession = (*EditSession)(nil)

// EditSession turns a stream of raw edit events into two lower-frequency
// signals: "render preview" (short timer) and "persist now" (long timer).
//
// Preview-pending and save-pending are two orthogonal states driven by two
// independent single-shot timers. Restarting a timer is the cancellation
// primitive: every edit bumps a generation counter and stale fires check it,
// so a reset racing a fire never delivers twice in one quiescent period.
type EditSession struct {
	store    driven.DocumentStore
	renderer driven.PreviewRenderer
	settings domain.EditorSettings

	// wmu serialises buffer writes so a debounced save cannot overtake a
	// synchronous flush.
	wmu sync.Mutex

	mu             sync.Mutex
	closed         bool
	docID          string
	buffer         string
	previewTimer   *time.Timer
	saveTimer      *time.Timer
	previewGen     uint64
	saveGen        uint64
	previewPending bool
	savePending    bool
	onPreview      func(html string)
	onSaveError    func(err error)
}

// NewEditSession creates a coordinator over the given store and renderer.
// Invalid settings fall back to domain.DefaultEditorSettings. The renderer
// may be nil, in which case preview signals carry the raw buffer.
func NewEditSession(
	store driven.DocumentStore,
	renderer driven.PreviewRenderer,
	settings domain.EditorSettings,
) *EditSession {
	if !settings.Valid() {
		settings = domain.DefaultEditorSettings()
	}
	return &EditSession{
		store:    store,
		renderer: renderer,
		settings: settings,
	}
}

// SetPreviewListener registers the at-most-one listener receiving rendered
// previews. A second call replaces the first.
func (s *EditSession) SetPreviewListener(fn func(html string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPreview = fn
}

// SetSaveErrorListener registers the at-most-one listener receiving autosave
// failures. A failed autosave without notification is a data-loss risk, so
// unlistened failures are logged rather than dropped.
func (s *EditSession) SetSaveErrorListener(fn func(err error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSaveError = fn
}

// Open loads a document into the session buffer. A save pending for the
// previously open document is flushed synchronously before the new document
// loads; its pending preview is discarded, no render is owed on switch.
func (s *EditSession) Open(ctx context.Context, documentID string) error {
	if err := s.Flush(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrSessionClosed
	}
	s.discardPreviewLocked()
	s.mu.Unlock()

	doc, err := s.store.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("loading document %s: %w", documentID, err)
	}

	s.mu.Lock()
	s.docID = doc.ID
	s.buffer = doc.Content
	s.mu.Unlock()
	return nil
}

// Edit replaces the buffer with text and restarts both debounce timers.
// Edits are dropped when no document is loaded or the session is closed.
func (s *EditSession) Edit(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.docID == "" {
		return
	}
	s.buffer = text
	s.restartTimersLocked()
}

// Flush synchronously persists the buffer if a save is pending.
func (s *EditSession) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrSessionClosed
	}
	if !s.savePending || s.docID == "" {
		s.mu.Unlock()
		return nil
	}
	s.saveGen++
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.savePending = false
	id, buf := s.docID, s.buffer
	s.mu.Unlock()

	s.wmu.Lock()
	defer s.wmu.Unlock()
	if err := s.store.UpdateContent(ctx, id, buf); err != nil {
		return fmt.Errorf("flushing document %s: %w", id, err)
	}
	return nil
}

// Close flushes any pending save and stops the session. Further calls on a
// closed session return domain.ErrSessionClosed.
func (s *EditSession) Close(ctx context.Context) error {
	err := s.Flush(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrSessionClosed
	}
	s.closed = true
	s.discardPreviewLocked()
	s.saveGen++
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.savePending = false
	return err
}

// Buffer returns the current buffer contents.
func (s *EditSession) Buffer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// DocumentID returns the id of the loaded document, empty when none.
func (s *EditSession) DocumentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docID
}

// PreviewPending reports whether a preview render is scheduled.
func (s *EditSession) PreviewPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.previewPending
}

// SavePending reports whether an autosave is scheduled.
func (s *EditSession) SavePending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savePending
}

// restartTimersLocked stops and rearms both single-shot timers. Bumping the
// generation counters invalidates callbacks from the stopped timers that
// already fired but have not yet taken the lock.
func (s *EditSession) restartTimersLocked() {
	s.previewGen++
	s.saveGen++
	s.previewPending = true
	s.savePending = true
	if s.previewTimer != nil {
		s.previewTimer.Stop()
	}
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	pg, sg := s.previewGen, s.saveGen
	s.previewTimer = time.AfterFunc(s.settings.PreviewDebounce, func() { s.firePreview(pg) })
	s.saveTimer = time.AfterFunc(s.settings.SaveDebounce, func() { s.fireSave(sg) })
}

// discardPreviewLocked cancels a pending preview without rendering.
func (s *EditSession) discardPreviewLocked() {
	s.previewGen++
	if s.previewTimer != nil {
		s.previewTimer.Stop()
	}
	s.previewPending = false
}

// firePreview reads the buffer at fire time, never at schedule time, so a
// render always reflects the edit that triggered it or a later one.
func (s *EditSession) firePreview(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.previewGen || !s.previewPending {
		s.mu.Unlock()
		return
	}
	s.previewPending = false
	buf := s.buffer
	onPreview := s.onPreview
	s.mu.Unlock()

	if onPreview == nil {
		return
	}
	out := buf
	if s.renderer != nil {
		html, err := s.renderer.Render(buf)
		if err != nil {
			logger.Warn("preview render failed: %v", err)
			return
		}
		out = html
	}
	onPreview(out)
}

// fireSave persists the most recent buffer content; intermediate states are
// never written.
func (s *EditSession) fireSave(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.saveGen || !s.savePending {
		s.mu.Unlock()
		return
	}
	s.savePending = false
	id, buf := s.docID, s.buffer
	onSaveError := s.onSaveError
	s.mu.Unlock()

	s.wmu.Lock()
	err := s.store.UpdateContent(context.Background(), id, buf)
	s.wmu.Unlock()
	if err != nil {
		if onSaveError != nil {
			onSaveError(err)
			return
		}
		logger.Warn("autosave of document %s failed: %v", id, err)
	}
}
