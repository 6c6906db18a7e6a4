package driving

import "context"

// EditSession coordinates one active editing session: it debounces raw edit
// events into low-frequency "render preview" and "persist now" signals.
//
// Preview and save are driven by two independent timers; both restart on
// every edit. A preview render always reflects the buffer at fire time,
// never at schedule time, and saves are last-writer-wins.
type EditSession interface {
	// SetPreviewListener registers the at-most-one listener receiving
	// rendered previews. A second call replaces the first.
	SetPreviewListener(fn func(html string))

	// SetSaveErrorListener registers the at-most-one listener receiving
	// autosave failures.
	SetSaveErrorListener(fn func(err error))

	// Open loads a document into the session buffer. Any save pending for
	// the previously open document is flushed synchronously first; its
	// pending preview is discarded. A flush failure aborts the switch.
	Open(ctx context.Context, documentID string) error

	// Edit replaces the buffer with text and restarts both timers.
	Edit(text string)

	// Flush synchronously persists the buffer if a save is pending.
	Flush(ctx context.Context) error

	// Close flushes any pending save and stops the session.
	Close(ctx context.Context) error

	// Buffer returns the current buffer contents.
	Buffer() string

	// DocumentID returns the id of the loaded document, empty when none.
	DocumentID() string

	// PreviewPending reports whether a preview render is scheduled.
	PreviewPending() bool

	// SavePending reports whether an autosave is scheduled.
	SavePending() bool
}
