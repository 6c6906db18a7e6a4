package domain

import "time"

// EditorSettings tunes the edit-session debounce behavior.
//
// The ratio between the two intervals is deliberate: preview feedback must
// feel instant while disk writes are batched to avoid thrashing.
type EditorSettings struct {
	// PreviewDebounce is the quiet period before a preview render fires.
	PreviewDebounce time.Duration

	// SaveDebounce is the quiet period before an autosave fires.
	SaveDebounce time.Duration
}

// DefaultEditorSettings returns the reference debounce intervals.
func DefaultEditorSettings() EditorSettings {
	return EditorSettings{
		PreviewDebounce: 300 * time.Millisecond,
		SaveDebounce:    2 * time.Second,
	}
}

// Valid reports whether both intervals are positive and the save window is
// longer than the preview window.
func (s EditorSettings) Valid() bool {
	return s.PreviewDebounce > 0 && s.SaveDebounce > s.PreviewDebounce
}
