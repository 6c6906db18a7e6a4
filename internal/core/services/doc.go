// Package services contains the core application services: the edit-session
// coordinator that debounces edits into preview and autosave signals, and
// the library service that carries cross-store policy.
package services
