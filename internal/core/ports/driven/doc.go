// Package driven defines the interfaces the core depends on: the document,
// project and tag stores, the configuration store, and the preview renderer.
// Adapters under internal/adapters/driven implement them.
package driven
