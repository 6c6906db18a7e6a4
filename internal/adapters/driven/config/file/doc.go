// Package file provides the TOML-backed configuration store.
//
// Settings live in ~/.inkwell/config.toml and cover the database location
// and the editor debounce windows. Nested TOML tables are flattened to
// dot-notation keys on load.
package file
