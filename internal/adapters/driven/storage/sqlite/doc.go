// Package sqlite provides the SQLite-backed implementation of the driven
// storage ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. A Database value manages
// one database file and hands out the store interfaces:
//
//   - DocumentStore: document persistence, listings and search
//   - ProjectStore: project persistence
//   - TagStore: tag persistence and document-tag associations
//
// # Journal Mode
//
// The journal mode is picked once at Open from the file's location. Databases
// on plain local disk run in WAL mode; databases inside cloud-synced folders
// (Dropbox, OneDrive, iCloud Drive, Google Drive) run in DELETE mode, because
// sync clients replicate WAL sidecar files as partial state and corrupt the
// database on other machines.
//
// # Connections
//
// Every store operation opens a fresh connection carrying the journal mode,
// foreign keys and busy timeout through the DSN, uses it and closes it. No
// connection outlives a call, so an external sync client never sees a
// long-lived handle pinning the file.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Additive column migrations are idempotent against
// databases created by older builds.
//
// # Data Location
//
// By default, the database is stored at ~/.inkwell/inkwell.db
package sqlite
