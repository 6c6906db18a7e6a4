package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/inkwell-md/inkwell/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/inkwell-md/inkwell/internal/core/domain"
	"github.com/inkwell-md/inkwell/internal/core/ports/driven"
	"github.com/inkwell-md/inkwell/internal/logger"
)

// Journal modes picked by the sync-location policy.
const (
	journalModeWAL    = "WAL"
	journalModeDelete = "DELETE"
)

// stampLayout is fixed-width so stored timestamps sort lexicographically;
// the trailing zeros matter for ORDER BY modified_at.
const stampLayout = "2006-01-02 15:04:05.000000000"

// stampLayoutShort reads timestamps written without fractional seconds.
const stampLayoutShort = "2006-01-02 15:04:05"

// Database manages access to a single SQLite file. The journal mode is
// decided once at Open from the file's location: WAL on plain local disk,
// DELETE inside cloud-synced folders where WAL sidecar files sync as
// partial state and corrupt the database on other machines.
type Database struct {
	path        string
	cloudSynced bool
	journalMode string
}

// Open prepares the database at path: resolves it to an absolute location,
// creates the parent directory, picks the journal mode and applies the
// schema. If path is empty, defaults to ~/.inkwell/inkwell.db.
func Open(path string) (*Database, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".inkwell", "inkwell.db")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving database path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	d := &Database{
		path:        abs,
		cloudSynced: DetectCloudSync(abs),
		journalMode: journalModeWAL,
	}
	if d.cloudSynced {
		d.journalMode = journalModeDelete
		logger.Info("database at %s is in a cloud-synced folder, using DELETE journal mode", abs)
	}

	conn, err := d.CreateConnection()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := migrate(conn, migrations.FS); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// Path returns the absolute database file path.
func (d *Database) Path() string {
	return d.path
}

// CloudSynced reports whether the database file sits in a cloud-synced folder.
func (d *Database) CloudSynced() bool {
	return d.cloudSynced
}

// JournalMode returns the journal mode applied to every connection.
func (d *Database) JournalMode() string {
	return d.journalMode
}

// CreateConnection opens a fresh connection with the journal mode, foreign
// keys and busy timeout applied through the DSN, so every connection carries
// the same pragmas no matter who opens it. The caller owns the returned
// handle and must close it.
func (d *Database) CreateConnection() (*sql.DB, error) {
	dsn := d.path +
		"?_pragma=journal_mode(" + d.journalMode + ")" +
		"&_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	return conn, nil
}

// CheckIntegrity runs PRAGMA integrity_check and returns an empty string
// when the database is healthy, otherwise the first reported problem.
func (d *Database) CheckIntegrity() (string, error) {
	conn, err := d.CreateConnection()
	if err != nil {
		return "", err
	}
	defer conn.Close()

	var result string
	if err := conn.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return "", fmt.Errorf("checking integrity: %w", err)
	}
	if result == "ok" {
		return "", nil
	}
	return result, nil
}

// DocumentStore returns a DocumentStore backed by this database.
func (d *Database) DocumentStore() driven.DocumentStore {
	return &documentStore{db: d}
}

// ProjectStore returns a ProjectStore backed by this database.
func (d *Database) ProjectStore() driven.ProjectStore {
	return &projectStore{db: d}
}

// TagStore returns a TagStore backed by this database.
func (d *Database) TagStore() driven.TagStore {
	return &tagStore{db: d}
}

// migrate runs all pending migrations. Duplicate-column errors from additive
// migrations are swallowed so databases created by older app builds, where
// the column already exists but the version row does not, upgrade cleanly.
func migrate(conn *sql.DB, fsys embed.FS) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := conn.Exec(string(content)); err != nil {
			if !strings.Contains(err.Error(), "duplicate column name") {
				return fmt.Errorf("executing migration %s: %w", name, err)
			}
		}

		if _, err := conn.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// nowStamp returns the current UTC time in the fixed-width stamp format.
func nowStamp() string {
	return time.Now().UTC().Format(stampLayout)
}

// parseStamp reads a stored timestamp, accepting the short layout for rows
// written by builds predating fractional-second stamps. An unparseable stamp
// yields the zero time; the row then sorts to the epoch, so the corruption is
// at least logged.
func parseStamp(s string) time.Time {
	if t, err := time.Parse(stampLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(stampLayoutShort, s); err == nil {
		return t
	}
	logger.Warn("unparseable timestamp %q in database", s)
	return time.Time{}
}

// wrapExecErr classifies write failures: constraint violations surface as
// domain.ErrConstraint so callers can treat them as rejected input.
func wrapExecErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), "constraint") {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrConstraint, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
