// Package cli implements the inkwell command line interface using cobra.
//
// Commands operate on the stores and services injected through Initialize;
// commands report a configuration error instead of panicking when a service
// is missing.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/inkwell-md/inkwell/internal/core/domain"
	"github.com/inkwell-md/inkwell/internal/core/ports/driven"
	"github.com/inkwell-md/inkwell/internal/core/ports/driving"
	"github.com/inkwell-md/inkwell/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// databaseInfo is the slice of the database the CLI needs for diagnostics.
type databaseInfo interface {
	Path() string
	CloudSynced() bool
	JournalMode() string
	CheckIntegrity() (string, error)
}

// DatabaseWatcher streams the paths of database files modified outside the
// running process, closing the channel when the watcher is closed.
type DatabaseWatcher interface {
	Changes() <-chan string
	Close() error
}

// Services injected by Initialize.
var (
	database        databaseInfo
	documentStore   driven.DocumentStore
	projectStore    driven.ProjectStore
	tagStore        driven.TagStore
	previewRenderer driven.PreviewRenderer
	libraryService  driving.Library

	// newEditSession builds a session per edit command; a session is
	// single-use, Close ends it for good.
	newEditSession func() driving.EditSession

	// watchDatabase starts watching the database file for the duration of
	// an edit command. Optional; editing works without it.
	watchDatabase func() (DatabaseWatcher, error)
)

var editorSettings = domain.DefaultEditorSettings()

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Local-first markdown notes",
	Long: `Inkwell manages a library of markdown documents in a local SQLite file.

Documents are grouped into projects and labelled with tags. The database
adapts its journal mode to its location, so the file stays safe inside
Dropbox, OneDrive, iCloud Drive and Google Drive folders.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// Initialize wires the stores and services used by the commands.
func Initialize(
	db databaseInfo,
	docs driven.DocumentStore,
	projects driven.ProjectStore,
	tags driven.TagStore,
	renderer driven.PreviewRenderer,
	library driving.Library,
	settings domain.EditorSettings,
	sessions func() driving.EditSession,
	watcher func() (DatabaseWatcher, error),
) {
	database = db
	documentStore = docs
	projectStore = projects
	tagStore = tags
	previewRenderer = renderer
	libraryService = library
	newEditSession = sessions
	watchDatabase = watcher
	if settings.Valid() {
		editorSettings = settings
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
