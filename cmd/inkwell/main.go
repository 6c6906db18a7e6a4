// Command inkwell is a local-first manager for markdown documents backed by
// a single SQLite file.
package main

import (
	"fmt"
	"os"

	"github.com/inkwell-md/inkwell/internal/adapters/driven/config/file"
	"github.com/inkwell-md/inkwell/internal/adapters/driven/preview/goldmark"
	"github.com/inkwell-md/inkwell/internal/adapters/driven/storage/sqlite"
	"github.com/inkwell-md/inkwell/internal/adapters/driven/watch"
	"github.com/inkwell-md/inkwell/internal/adapters/driving/cli"
	"github.com/inkwell-md/inkwell/internal/core/ports/driving"
	"github.com/inkwell-md/inkwell/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	db, err := sqlite.Open(cfg.GetString(file.KeyDatabasePath))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	docs := db.DocumentStore()
	projects := db.ProjectStore()
	library := services.NewLibrary(docs, projects)
	renderer := goldmark.NewRenderer()
	settings := cfg.EditorSettings()

	cli.Initialize(db, docs, projects, db.TagStore(), renderer, library, settings,
		func() driving.EditSession {
			return services.NewEditSession(docs, renderer, settings)
		},
		func() (cli.DatabaseWatcher, error) {
			return watch.NewDBWatcher(db.Path())
		})
	return cli.Execute()
}
