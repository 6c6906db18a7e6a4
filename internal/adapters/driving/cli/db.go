package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Inspect the database",
	Long:  `Show database location and journal configuration, and verify file integrity.`,
}

var dbInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show database info",
	Args:  cobra.NoArgs,
	RunE:  runDBInfo,
}

var dbCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Run an integrity check",
	Long: `Runs SQLite's integrity check. Useful after a cloud sync client has
touched the database file from another machine.`,
	Args: cobra.NoArgs,
	RunE: runDBCheck,
}

func init() {
	dbCmd.AddCommand(dbInfoCmd)
	dbCmd.AddCommand(dbCheckCmd)
	rootCmd.AddCommand(dbCmd)
}

func runDBInfo(cmd *cobra.Command, _ []string) error {
	if database == nil {
		return errors.New("database not configured")
	}

	cmd.Printf("Database: %s\n\n", database.Path())
	cmd.Printf("  Journal mode: %s\n", database.JournalMode())
	cmd.Printf("  Cloud-synced: %t\n", database.CloudSynced())
	cmd.Printf("  Preview debounce: %s\n", editorSettings.PreviewDebounce)
	cmd.Printf("  Save debounce:    %s\n", editorSettings.SaveDebounce)
	return nil
}

func runDBCheck(cmd *cobra.Command, _ []string) error {
	if database == nil {
		return errors.New("database not configured")
	}

	problem, err := database.CheckIntegrity()
	if err != nil {
		return fmt.Errorf("failed to check integrity: %w", err)
	}

	if problem == "" {
		cmd.Println("Database integrity: ok")
		return nil
	}

	cmd.Printf("Database integrity problem: %s\n", problem)
	return nil
}
