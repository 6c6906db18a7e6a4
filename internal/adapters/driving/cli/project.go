package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long:  `Create, list, rename and delete the projects that group documents.`,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE:  runProjectList,
}

var projectNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectNew,
}

var projectRenameCmd = &cobra.Command{
	Use:   "rename [project-id] [name]",
	Short: "Rename a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectRename,
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [project-id]",
	Short: "Delete a project",
	Long: `Deletes a project. By default its documents survive and become
unassigned; pass --with-documents to delete them along with the project.`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectDelete,
}

var projectDocumentsCmd = &cobra.Command{
	Use:   "documents [project-id]",
	Short: "List the documents in a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDocuments,
}

// deleteWithDocuments selects the destructive project deletion policy.
var deleteWithDocuments bool

func init() {
	projectDeleteCmd.Flags().BoolVar(&deleteWithDocuments, "with-documents", false, "Also delete the project's documents")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectNewCmd)
	projectCmd.AddCommand(projectRenameCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	projectCmd.AddCommand(projectDocumentsCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjectList(cmd *cobra.Command, _ []string) error {
	if projectStore == nil {
		return errors.New("project store not configured")
	}

	projects, err := projectStore.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if len(projects) == 0 {
		cmd.Println("No projects found.")
		return nil
	}

	cmd.Printf("Projects:\n\n")
	for i := range projects {
		cmd.Printf("  %s\n", projects[i].ID)
		cmd.Printf("    Name:    %s\n", projects[i].Name)
		cmd.Printf("    Created: %s\n", projects[i].CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d projects\n", len(projects))
	return nil
}

func runProjectNew(cmd *cobra.Command, args []string) error {
	if projectStore == nil {
		return errors.New("project store not configured")
	}

	id, err := projectStore.Create(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	cmd.Printf("Created project %s\n", id)
	return nil
}

func runProjectRename(cmd *cobra.Command, args []string) error {
	if projectStore == nil {
		return errors.New("project store not configured")
	}

	if err := projectStore.Rename(context.Background(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to rename project: %w", err)
	}

	cmd.Printf("Renamed project %s to %q\n", args[0], args[1])
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	projectID := args[0]
	ctx := context.Background()

	if deleteWithDocuments {
		if err := libraryService.DeleteProjectWithDocuments(ctx, projectID); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		cmd.Printf("Deleted project %s and its documents\n", projectID)
		return nil
	}

	if err := libraryService.DeleteProjectKeepDocuments(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	cmd.Printf("Deleted project %s; its documents are now unassigned\n", projectID)
	return nil
}

func runProjectDocuments(cmd *cobra.Command, args []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	docs, err := documentStore.ListByProject(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list project documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Printf("No documents in project %s.\n", args[0])
		return nil
	}

	cmd.Printf("Documents in project %s:\n\n", args[0])
	printSummaries(cmd, docs)
	return nil
}
