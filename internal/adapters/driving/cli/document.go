package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-md/inkwell/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"doc"},
	Short:   "Manage documents",
	Long:    `Create, list, search, edit and organize markdown documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently modified documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentRecent,
}

var documentFavoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List favorite documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentFavorites,
}

var documentArchivedCmd = &cobra.Command{
	Use:   "archived",
	Short: "List archived documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentArchived,
}

var documentSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search documents by title and content",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentSearch,
}

var documentNewCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a new document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDocumentNew,
}

var documentShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentContentCmd = &cobra.Command{
	Use:   "content [doc-id]",
	Short: "Print document content",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentContent,
}

var documentWriteCmd = &cobra.Command{
	Use:   "write [doc-id] [content]",
	Short: "Replace document content",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentWrite,
}

var documentRenameCmd = &cobra.Command{
	Use:   "rename [doc-id] [title]",
	Short: "Change document title",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentRename,
}

var documentFavoriteCmd = &cobra.Command{
	Use:   "favorite [doc-id]",
	Short: "Toggle the favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentFavorite,
}

var documentArchiveCmd = &cobra.Command{
	Use:   "archive [doc-id]",
	Short: "Archive a document",
	Long:  `Hides the document from listings and search. Archived documents stay on disk and can be unarchived.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentArchive,
}

var documentUnarchiveCmd = &cobra.Command{
	Use:   "unarchive [doc-id]",
	Short: "Restore an archived document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentUnarchive,
}

var documentDuplicateCmd = &cobra.Command{
	Use:   "duplicate [doc-id]",
	Short: "Duplicate a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDuplicate,
}

var documentMoveCmd = &cobra.Command{
	Use:   "move [doc-id]",
	Short: "Move a document to a project",
	Long:  `Assigns the document to the project given with --project, or unassigns it when the flag is omitted.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentMove,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document permanently",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var documentPreviewCmd = &cobra.Command{
	Use:   "preview [doc-id]",
	Short: "Render document content to HTML",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentPreview,
}

// Flags.
var (
	documentListLimit  int
	documentNewProject string
	documentMoveTarget string
)

func init() {
	documentListCmd.Flags().IntVarP(&documentListLimit, "limit", "n", 0, "Maximum number of documents to list")
	documentNewCmd.Flags().StringVarP(&documentNewProject, "project", "p", "", "Project id to create the document in")
	documentMoveCmd.Flags().StringVarP(&documentMoveTarget, "project", "p", "", "Target project id (empty unassigns)")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentRecentCmd)
	documentCmd.AddCommand(documentFavoritesCmd)
	documentCmd.AddCommand(documentArchivedCmd)
	documentCmd.AddCommand(documentSearchCmd)
	documentCmd.AddCommand(documentNewCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentContentCmd)
	documentCmd.AddCommand(documentWriteCmd)
	documentCmd.AddCommand(documentRenameCmd)
	documentCmd.AddCommand(documentFavoriteCmd)
	documentCmd.AddCommand(documentArchiveCmd)
	documentCmd.AddCommand(documentUnarchiveCmd)
	documentCmd.AddCommand(documentDuplicateCmd)
	documentCmd.AddCommand(documentMoveCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentPreviewCmd)
	rootCmd.AddCommand(documentCmd)
}

// printSummaries renders a summary listing in the shared format.
func printSummaries(cmd *cobra.Command, summaries []domain.DocumentSummary) {
	for i := range summaries {
		cmd.Printf("  %s\n", summaries[i].ID)
		cmd.Printf("    Title:    %s\n", summaries[i].Title)
		cmd.Printf("    Words:    %d\n", summaries[i].WordCount)
		cmd.Printf("    Modified: %s\n", summaries[i].ModifiedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}
	cmd.Printf("Total: %d documents\n", len(summaries))
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	docs, err := documentStore.ListAll(context.Background(), documentListLimit)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	cmd.Printf("Documents:\n\n")
	printSummaries(cmd, docs)
	return nil
}

func runDocumentRecent(cmd *cobra.Command, _ []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	docs, err := documentStore.ListRecent(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list recent documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	cmd.Printf("Recent documents:\n\n")
	printSummaries(cmd, docs)
	return nil
}

func runDocumentFavorites(cmd *cobra.Command, _ []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	docs, err := documentStore.ListFavorites(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list favorites: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No favorite documents.")
		return nil
	}

	cmd.Printf("Favorite documents:\n\n")
	printSummaries(cmd, docs)
	return nil
}

func runDocumentArchived(cmd *cobra.Command, _ []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	docs, err := documentStore.ListArchived(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list archived documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No archived documents.")
		return nil
	}

	cmd.Printf("Archived documents:\n\n")
	printSummaries(cmd, docs)
	return nil
}

func runDocumentSearch(cmd *cobra.Command, args []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	query := args[0]
	docs, err := documentStore.Search(context.Background(), query)
	if err != nil {
		return fmt.Errorf("failed to search documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Printf("No documents match %q.\n", query)
		return nil
	}

	cmd.Printf("Documents matching %q:\n\n", query)
	printSummaries(cmd, docs)
	return nil
}

func runDocumentNew(cmd *cobra.Command, args []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	title := ""
	if len(args) > 0 {
		title = args[0]
	}

	id, err := documentStore.Create(context.Background(), title, documentNewProject)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	cmd.Printf("Created document %s\n", id)
	return nil
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	doc, err := documentStore.GetByID(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Title:      %s\n", doc.Title)
	if doc.ProjectID != "" {
		cmd.Printf("  Project:    %s\n", doc.ProjectID)
	}
	cmd.Printf("  Words:      %d\n", doc.WordCount)
	cmd.Printf("  Characters: %d\n", doc.CharacterCount)
	cmd.Printf("  Favorite:   %t\n", doc.Favorite)
	cmd.Printf("  Archived:   %t\n", doc.Archived)
	cmd.Printf("  Created:    %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Modified:   %s\n", doc.ModifiedAt.Format("2006-01-02 15:04:05"))

	if len(doc.TagIDs) > 0 {
		cmd.Println("\n  Tags:")
		for _, tagID := range doc.TagIDs {
			cmd.Printf("    %s\n", tagID)
		}
	}

	return nil
}

func runDocumentContent(cmd *cobra.Command, args []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	doc, err := documentStore.GetByID(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Println(doc.Content)
	return nil
}

func runDocumentWrite(cmd *cobra.Command, args []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	if err := documentStore.UpdateContent(context.Background(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}

	cmd.Printf("Updated content of %s\n", args[0])
	return nil
}

func runDocumentRename(cmd *cobra.Command, args []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	if err := documentStore.UpdateTitle(context.Background(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to rename document: %w", err)
	}

	cmd.Printf("Renamed document %s to %q\n", args[0], args[1])
	return nil
}

func runDocumentFavorite(cmd *cobra.Command, args []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	if err := documentStore.ToggleFavorite(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to toggle favorite: %w", err)
	}

	cmd.Printf("Toggled favorite on %s\n", args[0])
	return nil
}

func runDocumentArchive(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.ArchiveDocument(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to archive document: %w", err)
	}

	cmd.Printf("Archived document %s\n", args[0])
	return nil
}

func runDocumentUnarchive(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.UnarchiveDocument(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to unarchive document: %w", err)
	}

	cmd.Printf("Unarchived document %s\n", args[0])
	return nil
}

func runDocumentDuplicate(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	id, err := libraryService.DuplicateDocument(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to duplicate document: %w", err)
	}

	cmd.Printf("Created duplicate %s\n", id)
	return nil
}

func runDocumentMove(cmd *cobra.Command, args []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	if err := documentStore.MoveToProject(context.Background(), args[0], documentMoveTarget); err != nil {
		return fmt.Errorf("failed to move document: %w", err)
	}

	if documentMoveTarget == "" {
		cmd.Printf("Unassigned document %s\n", args[0])
	} else {
		cmd.Printf("Moved document %s to project %s\n", args[0], documentMoveTarget)
	}
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	if err := documentStore.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted document %s\n", args[0])
	return nil
}

func runDocumentPreview(cmd *cobra.Command, args []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}
	if previewRenderer == nil {
		return errors.New("preview renderer not configured")
	}

	doc, err := documentStore.GetByID(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	html, err := previewRenderer.Render(doc.Content)
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}

	cmd.Println(html)
	return nil
}
