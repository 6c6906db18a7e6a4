package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
	Long:  `Create, list, recolor and delete tags, and attach them to documents.`,
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	Args:  cobra.NoArgs,
	RunE:  runTagList,
}

var tagNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagNew,
}

var tagRenameCmd = &cobra.Command{
	Use:   "rename [tag-id] [name]",
	Short: "Rename a tag",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagRename,
}

var tagColorCmd = &cobra.Command{
	Use:   "color [tag-id] [color]",
	Short: "Change a tag's color",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagColor,
}

var tagDeleteCmd = &cobra.Command{
	Use:   "delete [tag-id]",
	Short: "Delete a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagDelete,
}

var tagAddCmd = &cobra.Command{
	Use:   "add [doc-id] [tag-id]",
	Short: "Attach a tag to a document",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagAdd,
}

var tagRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id] [tag-id]",
	Short: "Detach a tag from a document",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagRemove,
}

var tagDocumentsCmd = &cobra.Command{
	Use:   "documents [tag-id]",
	Short: "List the documents carrying a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagDocuments,
}

// tagNewColor is a flag for the new command.
var tagNewColor string

func init() {
	tagNewCmd.Flags().StringVarP(&tagNewColor, "color", "c", "", "Hex color like #ff0000 (defaults to gray)")

	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagNewCmd)
	tagCmd.AddCommand(tagRenameCmd)
	tagCmd.AddCommand(tagColorCmd)
	tagCmd.AddCommand(tagDeleteCmd)
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRemoveCmd)
	tagCmd.AddCommand(tagDocumentsCmd)
	rootCmd.AddCommand(tagCmd)
}

func runTagList(cmd *cobra.Command, _ []string) error {
	if tagStore == nil {
		return errors.New("tag store not configured")
	}

	tags, err := tagStore.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}

	if len(tags) == 0 {
		cmd.Println("No tags found.")
		return nil
	}

	cmd.Printf("Tags:\n\n")
	for i := range tags {
		cmd.Printf("  %s\n", tags[i].ID)
		cmd.Printf("    Name:  %s\n", tags[i].Name)
		cmd.Printf("    Color: %s\n", tags[i].Color)
		cmd.Println()
	}

	cmd.Printf("Total: %d tags\n", len(tags))
	return nil
}

func runTagNew(cmd *cobra.Command, args []string) error {
	if tagStore == nil {
		return errors.New("tag store not configured")
	}

	id, err := tagStore.Create(context.Background(), args[0], tagNewColor)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	cmd.Printf("Created tag %s\n", id)
	return nil
}

func runTagRename(cmd *cobra.Command, args []string) error {
	if tagStore == nil {
		return errors.New("tag store not configured")
	}

	if err := tagStore.Rename(context.Background(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to rename tag: %w", err)
	}

	cmd.Printf("Renamed tag %s to %q\n", args[0], args[1])
	return nil
}

func runTagColor(cmd *cobra.Command, args []string) error {
	if tagStore == nil {
		return errors.New("tag store not configured")
	}

	if err := tagStore.UpdateColor(context.Background(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to update tag color: %w", err)
	}

	cmd.Printf("Updated color of tag %s to %s\n", args[0], args[1])
	return nil
}

func runTagDelete(cmd *cobra.Command, args []string) error {
	if tagStore == nil {
		return errors.New("tag store not configured")
	}

	if err := tagStore.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	cmd.Printf("Deleted tag %s\n", args[0])
	return nil
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	if tagStore == nil {
		return errors.New("tag store not configured")
	}

	if err := tagStore.AddTagToDocument(context.Background(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to tag document: %w", err)
	}

	cmd.Printf("Tagged document %s with %s\n", args[0], args[1])
	return nil
}

func runTagRemove(cmd *cobra.Command, args []string) error {
	if tagStore == nil {
		return errors.New("tag store not configured")
	}

	if err := tagStore.RemoveTagFromDocument(context.Background(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to untag document: %w", err)
	}

	cmd.Printf("Removed tag %s from document %s\n", args[1], args[0])
	return nil
}

func runTagDocuments(cmd *cobra.Command, args []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	docs, err := documentStore.ListByTag(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list tagged documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Printf("No documents carry tag %s.\n", args[0])
		return nil
	}

	cmd.Printf("Documents with tag %s:\n\n", args[0])
	printSummaries(cmd, docs)
	return nil
}
