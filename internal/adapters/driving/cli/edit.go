package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/inkwell-md/inkwell/internal/logger"
)

var documentEditCmd = &cobra.Command{
	Use:   "edit [doc-id]",
	Short: "Edit a document interactively",
	Long: `Reads lines from standard input and appends each one to the document.

The preview is re-rendered after a short pause in typing and the document is
autosaved after a longer one; ending the input (Ctrl-D) saves and exits. While
the editor runs, changes to the database file on disk are reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentEdit,
}

var documentEditQuiet bool

func init() {
	documentEditCmd.Flags().BoolVarP(&documentEditQuiet, "quiet", "q", false, "Suppress preview output")
	documentCmd.AddCommand(documentEditCmd)
}

func runDocumentEdit(cmd *cobra.Command, args []string) error {
	if newEditSession == nil {
		return errors.New("edit session not configured")
	}

	// The preview timer, the watcher goroutine and the input loop all
	// write to the command output; one mutex keeps the lines whole.
	var outMu sync.Mutex
	printf := func(format string, a ...any) {
		outMu.Lock()
		defer outMu.Unlock()
		cmd.Printf(format, a...)
	}

	session := newEditSession()
	if !documentEditQuiet {
		session.SetPreviewListener(func(html string) {
			printf("--- preview ---\n%s", html)
		})
	}
	session.SetSaveErrorListener(func(err error) {
		printf("Autosave failed: %v\n", err)
	})

	ctx := cmd.Context()
	if err := session.Open(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	printf("Editing document %s. Each line is appended; Ctrl-D saves and exits.\n", args[0])

	// Watch the database file so a sync client touching it mid-session is
	// visible instead of silently racing the autosaves.
	var watcherDone chan struct{}
	var watcher DatabaseWatcher
	if watchDatabase != nil {
		w, err := watchDatabase()
		if err != nil {
			logger.Warn("database watch unavailable: %v", err)
		} else {
			watcher = w
			watcherDone = make(chan struct{})
			go func() {
				defer close(watcherDone)
				for path := range w.Changes() {
					printf("Note: %s changed on disk\n", path)
				}
			}()
		}
	}
	stopWatcher := func() {
		if watcher == nil {
			return
		}
		watcher.Close()
		<-watcherDone
		watcher = nil
	}
	defer stopWatcher()

	buf := session.Buffer()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if buf != "" && !strings.HasSuffix(buf, "\n") {
			buf += "\n"
		}
		buf += scanner.Text()
		session.Edit(buf)
	}
	if err := scanner.Err(); err != nil {
		session.Close(ctx)
		return fmt.Errorf("reading input: %w", err)
	}

	if err := session.Close(ctx); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	stopWatcher()
	printf("Saved document %s\n", args[0])
	return nil
}
