// ABOUTME: CLI command to extract todos from a transcript
// ABOUTME: Prints the structured list and optionally exports it to the sheet
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/voicememo/internal/sheets"
	"github.com/harper/voicememo/internal/todo"
	"github.com/joho/godotenv"
)

var (
	todosMemoID int64
	todosSave   bool
)

// NewTodosCmd creates the todos command
func NewTodosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todos [transcript]",
		Short: "Extract action items from a transcript",
		Long: `Extract action items from a transcript into a structured todo list.

The transcript comes from a stored memo (--memo), the argument, or
stdin. Each todo has a description, a time estimate, and a project
(defaulting to Personal). With --save the list is appended to the
configured Google Sheet and the session is cleared.

Examples:
  voicememo todos --memo 3
  voicememo todos "buy milk, should take ten minutes"
  cat transcript.txt | voicememo todos --save`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTodos,
	}

	cmd.Flags().Int64Var(&todosMemoID, "memo", 0, "Extract from a stored memo's transcription")
	cmd.Flags().BoolVar(&todosSave, "save", false, "Append the extracted todos to the configured sheet")

	return cmd
}

func runTodos(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	llmClient, err := d.requireLLM()
	if err != nil {
		return err
	}

	var transcript string
	switch {
	case todosMemoID > 0:
		memo, err := d.store.GetByID(todosMemoID)
		if err != nil {
			return fmt.Errorf("loading memo %d: %w", todosMemoID, err)
		}
		transcript = memo.Transcription
	case len(args) > 0:
		transcript = args[0]
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		transcript = string(data)
	}

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return fmt.Errorf("no transcript provided")
	}

	var writer todo.SheetWriter
	if todosSave {
		if d.cfg.SheetID == "" {
			return fmt.Errorf("GOOGLE_SHEET_ID is not set")
		}
		sheetClient, err := sheets.NewClient(sheets.Config{
			SheetID: d.cfg.SheetID,
			Token:   d.cfg.SheetsToken,
			Timeout: d.cfg.Timeout,
		})
		if err != nil {
			return fmt.Errorf("creating sheets client: %w", err)
		}
		writer = sheetClient
	}

	session := todo.NewSession(llmClient, writer, todo.LastWriterWins)

	ctx := cmd.Context()
	if err := session.Extract(ctx, transcript); err != nil {
		return fmt.Errorf("extracting todos: %w", err)
	}

	items := session.Todos()
	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No action items found.")
		return nil
	}

	for i, item := range items {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s (%s, %s)\n", i+1, item.Item, item.TimeEstimate, item.Project)
	}

	if !todosSave {
		return nil
	}

	if err := session.Save(ctx); err != nil {
		return fmt.Errorf("saving todos to sheet: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d todos to sheet %s\n", len(items), d.cfg.SheetID)
	}
	return nil
}
