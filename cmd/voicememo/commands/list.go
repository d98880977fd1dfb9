// ABOUTME: CLI command to list saved voice memos
// ABOUTME: Shows id, age, pipeline progress, and a transcript preview
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved voice memos",
		Long: `List saved voice memos, newest first.

Each row shows how far the memo has made it through the pipeline:
saved, transcribed, or indexed.

Examples:
  voicememo list
  voicememo list --format json`,
		RunE: runList,
	}

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	memos, err := d.store.GetAll()
	if err != nil {
		return fmt.Errorf("listing memos: %w", err)
	}

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(memos)
	}

	if len(memos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No memos recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRECORDED\tSTAGE\tTRANSCRIPT")
	for _, m := range memos {
		stage := "saved"
		if m.VectorID != "" {
			stage = "indexed"
		} else if m.Transcription != "" {
			stage = "transcribed"
		}
		preview := m.Transcription
		if preview == "" {
			preview = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", m.ID, formatTime(m.CreatedAt), stage, truncate(preview, 60))
	}
	return w.Flush()
}
