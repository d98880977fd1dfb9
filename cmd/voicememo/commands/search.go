// ABOUTME: CLI command for semantic search over memo transcripts
// ABOUTME: Embeds the query and ranks matches from the vector index
package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
)

var (
	searchTopK int
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search memos by meaning",
		Long: `Search memo transcripts semantically.

The query is embedded and matched against indexed transcripts; results
are ranked by similarity, not keyword overlap.

Examples:
  voicememo search "that idea about the garden"
  voicememo search --top-k 3 "standup notes"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchTopK, "top-k", 5, "Maximum number of results")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if searchTopK <= 0 {
		return fmt.Errorf("top-k must be positive, got %d", searchTopK)
	}

	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	llmClient, err := d.requireLLM()
	if err != nil {
		return err
	}
	index, err := d.requireVector()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	embedding, err := llmClient.GenerateEmbedding(ctx, args[0])
	if err != nil {
		return fmt.Errorf("embedding query: %w", err)
	}

	matches, err := index.Query(ctx, embedding, searchTopK)
	if err != nil {
		return fmt.Errorf("querying index: %w", err)
	}

	if len(matches) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
		return nil
	}

	for i, match := range matches {
		transcript := match.Metadata["transcript"]
		if transcript == "" {
			// Fall back to the stored row when the index has no metadata
			if id, convErr := strconv.ParseInt(match.ID, 10, 64); convErr == nil {
				if memo, getErr := d.store.GetByID(id); getErr == nil {
					transcript = memo.Transcription
				}
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d. [%.3f] memo %s\n", i+1, match.Score, match.ID)
		if transcript != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "   %s\n", truncate(transcript, 160))
		}
	}
	return nil
}
