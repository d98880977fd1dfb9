// ABOUTME: CLI command to delete a memo
// ABOUTME: Removes the row, the audio file, and the vector index entry
package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
)

// NewDeleteCmd creates the delete command
func NewDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a memo",
		Long: `Delete a memo by id.

Removes the database row, the audio file on disk, and the vector index
entry if the memo was indexed.

Examples:
  voicememo delete 3`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid memo id %q", args[0])
	}

	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	repo := d.repository()
	res := repo.DeleteMemoByID(cmd.Context(), id)
	if res.IsFailure() {
		return fmt.Errorf("deleting memo %d: %w", id, res.Err())
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted memo %d\n", id)
	}
	return nil
}
