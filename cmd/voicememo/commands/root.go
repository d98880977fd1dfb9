// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for record, list, search, todos, delete, mcp, version
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
	format  string
)

const banner = `
██╗   ██╗ ██████╗ ██╗ ██████╗███████╗███╗   ███╗███████╗███╗   ███╗ ██████╗
██║   ██║██╔═══██╗██║██╔════╝██╔════╝████╗ ████║██╔════╝████╗ ████║██╔═══██╗
██║   ██║██║   ██║██║██║     █████╗  ██╔████╔██║█████╗  ██╔████╔██║██║   ██║
╚██╗ ██╔╝██║   ██║██║██║     ██╔══╝  ██║╚██╔╝██║██╔══╝  ██║╚██╔╝██║██║   ██║
 ╚████╔╝ ╚██████╔╝██║╚██████╗███████╗██║ ╚═╝ ██║███████╗██║ ╚═╝ ██║╚██████╔╝
  ╚═══╝   ╚═════╝ ╚═╝ ╚═════╝╚══════╝╚═╝     ╚═╝╚══════╝╚═╝     ╚═╝ ╚═════╝
`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voicememo",
		Short: "Record, transcribe, and semantically index voice memos",
		Long: banner + `
Voicememo records audio, transcribes it with Whisper, indexes the
transcript in a vector store for semantic recall, and can extract
action items from a transcript into a todo list synced to a sheet.

Each processing stage (save, transcribe, index) is independently
retriable: a network failure leaves the memo in its last-good state.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&format, "format", "auto", "Output format: auto, text, json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewRecordCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewTodosCmd())
	cmd.AddCommand(NewDeleteCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
