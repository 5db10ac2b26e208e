package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dir string

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Double-entry accounting on plain files",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&dir, "dir", "C", ".", "workspace root")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAccountCommand())
	rootCmd.AddCommand(newPostCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newBalancesCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newCloseCommand())

	return rootCmd
}

// workspaceDir resolves the --dir persistent flag.
func workspaceDir(cmd *cobra.Command) string {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil || dir == "" {
		return "."
	}
	return dir
}
