package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/coa"
	"github.com/tallybook/tally/internal/config"
	"github.com/tallybook/tally/internal/gitops"
	"github.com/tallybook/tally/internal/store"
)

func newInitCommand() *cobra.Command {
	var name string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new tally workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := workspaceDir(cmd)
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(cmd, absDir, name, noGit)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "skip git initialization and auto-commit")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name string, noGit bool) error {
	cfg := config.Default(name)
	if noGit {
		cfg.Git.AutoCommit = false
	}
	if err := cfg.EnsureWorkspace(dir); err != nil {
		return err
	}
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Seed the default chart so postings work immediately.
	st := store.New(cfg.LedgerDir(dir))
	if err := st.SaveChart(coa.DefaultChart()); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	if cfg.Git.AutoCommit {
		if err := gitops.Init(dir); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
		hash, err := gitops.CommitAll(dir, "init: "+name, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
		if err != nil {
			return fmt.Errorf("initial commit: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized tally workspace at %s (%s)\n", dir, hash)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized tally workspace at %s\n", dir)
	return nil
}
