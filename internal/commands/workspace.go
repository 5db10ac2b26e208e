package commands

import (
	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/gitops"
	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/oplog"
)

// openWorkspace assembles the ledger runtime and operational log for the
// workspace named by --dir.
func openWorkspace(cmd *cobra.Command) (*ledger.Runtime, *oplog.Logger, error) {
	rt, err := ledger.Open(workspaceDir(cmd))
	if err != nil {
		return nil, nil, err
	}
	log, err := oplog.Open(rt.Config().LogsDir(rt.Root()))
	if err != nil {
		return nil, nil, err
	}
	return rt, log, nil
}

// commitLedger records the workspace state in git when auto-commit is on.
// The journal file is already durable at this point; a commit failure is
// surfaced but cannot undo the posting.
func commitLedger(rt *ledger.Runtime, message string) error {
	cfg := rt.Config()
	if !cfg.Git.AutoCommit || !gitops.IsRepo(rt.Root()) {
		return nil
	}
	_, err := gitops.CommitAll(rt.Root(), message, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	return err
}
