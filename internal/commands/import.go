package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tallybook/tally/internal/importer"
	"github.com/tallybook/tally/internal/journal"
	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/oplog"
)

func newImportCommand() *cobra.Command {
	var policyText string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Post transaction rows from a CSV file, or every file waiting in the ingest area",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No default: partial application of financial data must be
			// an explicit choice.
			policy, err := journal.ParsePolicy(policyText)
			if err != nil {
				return err
			}

			rt, log, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			defer log.Close()

			if len(args) == 1 {
				return importFile(cmd, rt, log, args[0], policy)
			}
			return importIngestDir(cmd, rt, log, policy)
		},
	}

	cmd.Flags().StringVar(&policyText, "policy", "", "fail-fast or best-effort (required)")
	_ = cmd.MarkFlagRequired("policy")

	return cmd
}

func importFile(cmd *cobra.Command, rt *ledger.Runtime, log *oplog.Logger, path string, policy journal.Policy) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	runID := uuid.NewString()
	result, err := rt.ImportCSV(f, policy)
	if err != nil {
		log.Event("import.failed",
			zap.String("run_id", runID),
			zap.String("file", filepath.Base(path)),
			zap.Error(err),
		)
		return err
	}

	log.Event("import.done",
		zap.String("run_id", runID),
		zap.String("file", filepath.Base(path)),
		zap.String("policy", string(policy)),
		zap.Int("posted", len(result.EntryIDs)),
		zap.Int("failed", len(result.RowErrors)),
	)

	fmt.Fprintf(cmd.OutOrStdout(), "%s: posted %d entries, %d rows failed\n",
		filepath.Base(path), len(result.EntryIDs), len(result.RowErrors))
	for _, re := range result.RowErrors {
		fmt.Fprintf(cmd.OutOrStdout(), "  %v\n", re)
	}
	return commitLedger(rt, fmt.Sprintf("import: %s (%d entries)", filepath.Base(path), len(result.EntryIDs)))
}

func importIngestDir(cmd *cobra.Command, rt *ledger.Runtime, log *oplog.Logger, policy journal.Policy) error {
	ingestDir := rt.Config().IngestDir(rt.Root())
	files, err := importer.Scan(ingestDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import")
		return nil
	}

	for _, file := range files {
		if err := importFile(cmd, rt, log, file.Path, policy); err != nil {
			return err
		}
		if err := importer.MarkProcessed(ingestDir, file.Name); err != nil {
			return err
		}
	}
	return nil
}
