package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tallybook/tally/internal/cursor"
	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/oplog"
	"github.com/tallybook/tally/internal/report"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate financial reports",
	}
	cmd.AddCommand(newTrialBalanceCommand())
	cmd.AddCommand(newIncomeStatementCommand())
	cmd.AddCommand(newBalanceSheetCommand())
	return cmd
}

func newTrialBalanceCommand() *cobra.Command {
	var asOfText string
	var write bool

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "One line per account in its natural column, with totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			asOf, err := cursor.Parse(asOfText)
			if err != nil {
				return err
			}
			rt, log, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			defer log.Close()

			r, err := rt.TrialBalance(asOf)
			if err != nil {
				return err
			}
			return emitReport(cmd, rt, log, r, write)
		},
	}

	cmd.Flags().StringVar(&asOfText, "as-of", "", "entry id or YYYY-MM-DD boundary (default latest)")
	cmd.Flags().BoolVar(&write, "write", false, "also write the report into the reports area")
	return cmd
}

func newIncomeStatementCommand() *cobra.Command {
	var fromText, toText string
	var write bool

	cmd := &cobra.Command{
		Use:   "income-statement",
		Short: "Revenue, expenses, and net income over a period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := time.Parse("2006-01-02", fromText)
			if err != nil {
				return fmt.Errorf("parsing --from %q: %w", fromText, err)
			}
			end, err := time.Parse("2006-01-02", toText)
			if err != nil {
				return fmt.Errorf("parsing --to %q: %w", toText, err)
			}

			rt, log, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			defer log.Close()

			r, err := rt.IncomeStatement(start, end)
			if err != nil {
				return err
			}
			return emitReport(cmd, rt, log, r, write)
		},
	}

	cmd.Flags().StringVar(&fromText, "from", "", "period start YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&toText, "to", "", "period end YYYY-MM-DD (required)")
	cmd.Flags().BoolVar(&write, "write", false, "also write the report into the reports area")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newBalanceSheetCommand() *cobra.Command {
	var asOfText string
	var write bool

	cmd := &cobra.Command{
		Use:   "balance-sheet",
		Short: "Assets, liabilities, and equity at a point in time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			asOf, err := cursor.Parse(asOfText)
			if err != nil {
				return err
			}
			rt, log, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			defer log.Close()

			r, err := rt.BalanceSheet(asOf)
			if err != nil {
				return err
			}
			return emitReport(cmd, rt, log, r, write)
		},
	}

	cmd.Flags().StringVar(&asOfText, "as-of", "", "entry id or YYYY-MM-DD boundary (default latest)")
	cmd.Flags().BoolVar(&write, "write", false, "also write the report into the reports area")
	return cmd
}

func emitReport(cmd *cobra.Command, rt *ledger.Runtime, log *oplog.Logger, r *report.Report, write bool) error {
	if err := r.Render(cmd.OutOrStdout()); err != nil {
		return err
	}
	if !write {
		return nil
	}
	path, err := rt.WriteReport(r)
	if err != nil {
		return err
	}
	log.Event("report.write",
		zap.String("kind", string(r.Kind)),
		zap.String("as_of", r.AsOf),
		zap.String("path", path),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "\nWrote %s\n", path)
	return nil
}
