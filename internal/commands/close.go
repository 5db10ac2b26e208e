package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCloseCommand() *cobra.Command {
	var dateText string

	cmd := &cobra.Command{
		Use:   "close",
		Short: "Post period-end closing entries into retained earnings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			periodEnd, err := time.Parse("2006-01-02", dateText)
			if err != nil {
				return fmt.Errorf("parsing --date %q: %w", dateText, err)
			}

			rt, log, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			defer log.Close()

			ids, err := rt.Close(periodEnd)
			if err != nil {
				return err
			}

			log.Event("period.close",
				zap.String("period_end", dateText),
				zap.Int64s("entry_ids", ids),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Posted %d closing entries\n", len(ids))
			return commitLedger(rt, "close: period ending "+dateText)
		},
	}

	cmd.Flags().StringVar(&dateText, "date", "", "period end YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}
