package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tallybook/tally/internal/journal"
)

func newPostCommand() *cobra.Command {
	var debit, credit, amountText, dateText, memo string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Append one balanced entry to the journal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, log, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			defer log.Close()

			amount, err := decimal.NewFromString(amountText)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amountText, err)
			}

			date := time.Now()
			if dateText != "" {
				date, err = time.Parse("2006-01-02", dateText)
				if err != nil {
					return fmt.Errorf("parsing date %q: %w", dateText, err)
				}
			}

			id, err := rt.Post(journal.Row{
				Date:       date,
				DebitCode:  debit,
				CreditCode: credit,
				Amount:     amount,
				Memo:       memo,
			})
			if err != nil {
				return err
			}

			log.Event("journal.post",
				zap.Int64("entry_id", id),
				zap.String("debit", debit),
				zap.String("credit", credit),
				zap.String("amount", amount.StringFixed(2)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Posted entry %d: debit %s, credit %s, %s\n",
				id, debit, credit, amount.StringFixed(2))
			return commitLedger(rt, fmt.Sprintf("post: entry %d", id))
		},
	}

	cmd.Flags().StringVar(&debit, "debit", "", "debit account code (required)")
	cmd.Flags().StringVar(&credit, "credit", "", "credit account code (required)")
	cmd.Flags().StringVar(&amountText, "amount", "", "positive decimal amount (required)")
	cmd.Flags().StringVar(&dateText, "date", "", "business date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&memo, "memo", "", "optional memo")
	_ = cmd.MarkFlagRequired("debit")
	_ = cmd.MarkFlagRequired("credit")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
