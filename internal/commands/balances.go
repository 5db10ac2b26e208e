package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/cursor"
)

func newBalancesCommand() *cobra.Command {
	var asOfText string

	cmd := &cobra.Command{
		Use:   "balances [code]",
		Short: "Show derived account balances",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := cursor.Parse(asOfText)
			if err != nil {
				return err
			}

			rt, log, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			defer log.Close()

			if len(args) == 1 {
				bal, err := rt.BalanceOf(args[0], asOf)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", bal.StringFixed(2))
				return nil
			}

			balances, err := rt.AllBalances(asOf)
			if err != nil {
				return err
			}
			for a := range rt.Chart().Accounts() {
				bal, ok := balances[a.Code]
				if !ok {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-32s %14s\n", a.Code, a.Name, bal.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&asOfText, "as-of", "", "entry id or YYYY-MM-DD boundary (default latest)")
	return cmd
}
