package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tallybook/tally/internal/model"
)

func newAccountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the chart of accounts",
	}
	cmd.AddCommand(newAccountAddCommand())
	cmd.AddCommand(newAccountListCommand())
	return cmd
}

func newAccountAddCommand() *cobra.Command {
	var code, name, accountType, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, log, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			defer log.Close()

			err = rt.CreateAccount(model.Account{
				Code:        code,
				Name:        name,
				Type:        model.AccountType(accountType),
				Description: description,
			})
			if err != nil {
				return err
			}

			log.Event("account.create",
				zap.String("code", code),
				zap.String("type", accountType),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Created account %s %s (%s)\n", code, name, accountType)
			return commitLedger(rt, "account: add "+code)
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "account code (required)")
	cmd.Flags().StringVar(&name, "name", "", "account name (required)")
	cmd.Flags().StringVar(&accountType, "type", "", "asset|liability|equity|revenue|expense (required)")
	cmd.Flags().StringVar(&description, "description", "", "account description")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newAccountListCommand() *cobra.Command {
	var accountType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts in chart order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, log, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			defer log.Close()

			accounts := rt.Chart().Accounts()
			if accountType != "" {
				t := model.AccountType(accountType)
				if !t.Valid() {
					return fmt.Errorf("unknown account type %q", accountType)
				}
				accounts = rt.Chart().ByType(t)
			}

			for a := range accounts {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-32s %-10s %s\n", a.Code, a.Name, a.Type, a.NormalSide())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountType, "type", "", "filter by account type")
	return cmd
}
