package coa

import "github.com/tallybook/tally/internal/model"

// DefaultChart returns the starter chart of accounts written by `tally init`.
func DefaultChart() []model.Account {
	return []model.Account{
		{Code: "1000", Name: "Cash", Type: model.AccountTypeAsset, Description: "Cash and cash equivalents"},
		{Code: "1100", Name: "Accounts Receivable", Type: model.AccountTypeAsset, Description: "Amounts owed by customers"},
		{Code: "2000", Name: "Accounts Payable", Type: model.AccountTypeLiability, Description: "Amounts owed to suppliers"},
		{Code: "3000", Name: "Retained Earnings", Type: model.AccountTypeEquity, Description: "Accumulated earnings"},
		{Code: "4000", Name: "Revenue", Type: model.AccountTypeRevenue},
		{Code: "5000", Name: "Expenses", Type: model.AccountTypeExpense},
	}
}
