package model

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// Valid reports whether t is one of the five recognized account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity,
		AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// Side identifies the debit or credit column of an entry.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// NormalSide returns the side on which an account of this type carries a
// naturally positive balance: assets and expenses are debit-normal, the
// rest are credit-normal.
func (t AccountType) NormalSide() Side {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return SideDebit
	default:
		return SideCredit
	}
}

// Account represents a row in the chart of accounts. Code is the stable
// unique identifier; Type is immutable once any journal entry references
// the account.
type Account struct {
	Code        string
	Name        string
	Type        AccountType
	Description string
}

// NormalSide returns the account's natural balance side.
func (a Account) NormalSide() Side {
	return a.Type.NormalSide()
}
