// Package report renders the three canonical financial reports from
// balance-engine output: trial balance, income statement, and balance
// sheet. Reports are pure functions of (chart, journal prefix):
// regenerating from the same inputs is byte-identical.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/balance"
	"github.com/tallybook/tally/internal/coa"
	"github.com/tallybook/tally/internal/cursor"
	"github.com/tallybook/tally/internal/model"
)

var (
	// ErrUnbalancedLedger is returned when trial-balance totals differ.
	// The balance engine's integrity check should make this unreachable,
	// but reports are the externally visible contract and re-check.
	ErrUnbalancedLedger = errors.New("trial balance totals differ")
	// ErrBalanceSheetImbalance is returned when assets do not equal
	// liabilities plus equity, exactly.
	ErrBalanceSheetImbalance = errors.New("balance sheet does not balance")
)

// Kind names a report type.
type Kind string

const (
	KindTrialBalance    Kind = "trial-balance"
	KindIncomeStatement Kind = "income-statement"
	KindBalanceSheet    Kind = "balance-sheet"
)

// Line is one report row: an account or category with either a
// debit/credit column pair (trial balance) or a single signed amount.
type Line struct {
	Code   string // empty for category and derived lines
	Label  string
	Debit  decimal.Decimal
	Credit decimal.Decimal
	Amount decimal.Decimal
}

// Report is a rendered-ready financial report.
type Report struct {
	Kind        Kind
	AsOf        string // cursor or period marker
	Lines       []Line
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Total       decimal.Decimal // net income, or total assets
}

// Generator produces reports from a chart and balance engine. It holds
// no mutable state, so concurrent generation is safe.
type Generator struct {
	chart  *coa.Chart
	engine *balance.Engine
}

// NewGenerator creates a Generator.
func NewGenerator(chart *coa.Chart, engine *balance.Engine) *Generator {
	return &Generator{chart: chart, engine: engine}
}

// TrialBalance lists every account with a non-zero balance in its natural
// column, in chart order, with a totals row. A balance that is negative
// on its normal side appears as a positive amount in the opposite column.
func (g *Generator) TrialBalance(asOf cursor.Cursor) (*Report, error) {
	balances, err := g.engine.AllBalances(asOf)
	if err != nil {
		return nil, err
	}

	r := &Report{Kind: KindTrialBalance, AsOf: asOf.String()}
	for acct := range g.chart.Accounts() {
		bal, ok := balances[acct.Code]
		if !ok || bal.IsZero() {
			continue
		}
		line := Line{Code: acct.Code, Label: acct.Name}
		side := acct.NormalSide()
		if bal.IsNegative() {
			bal = bal.Abs()
			side = opposite(side)
		}
		if side == model.SideDebit {
			line.Debit = bal
		} else {
			line.Credit = bal
		}
		r.TotalDebit = r.TotalDebit.Add(line.Debit)
		r.TotalCredit = r.TotalCredit.Add(line.Credit)
		r.Lines = append(r.Lines, line)
	}

	if !r.TotalDebit.Equal(r.TotalCredit) {
		return nil, fmt.Errorf("debits %s, credits %s: %w",
			r.TotalDebit.StringFixed(2), r.TotalCredit.StringFixed(2), ErrUnbalancedLedger)
	}
	return r, nil
}

// IncomeStatement sums revenue and expense balances over entries dated
// within [start, end] and computes net income as revenue minus expenses.
func (g *Generator) IncomeStatement(start, end time.Time) (*Report, error) {
	balances, err := g.engine.PeriodBalances(start, end)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Kind: KindIncomeStatement,
		AsOf: fmt.Sprintf("%s .. %s", start.Format("2006-01-02"), end.Format("2006-01-02")),
	}
	revenue := g.section(r, model.AccountTypeRevenue, balances, decimal.NewFromInt(1))
	expenses := g.section(r, model.AccountTypeExpense, balances, decimal.NewFromInt(-1))
	r.Total = revenue.Add(expenses) // expense lines carry negative amounts
	return r, nil
}

// BalanceSheet lists asset, liability, and equity balances as of a point
// in time. Un-closed revenue and expense balances are rolled into equity
// as a derived "Current Earnings" line, so the accounting equation holds
// without mutating the journal; after an explicit period close the line
// is simply zero and omitted.
func (g *Generator) BalanceSheet(asOf cursor.Cursor) (*Report, error) {
	balances, err := g.engine.AllBalances(asOf)
	if err != nil {
		return nil, err
	}

	r := &Report{Kind: KindBalanceSheet, AsOf: asOf.String()}
	assets := g.section(r, model.AccountTypeAsset, balances, decimal.NewFromInt(1))
	liabilities := g.section(r, model.AccountTypeLiability, balances, decimal.NewFromInt(1))
	equity := g.section(r, model.AccountTypeEquity, balances, decimal.NewFromInt(1))

	earnings := decimal.Zero
	for acct := range g.chart.Accounts() {
		switch acct.Type {
		case model.AccountTypeRevenue:
			earnings = earnings.Add(balances[acct.Code])
		case model.AccountTypeExpense:
			earnings = earnings.Sub(balances[acct.Code])
		}
	}
	if !earnings.IsZero() {
		r.Lines = append(r.Lines, Line{Label: "Current Earnings", Amount: earnings})
		equity = equity.Add(earnings)
	}

	r.Total = assets
	if !assets.Equal(liabilities.Add(equity)) {
		return nil, fmt.Errorf("assets %s != liabilities %s + equity %s: %w",
			assets.StringFixed(2), liabilities.StringFixed(2), equity.StringFixed(2),
			ErrBalanceSheetImbalance)
	}
	return r, nil
}

// section appends one line per posted account of the given type, in chart
// order, returning the section total. sign -1 renders the amounts negated
// (expense lines on the income statement).
func (g *Generator) section(r *Report, t model.AccountType, balances map[string]decimal.Decimal, sign decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for acct := range g.chart.ByType(t) {
		bal, ok := balances[acct.Code]
		if !ok || bal.IsZero() {
			continue
		}
		amount := bal.Mul(sign)
		r.Lines = append(r.Lines, Line{Code: acct.Code, Label: acct.Name, Amount: amount})
		total = total.Add(amount)
	}
	return total
}

func opposite(s model.Side) model.Side {
	if s == model.SideDebit {
		return model.SideCredit
	}
	return model.SideDebit
}
