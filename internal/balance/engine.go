// Package balance derives account balances from the journal. Balances
// are never stored: every number is a pure fold over the entry log, so
// it is always traceable to journal entries and never drifts.
package balance

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/coa"
	"github.com/tallybook/tally/internal/cursor"
	"github.com/tallybook/tally/internal/journal"
	"github.com/tallybook/tally/internal/model"
)

// ErrLedgerIntegrity signals that the journal violates the global
// double-entry identity. It indicates corrupted storage and is fatal:
// the engine refuses to produce numbers from a provably inconsistent
// journal.
var ErrLedgerIntegrity = errors.New("ledger integrity violation")

// Engine computes balances from a chart and a journal.
type Engine struct {
	chart   *coa.Chart
	journal *journal.Journal
}

// NewEngine creates an Engine bound to a chart and journal.
func NewEngine(chart *coa.Chart, j *journal.Journal) *Engine {
	return &Engine{chart: chart, journal: j}
}

// BalanceOf folds all entries up to the cursor and returns the signed
// balance of one account by its normal-side convention: debit-normal
// accounts report debits minus credits, credit-normal accounts the
// reverse.
func (e *Engine) BalanceOf(code string, asOf cursor.Cursor) (decimal.Decimal, error) {
	acct, err := e.chart.Get(code)
	if err != nil {
		return decimal.Zero, err
	}

	debits, credits := decimal.Zero, decimal.Zero
	for entry := range e.journal.EntriesSince(0) {
		if !entry.Touches(code) || !asOf.Includes(entry) {
			continue
		}
		if entry.DebitCode == code {
			debits = debits.Add(entry.Amount)
		}
		if entry.CreditCode == code {
			credits = credits.Add(entry.Amount)
		}
	}
	return signed(acct, debits, credits), nil
}

// AllBalances computes every posted account's balance in a single pass
// over the entry sequence. Accounts with no postings up to the cursor are
// absent from the map. The global double-entry identity is checked on
// every call; a violation is surfaced as ErrLedgerIntegrity.
func (e *Engine) AllBalances(asOf cursor.Cursor) (map[string]decimal.Decimal, error) {
	return e.fold(func(entry model.Entry) bool { return asOf.Includes(entry) })
}

// PeriodBalances computes balances restricted to entries whose business
// date falls within [start, end]. Used for period-scoped reports such as
// the income statement.
func (e *Engine) PeriodBalances(start, end time.Time) (map[string]decimal.Decimal, error) {
	return e.fold(func(entry model.Entry) bool {
		return !entry.Date.Before(start) && !entry.Date.After(end)
	})
}

func (e *Engine) fold(include func(model.Entry) bool) (map[string]decimal.Decimal, error) {
	debits := make(map[string]decimal.Decimal)
	credits := make(map[string]decimal.Decimal)
	for entry := range e.journal.EntriesSince(0) {
		if !include(entry) {
			continue
		}
		debits[entry.DebitCode] = debits[entry.DebitCode].Add(entry.Amount)
		credits[entry.CreditCode] = credits[entry.CreditCode].Add(entry.Amount)
	}

	balances := make(map[string]decimal.Decimal, len(debits)+len(credits))
	debitNormal, creditNormal := decimal.Zero, decimal.Zero
	for code := range union(debits, credits) {
		acct, err := e.chart.Get(code)
		if err != nil {
			return nil, fmt.Errorf("entry references account %q not in chart: %w", code, ErrLedgerIntegrity)
		}
		b := signed(acct, debits[code], credits[code])
		balances[code] = b
		if acct.NormalSide() == model.SideDebit {
			debitNormal = debitNormal.Add(b)
		} else {
			creditNormal = creditNormal.Add(b)
		}
	}
	if !debitNormal.Equal(creditNormal) {
		return nil, fmt.Errorf("debit-normal total %s != credit-normal total %s: %w",
			debitNormal.StringFixed(2), creditNormal.StringFixed(2), ErrLedgerIntegrity)
	}
	return balances, nil
}

func signed(acct model.Account, debits, credits decimal.Decimal) decimal.Decimal {
	if acct.NormalSide() == model.SideDebit {
		return debits.Sub(credits)
	}
	return credits.Sub(debits)
}

func union(a, b map[string]decimal.Decimal) map[string]struct{} {
	codes := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		codes[k] = struct{}{}
	}
	for k := range b {
		codes[k] = struct{}{}
	}
	return codes
}
