package balance

import (
	"fmt"
	"time"

	"github.com/tallybook/tally/internal/coa"
	"github.com/tallybook/tally/internal/journal"
	"github.com/tallybook/tally/internal/model"
)

// Closer posts period-end closing entries: it zeroes every revenue and
// expense account by offsetting its balance into a permanent equity
// account (retained earnings). History is never edited; closing is just
// more postings.
type Closer struct {
	chart    *coa.Chart
	journal  *journal.Journal
	retained string
}

// NewCloser creates a Closer targeting the given retained-earnings
// account, which must exist and be an equity account.
func NewCloser(chart *coa.Chart, j *journal.Journal, retainedCode string) (*Closer, error) {
	acct, err := chart.Get(retainedCode)
	if err != nil {
		return nil, err
	}
	if acct.Type != model.AccountTypeEquity {
		return nil, fmt.Errorf("closing account %q is %s, want equity: %w",
			retainedCode, acct.Type, coa.ErrInvalidAccountType)
	}
	return &Closer{chart: chart, journal: j, retained: retainedCode}, nil
}

// Close posts one closing entry per revenue or expense account with a
// non-zero balance, dated periodEnd, and returns the posted entry ids.
// Revenue (credit-normal) is closed by debiting it against retained
// earnings; expenses the other way around. A negative balance flips the
// direction, since posted amounts must stay positive.
func (c *Closer) Close(periodEnd time.Time) ([]int64, error) {
	engine := NewEngine(c.chart, c.journal)
	balances, err := engine.PeriodBalances(time.Time{}, periodEnd)
	if err != nil {
		return nil, err
	}

	var ids []int64
	for acct := range c.chart.Accounts() {
		if acct.Type != model.AccountTypeRevenue && acct.Type != model.AccountTypeExpense {
			continue
		}
		bal := balances[acct.Code]
		if bal.IsZero() {
			continue
		}

		debit, credit := acct.Code, c.retained
		if acct.Type == model.AccountTypeExpense {
			debit, credit = c.retained, acct.Code
		}
		if bal.IsNegative() {
			debit, credit = credit, debit
		}

		id, err := c.journal.Post(journal.Row{
			Date:       periodEnd,
			DebitCode:  debit,
			CreditCode: credit,
			Amount:     bal.Abs(),
			Memo:       fmt.Sprintf("closing entry: %s (%s)", acct.Name, acct.Code),
		})
		if err != nil {
			return ids, fmt.Errorf("closing %q: %w", acct.Code, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
