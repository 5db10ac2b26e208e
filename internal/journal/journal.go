// Package journal maintains the append-only log of balanced postings.
// The journal is the book of original entry: entries are never edited or
// removed after acceptance, and corrections are made by posting an
// offsetting reversal.
package journal

import (
	"errors"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/coa"
	"github.com/tallybook/tally/internal/model"
)

var (
	// ErrInvalidAmount is returned for a zero, negative, or
	// sub-cent-precision amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrSelfPosting is returned when debit and credit name the same account.
	ErrSelfPosting = errors.New("debit and credit account are the same")
)

// AccountChecker tests whether an account code exists in the chart of
// accounts.
type AccountChecker interface {
	Exists(code string) bool
}

// Appender is the durable half of a post: when set, an entry is written
// through before it becomes visible in memory. A failed append leaves the
// journal unchanged.
type Appender interface {
	AppendEntry(e model.Entry) error
}

// Row is a candidate posting before validation and id assignment.
type Row struct {
	Date       time.Time // business date; truncated to its calendar day on posting
	DebitCode  string
	CreditCode string
	Amount     decimal.Decimal
	Memo       string
}

// Journal is an ordered, append-only sequence of entries bound to a chart
// of accounts. Posting is serialized under a single writer lock; readers
// take consistent snapshots and never observe a post that commits
// mid-read.
type Journal struct {
	mu       sync.RWMutex
	accounts AccountChecker
	appender Appender // nil = in-memory only
	entries  []model.Entry
	lastID   int64
}

// New creates an empty journal bound to a chart. appender may be nil for
// an in-memory journal.
func New(accounts AccountChecker, appender Appender) *Journal {
	return &Journal{accounts: accounts, appender: appender}
}

// Restore creates a journal from previously persisted entries, so a fresh
// process continues assigning ids after the highest one on record.
// Entries must be in strictly ascending id order.
func Restore(accounts AccountChecker, appender Appender, entries []model.Entry) (*Journal, error) {
	j := New(accounts, appender)
	var last int64
	for i, e := range entries {
		if e.ID <= last {
			return nil, fmt.Errorf("entry at position %d: id %d not ascending after %d", i, e.ID, last)
		}
		last = e.ID
	}
	j.entries = entries
	j.lastID = last
	return j, nil
}

// Post validates and appends a single entry, returning the assigned id.
// This is the only mutating operation on the journal; on any error the
// journal is unchanged.
func (j *Journal) Post(row Row) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.postLocked(row)
}

func (j *Journal) postLocked(row Row) (int64, error) {
	if err := j.validate(row); err != nil {
		return 0, err
	}
	e := model.Entry{
		ID:         j.lastID + 1,
		Date:       day(row.Date),
		DebitCode:  row.DebitCode,
		CreditCode: row.CreditCode,
		Amount:     row.Amount,
		Memo:       row.Memo,
	}
	if j.appender != nil {
		if err := j.appender.AppendEntry(e); err != nil {
			return 0, fmt.Errorf("persisting entry: %w", err)
		}
	}
	j.entries = append(j.entries, e)
	j.lastID = e.ID
	return e.ID, nil
}

// day truncates a timestamp to its calendar date in UTC. Business dates
// carry day granularity: date cursors, period filters, and the persisted
// form all compare calendar days, so an entry's date must hold no
// wall-clock time.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (j *Journal) validate(row Row) error {
	if !j.accounts.Exists(row.DebitCode) {
		return fmt.Errorf("debit account %q: %w", row.DebitCode, coa.ErrAccountNotFound)
	}
	if !j.accounts.Exists(row.CreditCode) {
		return fmt.Errorf("credit account %q: %w", row.CreditCode, coa.ErrAccountNotFound)
	}
	if row.DebitCode == row.CreditCode {
		return fmt.Errorf("account %q: %w", row.DebitCode, ErrSelfPosting)
	}
	if !row.Amount.IsPositive() {
		return fmt.Errorf("amount %s: %w", row.Amount, ErrInvalidAmount)
	}
	cents := row.Amount.Mul(decimal.NewFromInt(100))
	if !cents.Equal(cents.Floor()) {
		return fmt.Errorf("amount %s has more than 2 decimal places: %w", row.Amount, ErrInvalidAmount)
	}
	return nil
}

// EntriesSince returns a restartable sequence of entries with id greater
// than the cursor, in ascending id order. The sequence iterates a
// snapshot taken when it is first ranged, so entries appended by a
// concurrent writer are never observed mid-iteration.
func (j *Journal) EntriesSince(id int64) iter.Seq[model.Entry] {
	return func(yield func(model.Entry) bool) {
		for _, e := range j.Snapshot() {
			if e.ID <= id {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Snapshot returns the committed entries at the time of the call. Entries
// are immutable after acceptance, so the returned prefix is safe to read
// concurrently with later posts.
func (j *Journal) Snapshot() []model.Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.entries[:len(j.entries):len(j.entries)]
}

// Len returns the number of committed entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// LastID returns the highest assigned entry id, or 0 for an empty journal.
func (j *Journal) LastID() int64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.lastID
}
