package journal

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally/internal/coa"
	"github.com/tallybook/tally/internal/model"
)

// mockAccounts implements AccountChecker for testing.
type mockAccounts struct {
	codes map[string]bool
}

func (m *mockAccounts) Exists(code string) bool {
	return m.codes[code]
}

func newMockAccounts(codes ...string) *mockAccounts {
	m := &mockAccounts{codes: make(map[string]bool)}
	for _, c := range codes {
		m.codes[c] = true
	}
	return m
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func row(debit, credit, amount string) Row {
	return Row{
		Date:       date(2025, 1, 15),
		DebitCode:  debit,
		CreditCode: credit,
		Amount:     dec(amount),
	}
}

func TestPostAssignsSequentialIDs(t *testing.T) {
	j := New(newMockAccounts("1000", "4000"), nil)

	id1, err := j.Post(row("1000", "4000", "500.00"))
	require.NoError(t, err)
	id2, err := j.Post(row("1000", "4000", "250.00"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)
	assert.Equal(t, 2, j.Len())
	assert.Equal(t, int64(2), j.LastID())
}

func TestPostUnknownAccount(t *testing.T) {
	j := New(newMockAccounts("1000"), nil)

	_, err := j.Post(row("1000", "4000", "10.00"))
	require.ErrorIs(t, err, coa.ErrAccountNotFound)
	assert.Equal(t, 0, j.Len(), "journal must be unchanged on failure")

	_, err = j.Post(row("9999", "1000", "10.00"))
	require.ErrorIs(t, err, coa.ErrAccountNotFound)
	assert.Equal(t, 0, j.Len())
}

func TestPostSelfPosting(t *testing.T) {
	j := New(newMockAccounts("1000"), nil)

	_, err := j.Post(row("1000", "1000", "10.00"))
	require.ErrorIs(t, err, ErrSelfPosting)
	assert.Equal(t, 0, j.Len())
}

func TestPostInvalidAmount(t *testing.T) {
	j := New(newMockAccounts("1000", "4000"), nil)

	tests := []string{"0", "0.00", "-5.00", "1.005"}
	for _, amount := range tests {
		_, err := j.Post(row("1000", "4000", amount))
		require.ErrorIs(t, err, ErrInvalidAmount, "amount %s", amount)
	}
	assert.Equal(t, 0, j.Len())
}

func TestEntriesSinceCursor(t *testing.T) {
	j := New(newMockAccounts("1000", "4000"), nil)
	for range 5 {
		_, err := j.Post(row("1000", "4000", "1.00"))
		require.NoError(t, err)
	}

	var ids []int64
	for e := range j.EntriesSince(2) {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int64{3, 4, 5}, ids)

	// Restartable: a second pass sees the same entries.
	var again []int64
	for e := range j.EntriesSince(2) {
		again = append(again, e.ID)
	}
	assert.Equal(t, ids, again)
}

func TestEntriesSinceSnapshotIsolation(t *testing.T) {
	j := New(newMockAccounts("1000", "4000"), nil)
	for range 3 {
		_, err := j.Post(row("1000", "4000", "1.00"))
		require.NoError(t, err)
	}

	// A post that commits mid-iteration must not appear in this read.
	seen := 0
	for range j.EntriesSince(0) {
		if seen == 0 {
			_, err := j.Post(row("1000", "4000", "9.00"))
			require.NoError(t, err)
		}
		seen++
	}
	assert.Equal(t, 3, seen)
	assert.Equal(t, 4, j.Len())
}

func TestGlobalDebitCreditIdentity(t *testing.T) {
	j := New(newMockAccounts("1000", "2000", "4000", "5000"), nil)

	rows := []Row{
		row("1000", "4000", "500.00"),
		row("5000", "1000", "120.50"),
		row("1000", "2000", "75.25"),
		row("5000", "2000", "3.99"),
	}
	for _, r := range rows {
		_, err := j.Post(r)
		require.NoError(t, err)
	}

	perAccountDebits := decimal.Zero
	perAccountCredits := decimal.Zero
	for e := range j.EntriesSince(0) {
		perAccountDebits = perAccountDebits.Add(e.Amount)
		perAccountCredits = perAccountCredits.Add(e.Amount)
	}
	assert.True(t, perAccountDebits.Equal(perAccountCredits),
		"total debits %s must equal total credits %s", perAccountDebits, perAccountCredits)
}

type failingAppender struct{}

func (failingAppender) AppendEntry(model.Entry) error {
	return errors.New("disk full")
}

func TestPostAppenderFailureLeavesJournalUnchanged(t *testing.T) {
	j := New(newMockAccounts("1000", "4000"), failingAppender{})

	_, err := j.Post(row("1000", "4000", "10.00"))
	require.Error(t, err)
	assert.Equal(t, 0, j.Len())
	assert.Equal(t, int64(0), j.LastID())
}

func TestRestoreContinuesIDs(t *testing.T) {
	entries := []model.Entry{
		{ID: 1, Date: date(2025, 1, 1), DebitCode: "1000", CreditCode: "4000", Amount: dec("5.00")},
		{ID: 7, Date: date(2025, 1, 2), DebitCode: "1000", CreditCode: "4000", Amount: dec("6.00")},
	}
	j, err := Restore(newMockAccounts("1000", "4000"), nil, entries)
	require.NoError(t, err)
	assert.Equal(t, int64(7), j.LastID())

	id, err := j.Post(row("1000", "4000", "1.00"))
	require.NoError(t, err)
	assert.Equal(t, int64(8), id)
}

func TestRestoreRejectsNonAscendingIDs(t *testing.T) {
	entries := []model.Entry{
		{ID: 2, Date: date(2025, 1, 1), DebitCode: "1000", CreditCode: "4000", Amount: dec("5.00")},
		{ID: 2, Date: date(2025, 1, 2), DebitCode: "1000", CreditCode: "4000", Amount: dec("6.00")},
	}
	_, err := Restore(newMockAccounts("1000", "4000"), nil, entries)
	require.Error(t, err)
}

func TestPostTruncatesDateToDay(t *testing.T) {
	j := New(newMockAccounts("1000", "4000"), nil)

	stamped := time.Date(2025, 1, 15, 15, 4, 5, 987, time.FixedZone("CET", 3600))
	_, err := j.Post(Row{
		Date:       stamped,
		DebitCode:  "1000",
		CreditCode: "4000",
		Amount:     dec("500.00"),
	})
	require.NoError(t, err)

	got := j.Snapshot()[0].Date
	assert.True(t, got.Equal(date(2025, 1, 15)), "want midnight UTC, got %s", got)
}
