package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally/internal/coa"
	"github.com/tallybook/tally/internal/config"
	"github.com/tallybook/tally/internal/cursor"
	"github.com/tallybook/tally/internal/journal"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/store"
)

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

// newWorkspace writes a config and default chart into a temp root.
func newWorkspace(t *testing.T) (string, *config.Config) {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default("Test Biz")
	cfg.Git.AutoCommit = false
	require.NoError(t, cfg.EnsureWorkspace(root))
	require.NoError(t, config.Save(filepath.Join(root, config.FileName), cfg))
	require.NoError(t, store.New(cfg.LedgerDir(root)).SaveChart(coa.DefaultChart()))
	return root, cfg
}

func TestOpenFreshWorkspace(t *testing.T) {
	root, _ := newWorkspace(t)

	rt, err := Open(root)
	require.NoError(t, err)
	assert.Equal(t, 6, rt.Chart().Len())
	assert.Equal(t, 0, rt.Journal().Len())
}

func TestCreateAccountPersists(t *testing.T) {
	root, _ := newWorkspace(t)
	rt, err := Open(root)
	require.NoError(t, err)

	err = rt.CreateAccount(model.Account{Code: "5100", Name: "Rent", Type: model.AccountTypeExpense})
	require.NoError(t, err)

	err = rt.CreateAccount(model.Account{Code: "5100", Name: "Rent Again", Type: model.AccountTypeExpense})
	require.ErrorIs(t, err, coa.ErrDuplicateAccount)

	reopened, err := Open(root)
	require.NoError(t, err)
	assert.True(t, reopened.Chart().Exists("5100"))
}

func TestPersistReloadRoundTrip(t *testing.T) {
	root, _ := newWorkspace(t)
	rt, err := Open(root)
	require.NoError(t, err)

	id1, err := rt.Post(journal.Row{Date: date(2025, 1, 15), DebitCode: "1000", CreditCode: "4000", Amount: dec("500.00"), Memo: "sale"})
	require.NoError(t, err)
	id2, err := rt.Post(journal.Row{Date: date(2025, 1, 20), DebitCode: "5000", CreditCode: "1000", Amount: dec("120.00")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)

	before, err := rt.AllBalances(cursor.Latest())
	require.NoError(t, err)

	// A fresh process reloads the same state and continues the sequence.
	reopened, err := Open(root)
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.Journal().Len())
	assert.Equal(t, int64(2), reopened.Journal().LastID())

	entries := reopened.Journal().Snapshot()
	assert.Equal(t, int64(1), entries[0].ID)
	assert.Equal(t, "sale", entries[0].Memo)

	after, err := reopened.AllBalances(cursor.Latest())
	require.NoError(t, err)
	require.Len(t, after, len(before))
	for code, want := range before {
		assert.True(t, want.Equal(after[code]), "balance of %s: %s != %s", code, want, after[code])
	}

	id3, err := reopened.Post(journal.Row{Date: date(2025, 1, 25), DebitCode: "1000", CreditCode: "4000", Amount: dec("1.00")})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id3)
}

func TestFailedPostNotPersisted(t *testing.T) {
	root, _ := newWorkspace(t)
	rt, err := Open(root)
	require.NoError(t, err)

	_, err = rt.Post(journal.Row{Date: date(2025, 1, 15), DebitCode: "1000", CreditCode: "1000", Amount: dec("10.00")})
	require.ErrorIs(t, err, journal.ErrSelfPosting)

	reopened, err := Open(root)
	require.NoError(t, err)
	assert.Equal(t, 0, reopened.Journal().Len())
}

func TestPostBatchDurability(t *testing.T) {
	root, _ := newWorkspace(t)
	rt, err := Open(root)
	require.NoError(t, err)

	rows := []journal.Row{
		{Date: date(2025, 1, 1), DebitCode: "1000", CreditCode: "4000", Amount: dec("10.00")},
		{Date: date(2025, 1, 2), DebitCode: "1000", CreditCode: "9999", Amount: dec("20.00")},
		{Date: date(2025, 1, 3), DebitCode: "1000", CreditCode: "4000", Amount: dec("30.00")},
	}

	ids, rowErrs, err := rt.PostBatch(rows, journal.BestEffort)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	require.Len(t, rowErrs, 1)
	assert.Equal(t, 2, rowErrs[0].Row)

	reopened, err := Open(root)
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.Journal().Len())
}

func TestWriteReportDeterministic(t *testing.T) {
	root, cfg := newWorkspace(t)
	rt, err := Open(root)
	require.NoError(t, err)

	_, err = rt.Post(journal.Row{Date: date(2025, 1, 15), DebitCode: "1000", CreditCode: "4000", Amount: dec("500.00")})
	require.NoError(t, err)

	r, err := rt.TrialBalance(cursor.Latest())
	require.NoError(t, err)
	path, err := rt.WriteReport(r)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.ReportsDir(root), "trial-balance.txt"), path)

	first, err := os.ReadFile(path)
	require.NoError(t, err)

	r2, err := rt.TrialBalance(cursor.Latest())
	require.NoError(t, err)
	_, err = rt.WriteReport(r2)
	require.NoError(t, err)

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second, "identical inputs render identical bytes")
}

func TestRuntimeClose(t *testing.T) {
	root, _ := newWorkspace(t)
	rt, err := Open(root)
	require.NoError(t, err)

	_, err = rt.Post(journal.Row{Date: date(2025, 1, 15), DebitCode: "1000", CreditCode: "4000", Amount: dec("500.00")})
	require.NoError(t, err)

	ids, err := rt.Close(date(2025, 1, 31))
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	retained, err := rt.BalanceOf("3000", cursor.Latest())
	require.NoError(t, err)
	assert.True(t, retained.Equal(dec("500.00")))
}

func TestSameDayReportStableAcrossReload(t *testing.T) {
	root, _ := newWorkspace(t)
	rt, err := Open(root)
	require.NoError(t, err)

	// The CLI defaults an undated post to the current wall-clock time;
	// the stored business date must still be the calendar day.
	stamped := time.Date(2025, 1, 15, 15, 4, 5, 0, time.Local)
	_, err = rt.Post(journal.Row{Date: stamped, DebitCode: "1000", CreditCode: "4000", Amount: dec("500.00")})
	require.NoError(t, err)

	day := date(2025, 1, 15)
	before, err := rt.IncomeStatement(day, day)
	require.NoError(t, err)
	assert.True(t, before.Total.Equal(dec("500.00")), "same-day report misses the posting: %s", before.Total)

	reopened, err := Open(root)
	require.NoError(t, err)
	after, err := reopened.IncomeStatement(day, day)
	require.NoError(t, err)
	assert.Equal(t, before.String(), after.String())

	asOf, err := reopened.BalanceOf("1000", cursor.AtDate(day))
	require.NoError(t, err)
	assert.True(t, asOf.Equal(dec("500.00")))
}
