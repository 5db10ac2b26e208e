package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally/internal/coa"
	"github.com/tallybook/tally/internal/cursor"
)

func TestNewCloserRequiresEquityAccount(t *testing.T) {
	chart, j := newLedger(t)

	_, err := NewCloser(chart, j, "4000") // revenue, not equity
	require.ErrorIs(t, err, coa.ErrInvalidAccountType)

	_, err = NewCloser(chart, j, "9999")
	require.ErrorIs(t, err, coa.ErrAccountNotFound)

	_, err = NewCloser(chart, j, "3000")
	require.NoError(t, err)
}

func TestCloseZeroesTemporaryAccounts(t *testing.T) {
	chart, j := newLedger(t)
	engine := NewEngine(chart, j)

	post(t, j, date(2025, 1, 10), "1000", "4000", "500.00")
	post(t, j, date(2025, 1, 20), "5000", "1000", "120.00")

	closer, err := NewCloser(chart, j, "3000")
	require.NoError(t, err)

	ids, err := closer.Close(date(2025, 1, 31))
	require.NoError(t, err)
	assert.Len(t, ids, 2, "one closing entry per non-zero temporary account")

	balances, err := engine.AllBalances(cursor.Latest())
	require.NoError(t, err)

	assert.True(t, balances["4000"].IsZero(), "revenue closed: %s", balances["4000"])
	assert.True(t, balances["5000"].IsZero(), "expenses closed: %s", balances["5000"])
	assert.True(t, balances["3000"].Equal(dec("380.00")), "retained earnings: %s", balances["3000"])
	assert.True(t, balances["1000"].Equal(dec("380.00")), "cash untouched by close: %s", balances["1000"])
}

func TestCloseNothingToDo(t *testing.T) {
	chart, j := newLedger(t)

	closer, err := NewCloser(chart, j, "3000")
	require.NoError(t, err)

	ids, err := closer.Close(date(2025, 1, 31))
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, 0, j.Len())
}

func TestCloseIsRepeatable(t *testing.T) {
	chart, j := newLedger(t)
	engine := NewEngine(chart, j)

	post(t, j, date(2025, 1, 10), "1000", "4000", "500.00")

	closer, err := NewCloser(chart, j, "3000")
	require.NoError(t, err)

	_, err = closer.Close(date(2025, 1, 31))
	require.NoError(t, err)

	// A second close finds nothing left to move.
	ids, err := closer.Close(date(2025, 1, 31))
	require.NoError(t, err)
	assert.Empty(t, ids)

	balances, err := engine.AllBalances(cursor.Latest())
	require.NoError(t, err)
	assert.True(t, balances["3000"].Equal(dec("500.00")))
}
