package cursor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally/internal/model"
)

func TestParse(t *testing.T) {
	c, err := Parse("")
	require.NoError(t, err)
	assert.True(t, c.IsLatest())
	assert.Equal(t, "latest", c.String())

	c, err = Parse("42")
	require.NoError(t, err)
	assert.Equal(t, "entry 42", c.String())

	c, err = Parse("2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-31", c.String())

	_, err = Parse("0")
	require.Error(t, err, "ids start at 1")
	_, err = Parse("-3")
	require.Error(t, err)
	_, err = Parse("yesterday")
	require.Error(t, err)
}

func TestIncludesByID(t *testing.T) {
	c := AtID(3)

	assert.True(t, c.Includes(model.Entry{ID: 3}))
	assert.True(t, c.Includes(model.Entry{ID: 1}))
	assert.False(t, c.Includes(model.Entry{ID: 4}))
}

func TestIncludesByDate(t *testing.T) {
	boundary := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	c := AtDate(boundary)

	assert.True(t, c.Includes(model.Entry{ID: 9, Date: boundary}))
	assert.True(t, c.Includes(model.Entry{ID: 9, Date: boundary.AddDate(0, -1, 0)}))
	assert.False(t, c.Includes(model.Entry{ID: 9, Date: boundary.AddDate(0, 0, 1)}))
}

func TestLatestIncludesEverything(t *testing.T) {
	c := Latest()
	assert.True(t, c.Includes(model.Entry{ID: 1}))
	assert.True(t, c.Includes(model.Entry{ID: 1 << 40, Date: time.Now()}))
}
