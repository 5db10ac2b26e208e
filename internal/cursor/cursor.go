// Package cursor defines the as-of marker used to bound balance and
// report computations: either an entry-id cursor, a business-date
// boundary, or the latest committed entry.
package cursor

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tallybook/tally/internal/model"
)

const dateFormat = "2006-01-02"

// Cursor bounds a read of the journal. The zero value means "latest":
// every committed entry is included.
type Cursor struct {
	id   int64
	date time.Time
}

// Latest returns a cursor that includes every committed entry.
func Latest() Cursor { return Cursor{} }

// AtID returns a cursor that includes entries with id <= id. id must be
// positive: ids start at 1, and AtID(0) is the zero value, Latest.
func AtID(id int64) Cursor { return Cursor{id: id} }

// AtDate returns a cursor that includes entries dated on or before d.
func AtDate(d time.Time) Cursor { return Cursor{date: d} }

// Parse reads an as-of token: empty means latest, a bare integer is an
// entry id, anything else must be a YYYY-MM-DD date.
func Parse(s string) (Cursor, error) {
	if s == "" {
		return Latest(), nil
	}
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		if id <= 0 {
			return Cursor{}, fmt.Errorf("invalid as-of entry id %d: ids start at 1", id)
		}
		return AtID(id), nil
	}
	d, err := time.Parse(dateFormat, s)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid as-of marker %q: want an entry id or %s date", s, dateFormat)
	}
	return AtDate(d), nil
}

// Includes reports whether the entry falls inside the cursor's bound.
func (c Cursor) Includes(e model.Entry) bool {
	if c.id > 0 && e.ID > c.id {
		return false
	}
	if !c.date.IsZero() && e.Date.After(c.date) {
		return false
	}
	return true
}

// IsLatest reports whether the cursor is unbounded.
func (c Cursor) IsLatest() bool {
	return c.id == 0 && c.date.IsZero()
}

func (c Cursor) String() string {
	switch {
	case c.id > 0:
		return fmt.Sprintf("entry %d", c.id)
	case !c.date.IsZero():
		return c.date.Format(dateFormat)
	default:
		return "latest"
	}
}
