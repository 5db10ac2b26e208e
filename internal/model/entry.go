package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one immutable row in the journal: a balanced double-entry of
// a single positive amount, debiting one account and crediting another.
// ID is the monotonic sequence number assigned at append time.
type Entry struct {
	ID         int64
	Date       time.Time // business date, not wall-clock append time
	DebitCode  string
	CreditCode string
	Amount     decimal.Decimal
	Memo       string
}

// Touches reports whether the entry posts to the given account code on
// either side.
func (e Entry) Touches(code string) bool {
	return e.DebitCode == code || e.CreditCode == code
}
