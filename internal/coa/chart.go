// Package coa maintains the chart of accounts: the registry of account
// codes, names, and types that every journal posting is validated against.
package coa

import (
	"errors"
	"fmt"
	"iter"

	"github.com/tallybook/tally/internal/model"
)

var (
	// ErrDuplicateAccount is returned when a code is already registered.
	ErrDuplicateAccount = errors.New("duplicate account code")
	// ErrAccountNotFound is returned when a code is not in the chart.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidAccountType is returned for a type outside the five
	// recognized account types.
	ErrInvalidAccountType = errors.New("invalid account type")
)

// Chart is the in-memory chart of accounts. Accounts are kept in
// insertion order so listings and reports are deterministic.
type Chart struct {
	order  []string
	byCode map[string]model.Account
}

// NewChart creates an empty chart.
func NewChart() *Chart {
	return &Chart{byCode: make(map[string]model.Account)}
}

// NewChartFrom creates a chart pre-populated with accounts, in order.
// It fails on the first duplicate code or invalid type.
func NewChartFrom(accounts []model.Account) (*Chart, error) {
	c := NewChart()
	for _, a := range accounts {
		if err := c.Create(a); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Create registers a new account. The account's normal side is derived
// from its type and never stored separately.
func (c *Chart) Create(a model.Account) error {
	if !a.Type.Valid() {
		return fmt.Errorf("account %q type %q: %w", a.Code, a.Type, ErrInvalidAccountType)
	}
	if a.Code == "" {
		return fmt.Errorf("account with empty code: %w", ErrInvalidAccountType)
	}
	if _, ok := c.byCode[a.Code]; ok {
		return fmt.Errorf("account %q: %w", a.Code, ErrDuplicateAccount)
	}
	c.byCode[a.Code] = a
	c.order = append(c.order, a.Code)
	return nil
}

// Get returns the account registered under code.
func (c *Chart) Get(code string) (model.Account, error) {
	a, ok := c.byCode[code]
	if !ok {
		return model.Account{}, fmt.Errorf("account %q: %w", code, ErrAccountNotFound)
	}
	return a, nil
}

// Exists reports whether code is registered.
func (c *Chart) Exists(code string) bool {
	_, ok := c.byCode[code]
	return ok
}

// Len returns the number of registered accounts.
func (c *Chart) Len() int {
	return len(c.order)
}

// Accounts returns a restartable sequence of all accounts in insertion
// order.
func (c *Chart) Accounts() iter.Seq[model.Account] {
	return func(yield func(model.Account) bool) {
		for _, code := range c.order {
			if !yield(c.byCode[code]) {
				return
			}
		}
	}
}

// ByType returns a restartable sequence of accounts of the given type,
// in insertion order.
func (c *Chart) ByType(t model.AccountType) iter.Seq[model.Account] {
	return func(yield func(model.Account) bool) {
		for _, code := range c.order {
			a := c.byCode[code]
			if a.Type != t {
				continue
			}
			if !yield(a) {
				return
			}
		}
	}
}

// All returns all accounts in insertion order as a slice.
func (c *Chart) All() []model.Account {
	out := make([]model.Account, 0, len(c.order))
	for a := range c.Accounts() {
		out = append(out, a)
	}
	return out
}
