// Package ledger wires the chart, journal, balance engine, reports, and
// persistence into one runtime behind a narrow command surface. Any
// caller, scripted, interactive, or automated, drives the ledger through
// the same operations; the runtime never reaches out to a network or
// knows where its inputs came from.
package ledger

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/balance"
	"github.com/tallybook/tally/internal/coa"
	"github.com/tallybook/tally/internal/config"
	"github.com/tallybook/tally/internal/cursor"
	"github.com/tallybook/tally/internal/importer"
	"github.com/tallybook/tally/internal/journal"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/store"
)

// Runtime holds the assembled ledger services for one workspace.
type Runtime struct {
	root    string
	cfg     *config.Config
	chart   *coa.Chart
	journal *journal.Journal
	engine  *balance.Engine
	store   *store.Store
}

// Open loads config, chart, and journal from a workspace root. A fresh
// process continues assigning entry ids after the highest persisted one.
func Open(root string) (*Runtime, error) {
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return OpenWith(root, cfg)
}

// OpenWith assembles a runtime from an already-loaded config.
func OpenWith(root string, cfg *config.Config) (*Runtime, error) {
	st := store.New(cfg.LedgerDir(root))

	accounts, err := st.LoadChart()
	if err != nil {
		return nil, fmt.Errorf("loading chart of accounts: %w", err)
	}
	chart, err := coa.NewChartFrom(accounts)
	if err != nil {
		return nil, fmt.Errorf("rebuilding chart of accounts: %w", err)
	}

	entries, err := st.LoadJournal()
	if err != nil {
		return nil, fmt.Errorf("loading journal: %w", err)
	}
	jrnl, err := journal.Restore(chart, st, entries)
	if err != nil {
		return nil, fmt.Errorf("restoring journal: %w", err)
	}

	return &Runtime{
		root:    root,
		cfg:     cfg,
		chart:   chart,
		journal: jrnl,
		engine:  balance.NewEngine(chart, jrnl),
		store:   st,
	}, nil
}

// Config returns the workspace configuration.
func (rt *Runtime) Config() *config.Config { return rt.cfg }

// Root returns the workspace root path.
func (rt *Runtime) Root() string { return rt.root }

// Chart returns the chart of accounts.
func (rt *Runtime) Chart() *coa.Chart { return rt.chart }

// Journal returns the journal.
func (rt *Runtime) Journal() *journal.Journal { return rt.journal }

// CreateAccount registers an account and persists the chart.
func (rt *Runtime) CreateAccount(a model.Account) error {
	if err := rt.chart.Create(a); err != nil {
		return err
	}
	if err := rt.store.SaveChart(rt.chart.All()); err != nil {
		return fmt.Errorf("saving chart of accounts: %w", err)
	}
	return nil
}

// Post validates and durably appends a single entry.
func (rt *Runtime) Post(row journal.Row) (int64, error) {
	return rt.journal.Post(row)
}

// PostBatch applies rows under an explicit policy.
func (rt *Runtime) PostBatch(rows []journal.Row, policy journal.Policy) ([]int64, []journal.RowError, error) {
	return rt.journal.PostBatch(rows, policy)
}

// ImportCSV posts tabular rows from r under an explicit policy, dating
// undated rows today.
func (rt *Runtime) ImportCSV(r io.Reader, policy journal.Policy) (importer.Result, error) {
	return importer.ImportCSV(r, rt.journal, policy, time.Now())
}

// BalanceOf returns one account's balance as of the cursor.
func (rt *Runtime) BalanceOf(code string, asOf cursor.Cursor) (decimal.Decimal, error) {
	return rt.engine.BalanceOf(code, asOf)
}

// AllBalances returns every posted account's balance as of the cursor.
func (rt *Runtime) AllBalances(asOf cursor.Cursor) (map[string]decimal.Decimal, error) {
	return rt.engine.AllBalances(asOf)
}

// Close posts period-end closing entries into the configured
// retained-earnings account and returns the posted entry ids.
func (rt *Runtime) Close(periodEnd time.Time) ([]int64, error) {
	closer, err := balance.NewCloser(rt.chart, rt.journal, rt.cfg.Close.RetainedEarnings)
	if err != nil {
		return nil, err
	}
	return closer.Close(periodEnd)
}
