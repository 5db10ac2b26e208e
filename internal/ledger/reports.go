package ledger

import (
	"fmt"
	"time"

	"github.com/tallybook/tally/internal/cursor"
	"github.com/tallybook/tally/internal/report"
	"github.com/tallybook/tally/internal/store"
)

// TrialBalance generates the trial balance as of the cursor.
func (rt *Runtime) TrialBalance(asOf cursor.Cursor) (*report.Report, error) {
	return rt.reports().TrialBalance(asOf)
}

// IncomeStatement generates the income statement for [start, end].
func (rt *Runtime) IncomeStatement(start, end time.Time) (*report.Report, error) {
	return rt.reports().IncomeStatement(start, end)
}

// BalanceSheet generates the balance sheet as of the cursor.
func (rt *Runtime) BalanceSheet(asOf cursor.Cursor) (*report.Report, error) {
	return rt.reports().BalanceSheet(asOf)
}

// WriteReport renders a report into the workspace reports area and
// returns the written path. Identical inputs write identical bytes.
func (rt *Runtime) WriteReport(r *report.Report) (string, error) {
	name := fmt.Sprintf("%s.txt", r.Kind)
	return store.WriteReport(rt.cfg.ReportsDir(rt.root), name, r.Render)
}

func (rt *Runtime) reports() *report.Generator {
	return report.NewGenerator(rt.chart, rt.engine)
}
