package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// Fixed column layout: this is the output contract external viewers
// depend on, stable across regenerations of identical input.
const (
	labelWidth  = 40
	amountWidth = 14
)

var titles = map[Kind]string{
	KindTrialBalance:    "TRIAL BALANCE",
	KindIncomeStatement: "INCOME STATEMENT",
	KindBalanceSheet:    "BALANCE SHEET",
}

var totalLabels = map[Kind]string{
	KindTrialBalance:    "TOTAL",
	KindIncomeStatement: "NET INCOME",
	KindBalanceSheet:    "TOTAL ASSETS",
}

// Render writes the report in its fixed line format: a header block, one
// line per account or category, and a totals line.
func (r *Report) Render(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", titles[r.Kind])
	fmt.Fprintf(&b, "As of: %s\n\n", r.AsOf)

	twoColumn := r.Kind == KindTrialBalance
	if twoColumn {
		fmt.Fprintf(&b, "%-*s%*s%*s\n", labelWidth, "ACCOUNT", amountWidth, "DEBIT", amountWidth, "CREDIT")
	} else {
		fmt.Fprintf(&b, "%-*s%*s\n", labelWidth, "ACCOUNT", amountWidth, "AMOUNT")
	}
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", lineWidth(twoColumn)))

	for _, line := range r.Lines {
		label := line.Label
		if line.Code != "" {
			label = fmt.Sprintf("%s  %s", line.Code, line.Label)
		}
		if twoColumn {
			fmt.Fprintf(&b, "%-*s%*s%*s\n", labelWidth, label,
				amountWidth, column(line.Debit), amountWidth, column(line.Credit))
		} else {
			fmt.Fprintf(&b, "%-*s%*s\n", labelWidth, label, amountWidth, line.Amount.StringFixed(2))
		}
	}

	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", lineWidth(twoColumn)))
	if twoColumn {
		fmt.Fprintf(&b, "%-*s%*s%*s\n", labelWidth, totalLabels[r.Kind],
			amountWidth, r.TotalDebit.StringFixed(2), amountWidth, r.TotalCredit.StringFixed(2))
	} else {
		fmt.Fprintf(&b, "%-*s%*s\n", labelWidth, totalLabels[r.Kind], amountWidth, r.Total.StringFixed(2))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// String renders the report to a string.
func (r *Report) String() string {
	var b strings.Builder
	_ = r.Render(&b)
	return b.String()
}

// column renders an amount cell, with "-" for an empty side.
func column(d decimal.Decimal) string {
	if d.IsZero() {
		return "-"
	}
	return d.StringFixed(2)
}

func lineWidth(twoColumn bool) int {
	if twoColumn {
		return labelWidth + 2*amountWidth
	}
	return labelWidth + amountWidth
}
