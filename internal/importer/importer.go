// Package importer turns tabular transaction rows into journal postings.
// It owns schema validation only: business validation (accounts exist,
// amount positive, no self-posting) stays in the journal. Rows are the
// narrow interface the core exposes to document-extraction collaborators;
// nothing here knows about source documents.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/journal"
)

// Expected column order: debit_code,credit_code,amount[,date,memo].
const (
	minFields = 3
	maxFields = 5
	colDebit  = 0
	colCredit = 1
	colAmount = 2
	colDate   = 3
	colMemo   = 4
)

const dateFormat = "2006-01-02"

// amountPattern accepts plain decimal text only. Scientific notation and
// locale separators are rejected rather than silently misparsed.
var amountPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// Result summarizes a bulk import: posted entry ids and the failed rows
// with their 1-based data row numbers.
type Result struct {
	EntryIDs  []int64
	RowErrors []journal.RowError
}

// indexedRow pairs a parsed row with its 1-based data row number, so
// errors reported later still point at the caller's input.
type indexedRow struct {
	n   int
	row journal.Row
}

// ImportCSV reads rows from r and posts them to the journal under the
// given policy. The first record must be the header. Under fail-fast,
// any schema-invalid or business-invalid row aborts the import with
// zero entries appended; under best-effort, valid rows are posted and
// failures are collected per row.
func ImportCSV(r io.Reader, j *journal.Journal, policy journal.Policy, defaultDate time.Time) (Result, error) {
	if policy != journal.FailFast && policy != journal.BestEffort {
		return Result{}, fmt.Errorf("%q: %w", policy, journal.ErrUnknownPolicy)
	}

	rows, schemaErrs, err := parseRows(r, defaultDate)
	if err != nil {
		return Result{}, err
	}

	if policy == journal.FailFast {
		if len(schemaErrs) > 0 {
			return Result{}, schemaErrs[0]
		}
		batch := make([]journal.Row, len(rows))
		for i, ir := range rows {
			batch[i] = ir.row
		}
		ids, _, err := j.PostBatch(batch, journal.FailFast)
		if err != nil {
			var re journal.RowError
			if errors.As(err, &re) {
				// Remap from batch position to original row number.
				return Result{}, journal.RowError{Row: rows[re.Row-1].n, Err: re.Err}
			}
			return Result{}, err
		}
		return Result{EntryIDs: ids}, nil
	}

	result := Result{RowErrors: schemaErrs}
	for _, ir := range rows {
		id, err := j.Post(ir.row)
		if err != nil {
			result.RowErrors = append(result.RowErrors, journal.RowError{Row: ir.n, Err: err})
			continue
		}
		result.EntryIDs = append(result.EntryIDs, id)
	}
	sort.Slice(result.RowErrors, func(i, k int) bool {
		return result.RowErrors[i].Row < result.RowErrors[k].Row
	})
	return result, nil
}

// parseRows reads and schema-validates every data row. Schema failures
// become RowErrors; only an unreadable stream is a hard error.
func parseRows(r io.Reader, defaultDate time.Time) ([]indexedRow, []journal.RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row width checked per record, 3 to 5 fields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading import CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	var rows []indexedRow
	var rowErrs []journal.RowError
	for i, rec := range records[1:] { // records[0] is the header
		n := i + 1
		row, err := parseRow(rec, defaultDate)
		if err != nil {
			rowErrs = append(rowErrs, journal.RowError{Row: n, Err: err})
			continue
		}
		rows = append(rows, indexedRow{n: n, row: row})
	}
	return rows, rowErrs, nil
}

func parseRow(rec []string, defaultDate time.Time) (journal.Row, error) {
	if len(rec) < minFields || len(rec) > maxFields {
		return journal.Row{}, fmt.Errorf("expected %d to %d fields, got %d", minFields, maxFields, len(rec))
	}

	if !amountPattern.MatchString(rec[colAmount]) {
		return journal.Row{}, fmt.Errorf("amount %q is not plain decimal text: %w", rec[colAmount], journal.ErrInvalidAmount)
	}
	amount, err := decimal.NewFromString(rec[colAmount])
	if err != nil {
		return journal.Row{}, fmt.Errorf("parsing amount %q: %w", rec[colAmount], err)
	}

	date := defaultDate
	if len(rec) > colDate && rec[colDate] != "" {
		date, err = time.Parse(dateFormat, rec[colDate])
		if err != nil {
			return journal.Row{}, fmt.Errorf("parsing date %q: %w", rec[colDate], err)
		}
	}

	memo := ""
	if len(rec) > colMemo {
		memo = rec[colMemo]
	}

	return journal.Row{
		Date:       date,
		DebitCode:  rec[colDebit],
		CreditCode: rec[colCredit],
		Amount:     amount,
		Memo:       memo,
	}, nil
}
