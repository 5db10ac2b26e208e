package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/model"
)

const dateFormat = "2006-01-02"

// ChartHeader is the CSV header for chart-of-accounts.csv.
const ChartHeader = "code,name,type,description"

const (
	chartNumFields = 4
	colCode        = 0
	colName        = 1
	colType        = 2
	colDesc        = 3
)

// JournalHeader is the CSV header for journal.csv.
const JournalHeader = "id,date,debit_code,credit_code,amount,memo"

const (
	journalNumFields = 6
	colID            = 0
	colDate          = 1
	colDebit         = 2
	colCredit        = 3
	colAmount        = 4
	colMemo          = 5
)

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = chartNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chart CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv including the header.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(ChartHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, chartNumFields)
	row[colCode] = acct.Code
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	row[colDesc] = acct.Description
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != chartNumFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", chartNumFields, len(record))
	}
	t := model.AccountType(record[colType])
	if !t.Valid() {
		return model.Account{}, fmt.Errorf("unknown account type %q", record[colType])
	}
	return model.Account{
		Code:        record[colCode],
		Name:        record[colName],
		Type:        t,
		Description: record[colDesc],
	}, nil
}

// ReadEntries reads journal.csv.
func ReadEntries(r io.Reader) ([]model.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = journalNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var entries []model.Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteEntries writes journal.csv including the header.
func WriteEntries(w io.Writer, entries []model.Entry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(JournalHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e model.Entry) []string {
	row := make([]string, journalNumFields)
	row[colID] = strconv.FormatInt(e.ID, 10)
	row[colDate] = e.Date.Format(dateFormat)
	row[colDebit] = e.DebitCode
	row[colCredit] = e.CreditCode
	row[colAmount] = e.Amount.StringFixed(2)
	row[colMemo] = e.Memo
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (model.Entry, error) {
	if len(record) != journalNumFields {
		return model.Entry{}, fmt.Errorf("expected %d fields, got %d", journalNumFields, len(record))
	}

	id, err := strconv.ParseInt(record[colID], 10, 64)
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing id %q: %w", record[colID], err)
	}
	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}
	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Entry{
		ID:         id,
		Date:       date,
		DebitCode:  record[colDebit],
		CreditCode: record[colCredit],
		Amount:     amount,
		Memo:       record[colMemo],
	}, nil
}
