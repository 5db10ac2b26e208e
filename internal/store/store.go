// Package store is the persistence port: it loads and saves the chart of
// accounts and journal as CSV files and writes rendered reports. Snapshot
// writes are atomic (write to a temporary file, then rename), so a crash
// mid-write never leaves a truncated journal behind.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tallybook/tally/internal/model"
)

// ErrPersistence marks a durable I/O failure. It is always surfaced,
// never swallowed: a silent persistence failure is a data-loss risk.
var ErrPersistence = errors.New("persistence failure")

const (
	chartFile   = "chart-of-accounts.csv"
	journalFile = "journal.csv"
)

// Store persists ledger state under a single directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the ledger directory.
func (s *Store) Dir() string { return s.dir }

// SaveChart atomically writes the full chart of accounts.
func (s *Store) SaveChart(accounts []model.Account) error {
	return s.writeAtomic(chartFile, func(w io.Writer) error {
		return WriteAccounts(w, accounts)
	})
}

// LoadChart reads the chart of accounts. A missing file yields an empty
// chart, not an error, so a fresh workspace loads cleanly.
func (s *Store) LoadChart() ([]model.Account, error) {
	return load(filepath.Join(s.dir, chartFile), ReadAccounts)
}

// SaveJournal atomically writes the full journal snapshot.
func (s *Store) SaveJournal(entries []model.Entry) error {
	return s.writeAtomic(journalFile, func(w io.Writer) error {
		return WriteEntries(w, entries)
	})
}

// LoadJournal reads all persisted entries in file order. A fresh process
// restores from these and continues assigning ids after the highest one.
func (s *Store) LoadJournal() ([]model.Entry, error) {
	return load(filepath.Join(s.dir, journalFile), ReadEntries)
}

// AppendEntry durably appends one entry to journal.csv, creating the file
// and header if needed. The write is flushed to disk before returning,
// making the post durable once this call succeeds.
func (s *Store) AppendEntry(e model.Entry) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", errors.Join(ErrPersistence, err))
	}

	path := filepath.Join(s.dir, journalFile)
	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening journal: %w", errors.Join(ErrPersistence, err))
	}
	defer f.Close()

	line := marshalLine(MarshalEntry(e))
	if isNew {
		line = JournalHeader + "\n" + line
	}
	if _, err := io.WriteString(f, line); err != nil {
		return fmt.Errorf("appending entry %d: %w", e.ID, errors.Join(ErrPersistence, err))
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing journal: %w", errors.Join(ErrPersistence, err))
	}
	return nil
}

// WriteReport atomically writes a rendered report under dir.
func WriteReport(dir, name string, render func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating reports dir: %w", errors.Join(ErrPersistence, err))
	}
	path := filepath.Join(dir, name)
	if err := writeAtomicPath(path, render); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Store) writeAtomic(name string, write func(io.Writer) error) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", errors.Join(ErrPersistence, err))
	}
	return writeAtomicPath(filepath.Join(s.dir, name), write)
}

// writeAtomicPath writes to a temporary file in the target directory,
// syncs, then renames over the destination.
func writeAtomicPath(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", errors.Join(ErrPersistence, err))
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(path), errors.Join(ErrPersistence, err))
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %s: %w", filepath.Base(path), errors.Join(ErrPersistence, err))
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", filepath.Base(path), errors.Join(ErrPersistence, err))
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into place: %w", errors.Join(ErrPersistence, err))
	}
	return nil
}

func load[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), errors.Join(ErrPersistence, err))
	}
	defer f.Close()

	items, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), errors.Join(ErrPersistence, err))
	}
	return items, nil
}

// marshalLine renders one CSV record, newline-terminated, quoting fields
// the same way encoding/csv does.
func marshalLine(fields []string) string {
	var sb strings.Builder
	cw := csv.NewWriter(&sb)
	_ = cw.Write(fields)
	cw.Flush()
	return sb.String()
}
