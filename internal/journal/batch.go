package journal

import (
	"errors"
	"fmt"
)

// Policy controls how PostBatch treats invalid rows. There is no default:
// callers must choose, because silent partial application of financial
// data is a correctness hazard.
type Policy string

const (
	// FailFast aborts the whole batch on the first invalid row, leaving
	// the journal unchanged.
	FailFast Policy = "fail-fast"
	// BestEffort appends the valid rows and reports the invalid ones.
	BestEffort Policy = "best-effort"
)

// ErrUnknownPolicy is returned when a batch policy is not one of the two
// recognized values.
var ErrUnknownPolicy = errors.New("unknown batch policy")

// ParsePolicy parses a policy flag value.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case FailFast, BestEffort:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownPolicy)
	}
}

// RowError reports a failed row in a batch, with its 1-based row number.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// Unwrap returns the underlying cause.
func (e RowError) Unwrap() error {
	return e.Err
}

// PostBatch applies Post to each row under the given policy.
//
// Under FailFast, every row is validated before anything is appended; the
// first invalid row aborts the batch with a RowError and the journal is
// unchanged. Under BestEffort, valid rows are appended in order and the
// invalid ones are returned as RowErrors keyed by 1-based row number.
// The whole batch runs under the writer lock, so no concurrent post can
// interleave with it.
func (j *Journal) PostBatch(rows []Row, policy Policy) (ids []int64, rowErrs []RowError, err error) {
	if policy != FailFast && policy != BestEffort {
		return nil, nil, fmt.Errorf("%q: %w", policy, ErrUnknownPolicy)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if policy == FailFast {
		for i, row := range rows {
			if verr := j.validate(row); verr != nil {
				return nil, nil, RowError{Row: i + 1, Err: verr}
			}
		}
	}

	for i, row := range rows {
		id, perr := j.postLocked(row)
		if perr != nil {
			if policy == BestEffort {
				rowErrs = append(rowErrs, RowError{Row: i + 1, Err: perr})
				continue
			}
			// Rows were pre-validated; reaching here under fail-fast
			// means the durable append failed.
			return ids, rowErrs, fmt.Errorf("row %d: %w", i+1, perr)
		}
		ids = append(ids, id)
	}
	return ids, rowErrs, nil
}
