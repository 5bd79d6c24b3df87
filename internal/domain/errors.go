package domain

import (
	"errors"
	"fmt"
)

// ErrNoData is matched by every *NoDataError via errors.Is.
var ErrNoData = errors.New("no data")

// NoDataError is returned when a query needs at least one matching report.
type NoDataError struct {
	Query      string
	Settlement string
}

func (e *NoDataError) Error() string {
	if e.Settlement != "" {
		return fmt.Sprintf("%s: no reports for settlement %q", e.Query, e.Settlement)
	}
	return fmt.Sprintf("%s: no reports", e.Query)
}

func (e *NoDataError) Is(target error) bool {
	return target == ErrNoData
}

// WriteError records a settlement whose wind report could not be written.
type WriteError struct {
	Settlement string
	Filename   string
	Err        error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s for settlement %s: %v", e.Filename, e.Settlement, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
