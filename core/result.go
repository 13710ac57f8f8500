package core

import (
	"errors"
	"fmt"
)

// ErrRowLength is returned when a row does not match the width of the header.
var ErrRowLength = errors.New("row length mismatch")

func rowLengthError(index, got, want int) error {
	return fmt.Errorf("%w: row %d has %d values, header has %d", ErrRowLength, index, got, want)
}

// Result is the drained form of the ResultStream iterator.
// It is immutable once created.
type Result struct {
	header Header
	rows   []Row
}

// NewResult creates a result from already fetched rows.
// Every row must be as wide as the header.
func NewResult(header Header, rows []Row) (*Result, error) {
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, rowLengthError(i, len(row), len(header))
		}
	}

	return &Result{
		header: cloneHeader(header),
		rows:   cloneRows(rows),
	}, nil
}

// NewEmptyResult returns a result without rows.
func NewEmptyResult(header Header) *Result {
	return &Result{
		header: cloneHeader(header),
		rows:   []Row{},
	}
}

// DrainStream reads the whole iterator into a new result and closes it.
// On any error an empty result with the stream's header is returned alongside
// the error, rows that were read before the failure are discarded.
func DrainStream(iter ResultStream) (*Result, error) {
	defer iter.Close()

	header := iter.Header()
	rows := make([]Row, 0)

	for iter.HasNext() {
		row, err := iter.Next()
		if err != nil {
			return NewEmptyResult(header), fmt.Errorf("iter.Next: %w", err)
		}
		if len(row) != len(header) {
			return NewEmptyResult(header), rowLengthError(len(rows), len(row), len(header))
		}

		rows = append(rows, row)
	}

	return &Result{
		header: cloneHeader(header),
		rows:   rows,
	}, nil
}

func (cr *Result) Len() int {
	return len(cr.rows)
}

func (cr *Result) IsEmpty() bool {
	return len(cr.rows) == 0
}

func (cr *Result) Header() Header {
	return cloneHeader(cr.header)
}

// Rows returns a copy of all rows.
func (cr *Result) Rows() []Row {
	return cloneRows(cr.rows)
}

// Format formats the whole result with the provided formatter.
func (cr *Result) Format(formatter Formatter, opts *FormatterOptions) ([]byte, error) {
	if opts == nil {
		opts = &FormatterOptions{}
	}

	f, err := formatter.Format(cr.header, cr.rows, opts)
	if err != nil {
		return nil, fmt.Errorf("formatter.Format: %w", err)
	}

	return f, nil
}

func cloneHeader(h Header) Header {
	out := make(Header, len(h))
	copy(out, h)
	return out
}

func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, row := range rows {
		r := make(Row, len(row))
		copy(r, row)
		out[i] = r
	}
	return out
}
