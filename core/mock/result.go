package mock

import (
	"fmt"

	"github.com/kndndrj/dbexport/core"
)

var _ core.ResultStream = (*ResultStream)(nil)

type ResultStream struct {
	rows   []core.Row
	index  int
	closed bool
	config *resultStreamConfig
}

func makeDefaultHeader(rows []core.Row) core.Header {
	var header core.Header
	if len(rows) > 0 {
		for i := range rows[0] {
			header = append(header, fmt.Sprintf("header_%d", i))
		}
	}
	return header
}

// NewResultStream returns a mocked result stream with provided rows.
// It creates a header that matches the number of columns in the first row
// in form of: <header_0>, <header_1>, etc.
func NewResultStream(rows []core.Row, opts ...ResultStreamOption) *ResultStream {
	config := &resultStreamConfig{
		header:   makeDefaultHeader(rows),
		errIndex: -1,
	}
	for _, opt := range opts {
		opt(config)
	}

	return &ResultStream{
		rows:   rows,
		config: config,
	}
}

func (rs *ResultStream) Header() core.Header {
	return rs.config.header
}

func (rs *ResultStream) Next() (core.Row, error) {
	if rs.config.err != nil && rs.index == rs.config.errIndex {
		return nil, rs.config.err
	}
	if !rs.HasNext() {
		return nil, fmt.Errorf("no next row")
	}

	row := rs.rows[rs.index]
	rs.index++
	return row, nil
}

func (rs *ResultStream) HasNext() bool {
	return !rs.closed && rs.index < len(rs.rows)
}

func (rs *ResultStream) Close() {
	rs.closed = true
}

// IsClosed reports whether Close was called.
func (rs *ResultStream) IsClosed() bool {
	return rs.closed
}

// NewRows returns a slice of rows in form of:
//
//	{ <index>(int), "row_<index>"(string) }
//
// where the first index is "from" and the last one is one less than "to".
func NewRows(from, to int) []core.Row {
	var rows []core.Row

	for i := from; i < to; i++ {
		rows = append(rows, core.Row{i, fmt.Sprintf("row_%d", i)})
	}
	return rows
}
