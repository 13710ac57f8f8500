package format

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/kndndrj/dbexport/core"
)

var _ core.Formatter = (*Table)(nil)

// Table renders rows as a borderless text table, used for console previews.
type Table struct{}

func NewTable() *Table {
	return &Table{}
}

func (tf *Table) Format(header core.Header, rows []core.Row, opts *core.FormatterOptions) ([]byte, error) {
	t := table.NewWriter()

	if opts == nil || !opts.SkipHeader {
		tableHeader := make(table.Row, len(header))
		for i, h := range header {
			tableHeader[i] = h
		}
		t.AppendHeader(tableHeader)
	}

	for _, row := range rows {
		tableRow := make(table.Row, len(row))
		for i, val := range row {
			tableRow[i] = Cell(val)
		}
		t.AppendRow(tableRow)
	}

	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false

	return []byte(t.Render()), nil
}
