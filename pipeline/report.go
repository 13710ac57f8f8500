package pipeline

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"

	"github.com/kndndrj/dbexport/core"
)

// Money renders an amount as $1,234.50 without leaving decimal arithmetic.
func Money(d decimal.Decimal) string {
	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}

	whole, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return sign + "$" + whole + "." + frac
	}

	return sign + "$" + humanize.BigComma(n) + "." + frac
}

const statsUnavailable = "stats unavailable"

// Overall combines the statistics of all sources that could be summed.
func (r *Report) Overall() core.Statistics {
	stats := core.Statistics{
		Sum:     decimal.Zero,
		Average: decimal.Zero,
	}
	for _, s := range r.Sources {
		if s.StatsErr != nil {
			continue
		}
		stats.Count += s.Stats.Count
		stats.Sum = stats.Sum.Add(s.Stats.Sum)
	}
	if stats.Count > 0 {
		stats.Average = stats.Sum.Div(decimal.NewFromInt(int64(stats.Count)))
	}
	return stats
}

// PrintReport writes a human readable summary of the run.
func PrintReport(w io.Writer, report *Report) error {
	t := table.NewWriter()
	t.SetTitle("SUMMARY REPORT")
	t.AppendHeader(table.Row{"source", "rows", "total", "average", "status"})

	rows := 0
	for _, s := range report.Sources {
		rows += s.Rows

		total, average, status := Money(s.Stats.Sum), Money(s.Stats.Average), "ok"
		switch {
		case s.Err != nil:
			status = "failed"
		case s.StatsErr != nil:
			total, average, status = "n/a", "n/a", statsUnavailable
		}

		t.AppendRow(table.Row{
			s.Label,
			humanize.Comma(int64(s.Rows)),
			total,
			average,
			status,
		})
	}

	overall := report.Overall()
	t.AppendFooter(table.Row{
		"all",
		humanize.Comma(int64(rows)),
		Money(overall.Sum),
		Money(overall.Average),
		"",
	})

	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	_, err := fmt.Fprintf(w, "%s\n\nRows in file: %s\nOutput file: %s\nColumns: %s\n",
		t.Render(),
		humanize.Comma(int64(report.TotalRows)),
		report.OutputFile,
		strings.Join(report.Header, ", "),
	)
	if err != nil {
		return fmt.Errorf("fmt.Fprintf: %w", err)
	}

	return nil
}
