package pipeline_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kndndrj/dbexport/core"
	"github.com/kndndrj/dbexport/pipeline"
)

func TestMoney(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{in: "0", expected: "$0.00"},
		{in: "150", expected: "$150.00"},
		{in: "1234.5", expected: "$1,234.50"},
		{in: "1234567.891", expected: "$1,234,567.89"},
		{in: "0.005", expected: "$0.01"},
		{in: "-1234.5", expected: "-$1,234.50"},
		{in: "-0.001", expected: "$0.00"},
		{in: "123456789012345678901.23", expected: "$123,456,789,012,345,678,901.23"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.expected, pipeline.Money(decimal.RequireFromString(tc.in)))
		})
	}
}

func TestPrintReport(t *testing.T) {
	r := require.New(t)

	report := &pipeline.Report{
		Job: "combine",
		Sources: []pipeline.SourceReport{
			{
				Label: pipeline.LabelPostgres,
				Rows:  2,
				Stats: core.Statistics{Count: 2, Sum: decimal.NewFromInt(150), Average: decimal.NewFromInt(75)},
			},
			{
				Label: pipeline.LabelSQLServer,
				Stats: core.Statistics{Sum: decimal.Zero, Average: decimal.Zero},
				Err:   errors.New("connection refused"),
			},
		},
		TotalRows:  2,
		OutputFile: "combined_orders_20261018_123045.csv",
		Header:     pipeline.CombineHeader,
	}

	overall := report.Overall()
	r.Equal(2, overall.Count)
	r.True(decimal.NewFromInt(75).Equal(overall.Average))

	var out bytes.Buffer
	r.NoError(pipeline.PrintReport(&out, report))

	s := out.String()
	r.Contains(s, "SUMMARY REPORT")
	r.Contains(s, "postgresql")
	r.Contains(s, "$150.00")
	r.Contains(s, "$75.00")
	r.Contains(s, "failed")
	r.Contains(s, "Rows in file: 2")
	r.Contains(s, "Output file: combined_orders_20261018_123045.csv")
	r.Contains(s, "Columns: source_db, order_id, customer_id, order_date, total_amount")
}

func TestOverallSkipsUnavailableStatistics(t *testing.T) {
	r := require.New(t)

	report := &pipeline.Report{
		Sources: []pipeline.SourceReport{
			{
				Label:    pipeline.LabelPostgres,
				Rows:     3,
				Stats:    core.Statistics{Sum: decimal.Zero, Average: decimal.Zero},
				StatsErr: core.ErrNotNumeric,
			},
			{
				Label: pipeline.LabelSQLServer,
				Rows:  2,
				Stats: core.Statistics{Count: 2, Sum: decimal.NewFromInt(30), Average: decimal.NewFromInt(15)},
			},
		},
		TotalRows: 5,
		Header:    pipeline.CombineHeader,
	}

	overall := report.Overall()
	r.Equal(2, overall.Count)
	r.True(decimal.NewFromInt(15).Equal(overall.Average))

	var out bytes.Buffer
	r.NoError(pipeline.PrintReport(&out, report))
	r.Contains(out.String(), "stats unavailable")
	r.Contains(out.String(), "n/a")
	r.Contains(out.String(), "Rows in file: 5")
}
