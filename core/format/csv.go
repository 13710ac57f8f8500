package format

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kndndrj/dbexport/core"
)

var _ core.Formatter = (*CSV)(nil)

type CSV struct{}

func NewCSV() *CSV {
	return &CSV{}
}

// Cell renders a single value the way it appears in a CSV file.
func Cell(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		if v.Equal(v.Truncate(24*time.Hour)) && v.Location() == time.UTC {
			return v.Format("2006-01-02")
		}
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func (cf *CSV) record(row core.Row) []string {
	rec := make([]string, len(row))
	for i, val := range row {
		rec[i] = Cell(val)
	}
	return rec
}

// Write streams the header and rows to w and returns the number of data rows written.
func (cf *CSV) Write(w io.Writer, header core.Header, rows []core.Row, opts *core.FormatterOptions) (int, error) {
	cw := csv.NewWriter(w)

	if opts == nil || !opts.SkipHeader {
		if err := cw.Write(header); err != nil {
			return 0, fmt.Errorf("cw.Write: %w", err)
		}
	}

	written := 0
	for _, row := range rows {
		if err := cw.Write(cf.record(row)); err != nil {
			return written, fmt.Errorf("cw.Write: %w", err)
		}
		written++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return written, fmt.Errorf("cw.Flush: %w", err)
	}

	return written, nil
}

func (cf *CSV) Format(header core.Header, rows []core.Row, opts *core.FormatterOptions) ([]byte, error) {
	b := new(bytes.Buffer)

	_, err := cf.Write(b, header, rows, opts)
	if err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
