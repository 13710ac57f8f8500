package core

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNotNumeric = errors.New("value is not numeric")

// Statistics is an aggregate over a single numeric column.
type Statistics struct {
	Count   int
	Sum     decimal.Decimal
	Average decimal.Decimal
}

// ComputeStatistics aggregates the column at index over all rows of the result.
// An empty result yields zero statistics. Null values are counted as rows
// and add nothing to the sum.
func ComputeStatistics(result *Result, column int) (Statistics, error) {
	stats := Statistics{
		Sum:     decimal.Zero,
		Average: decimal.Zero,
	}

	if result == nil || result.IsEmpty() {
		return stats, nil
	}

	if column < 0 || column >= len(result.header) {
		return stats, fmt.Errorf("column index %d out of range (%d columns)", column, len(result.header))
	}

	sum := decimal.Zero
	for i, row := range result.rows {
		val, err := toDecimal(row[column])
		if err != nil {
			return stats, fmt.Errorf("row %d, column %q: %w", i, result.header[column], err)
		}
		sum = sum.Add(val)
	}

	count := len(result.rows)

	return Statistics{
		Count:   count,
		Sum:     sum,
		Average: sum.Div(decimal.NewFromInt(int64(count))),
	}, nil
}

func toDecimal(val any) (decimal.Decimal, error) {
	switch v := val.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return v, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int8:
		return decimal.NewFromInt(int64(v)), nil
	case int16:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case uint:
		return decimal.NewFromString(strconv.FormatUint(uint64(v), 10))
	case uint8:
		return decimal.NewFromInt(int64(v)), nil
	case uint16:
		return decimal.NewFromInt(int64(v)), nil
	case uint32:
		return decimal.NewFromInt(int64(v)), nil
	case uint64:
		return decimal.NewFromString(strconv.FormatUint(v, 10))
	case float32:
		return fromFloat(float64(v), 32)
	case float64:
		return fromFloat(v, 64)
	case []byte:
		return parseDecimal(string(v))
	case string:
		return parseDecimal(v)
	default:
		return decimal.Zero, fmt.Errorf("%w: %T", ErrNotNumeric, val)
	}
}

// fromFloat rejects NaN and infinities, which postgres float columns can hold.
func fromFloat(f float64, bits int) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrNotNumeric, f)
	}
	if bits == 32 {
		return decimal.NewFromFloat32(float32(f)), nil
	}
	return decimal.NewFromFloat(f), nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return d, nil
}
