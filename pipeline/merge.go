package pipeline

import "github.com/kndndrj/dbexport/core"

// Labeled is a result set tagged with the label of the source it came from.
type Labeled struct {
	Label  string
	Result *core.Result
}

// Merge prefixes every row with its source label and concatenates the sets
// in the given order. Rows are never interleaved or re-sorted.
func Merge(sets []Labeled) []core.Row {
	size := 0
	for _, s := range sets {
		if s.Result != nil {
			size += s.Result.Len()
		}
	}

	out := make([]core.Row, 0, size)
	for _, s := range sets {
		if s.Result == nil {
			continue
		}
		for _, row := range s.Result.Rows() {
			record := make(core.Row, 0, len(row)+1)
			record = append(record, s.Label)
			record = append(record, row...)
			out = append(out, record)
		}
	}

	return out
}

// Concat joins the rows of the sets in order without labels.
func Concat(sets ...*core.Result) []core.Row {
	var out []core.Row
	for _, s := range sets {
		if s == nil {
			continue
		}
		out = append(out, s.Rows()...)
	}
	if out == nil {
		out = []core.Row{}
	}
	return out
}
