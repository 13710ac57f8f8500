package builders_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kndndrj/dbexport/core"
	"github.com/kndndrj/dbexport/core/builders"
)

func TestNextNil(t *testing.T) {
	r := require.New(t)

	next, hasNext := builders.NextNil()
	r.False(hasNext())

	_, err := next()
	r.Error(err)
}

func TestResultBuilder(t *testing.T) {
	r := require.New(t)

	closed, called := 0, 0

	rows := []core.Row{{1}, {2}}
	index := 0
	hasNext := func() bool { return index < len(rows) }
	next := func() (core.Row, error) {
		row := rows[index]
		index++
		return row, nil
	}

	result := builders.NewResultBuilder().
		WithNextFunc(next, hasNext).
		WithHeader(core.Header{"n"}).
		WithCloseFunc(func() { closed++ }).
		Build()
	result.SetCallback(func() { called++ })

	drained, err := core.DrainStream(result)
	r.NoError(err)
	r.Equal(rows, drained.Rows())
	r.Equal(core.Header{"n"}, drained.Header())

	// closing again does not re-run close or callback
	result.Close()
	r.Equal(1, closed)
	r.Equal(1, called)
	r.False(result.HasNext())
}
