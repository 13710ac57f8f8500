package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kndndrj/dbexport/core"
	"github.com/kndndrj/dbexport/core/format"
	"github.com/kndndrj/dbexport/core/mock"
)

func TestDrainStream(t *testing.T) {
	r := require.New(t)

	rows := mock.NewRows(0, 10)
	stream := mock.NewResultStream(rows, mock.ResultStreamWithHeader(core.Header{"id", "name"}))

	result, err := core.DrainStream(stream)
	r.NoError(err)
	r.True(stream.IsClosed())

	r.Equal(10, result.Len())
	r.Equal(rows, result.Rows())
	r.Equal(core.Header{"id", "name"}, result.Header())
}

func TestDrainStreamNoPartialResult(t *testing.T) {
	r := require.New(t)

	stream := mock.NewResultStream(mock.NewRows(0, 10),
		mock.ResultStreamWithNextError(5, errors.New("network hiccup")),
	)

	result, err := core.DrainStream(stream)
	r.ErrorContains(err, "network hiccup")
	r.True(stream.IsClosed())
	r.True(result.IsEmpty())
	r.Len(result.Header(), 2)
}

func TestDrainStreamRowLength(t *testing.T) {
	r := require.New(t)

	stream := mock.NewResultStream([]core.Row{{1, "a"}, {2}},
		mock.ResultStreamWithHeader(core.Header{"id", "name"}),
	)

	result, err := core.DrainStream(stream)
	r.ErrorIs(err, core.ErrRowLength)
	r.ErrorContains(err, "row 1 has 1 values, header has 2")
	r.True(result.IsEmpty())
}

func TestResultIsImmutable(t *testing.T) {
	r := require.New(t)

	rows := []core.Row{{1, "a"}}
	result, err := core.NewResult(core.Header{"id", "name"}, rows)
	r.NoError(err)

	// mutate input and returned copies
	rows[0][0] = 100
	got := result.Rows()
	got[0][1] = "changed"
	header := result.Header()
	header[0] = "changed"

	r.Equal([]core.Row{{1, "a"}}, result.Rows())
	r.Equal(core.Header{"id", "name"}, result.Header())

	_, err = core.NewResult(core.Header{"id"}, []core.Row{{1, 2}})
	r.ErrorIs(err, core.ErrRowLength)
}

func TestResultFormat(t *testing.T) {
	r := require.New(t)

	result, err := core.NewResult(core.Header{"id", "name"}, []core.Row{{1, "a,b"}})
	r.NoError(err)

	out, err := result.Format(format.NewCSV(), nil)
	r.NoError(err)
	r.Equal("id,name\n1,\"a,b\"\n", string(out))

	out, err = result.Format(format.NewCSV(), &core.FormatterOptions{SkipHeader: true})
	r.NoError(err)
	r.Equal("1,\"a,b\"\n", string(out))
}
