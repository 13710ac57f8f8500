package builders

import (
	"errors"

	"github.com/kndndrj/dbexport/core"
)

var errNoNextRow = errors.New("no next row")

// NextNil creates next and hasNext functions that don't return anything (no rows)
func NextNil() (func() (core.Row, error), func() bool) {
	hasNext := func() bool {
		return false
	}

	next := func() (core.Row, error) {
		return nil, errNoNextRow
	}

	return next, hasNext
}
