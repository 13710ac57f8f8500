package mock

import (
	"github.com/kndndrj/dbexport/core"
)

type resultStreamConfig struct {
	header   core.Header
	errIndex int
	err      error
}

type ResultStreamOption func(*resultStreamConfig)

func ResultStreamWithHeader(header core.Header) ResultStreamOption {
	return func(c *resultStreamConfig) {
		c.header = header
	}
}

// ResultStreamWithNextError makes Next fail when the row at index is requested.
func ResultStreamWithNextError(index int, err error) ResultStreamOption {
	return func(c *resultStreamConfig) {
		c.errIndex = index
		c.err = err
	}
}
