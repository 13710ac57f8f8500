package core

type (
	// FormatterOptions provide various options for formatters
	FormatterOptions struct {
		// SkipHeader omits the header line from the output
		SkipHeader bool
	}

	// Formatter converts header and rows to bytes
	Formatter interface {
		Format(header Header, rows []Row, opts *FormatterOptions) ([]byte, error)
	}
)

type (
	// Row and Header are attributes of ResultStream iterator
	Row    []any
	Header []string

	// ResultStream is a result from executed query and has a form of an iterator
	ResultStream interface {
		Header() Header
		Next() (Row, error)
		HasNext() bool
		Close()
	}
)

// Logger is used by components that report progress or diagnostics.
type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...any)
	Info(msg string)
	Infof(format string, args ...any)
	Warn(msg string)
	Warnf(format string, args ...any)
	Error(msg string)
	Errorf(format string, args ...any)
}
