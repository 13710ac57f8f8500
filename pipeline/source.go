package pipeline

import (
	"context"
	"fmt"

	"github.com/kndndrj/dbexport/core"
)

// Source produces one result set under a label. New kinds of data sources
// only need to implement this interface.
type Source interface {
	Label() string
	Fetch(ctx context.Context) (*core.Result, error)
}

type funcSource struct {
	label string
	fetch func(context.Context) (*core.Result, error)
}

// SourceFunc turns a function into a Source.
func SourceFunc(label string, fetch func(context.Context) (*core.Result, error)) Source {
	return &funcSource{label: label, fetch: fetch}
}

func (s *funcSource) Label() string { return s.label }

func (s *funcSource) Fetch(ctx context.Context) (*core.Result, error) {
	return s.fetch(ctx)
}

// QuerySource runs one query template with bound arguments on a connection.
type QuerySource struct {
	label string
	conn  *core.Connection
	query string
	args  []any
}

func NewQuerySource(label string, conn *core.Connection, query string, args ...any) *QuerySource {
	return &QuerySource{
		label: label,
		conn:  conn,
		query: query,
		args:  args,
	}
}

func (s *QuerySource) Label() string { return s.label }

func (s *QuerySource) Fetch(ctx context.Context) (*core.Result, error) {
	result, err := s.conn.Query(ctx, s.query, s.args...)
	if err != nil {
		return result, fmt.Errorf("%s: %w", s.label, err)
	}
	return result, nil
}

// PlaceholderSource stands in for a data source that is not wired up yet.
// It yields an empty result with the expected columns.
type PlaceholderSource struct {
	label  string
	header core.Header
	note   string
	log    core.Logger
}

func NewPlaceholderSource(label string, header core.Header, note string, logger core.Logger) *PlaceholderSource {
	return &PlaceholderSource{
		label:  label,
		header: header,
		note:   note,
		log:    logger,
	}
}

func (s *PlaceholderSource) Label() string { return s.label }

func (s *PlaceholderSource) Fetch(context.Context) (*core.Result, error) {
	s.log.Infof("%s: %s", s.label, s.note)
	return core.NewEmptyResult(s.header), nil
}

// UnavailableSource reports a source whose connection failed; fetching it
// always yields an empty result and the connection error.
func UnavailableSource(label string, header core.Header, err error) Source {
	return SourceFunc(label, func(context.Context) (*core.Result, error) {
		return core.NewEmptyResult(header), fmt.Errorf("%s: %w", label, err)
	})
}

type requiredSource struct {
	Source
}

// Required marks a source whose connection failure aborts the whole run
// instead of degrading to an empty result.
func Required(src Source) Source {
	return &requiredSource{Source: src}
}

func isRequired(src Source) bool {
	_, ok := src.(*requiredSource)
	return ok
}
