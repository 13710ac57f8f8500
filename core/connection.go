package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"text/template"

	"github.com/google/uuid"
)

var (
	// ErrConnection is returned when a database connection could not be established.
	ErrConnection = errors.New("connection could not be established")
	// ErrQuery is returned when a query could not be executed or its rows read.
	ErrQuery = errors.New("query execution error")
	// ErrConnectionClosed is returned when querying a closed connection.
	ErrConnectionClosed = errors.New("connection is closed")
)

type (
	// Adapter is an object which allows to connect to database via connection parameters
	Adapter interface {
		Connect(ctx context.Context, params *ConnectionParams) (Driver, error)
	}

	// Driver is an interface for a specific database driver
	Driver interface {
		// Query runs a statement with bound arguments.
		Query(ctx context.Context, query string, args ...any) (ResultStream, error)
		// Placeholder returns the bind parameter marker for the n-th (1 based) argument.
		Placeholder(n int) string
		Close() error
	}
)

type ConnectionID string

// Connection owns a single driver for the duration of a run.
type Connection struct {
	params *ConnectionParams
	driver Driver
	closed bool
}

func (s *Connection) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.params)
}

// NewConnection expands the parameters and connects using the adapter.
func NewConnection(ctx context.Context, params *ConnectionParams, adapter Adapter) (*Connection, error) {
	expanded := params.Expand()

	if expanded.ID == "" {
		expanded.ID = ConnectionID(uuid.New().String())
	}

	driver, err := adapter.Connect(ctx, expanded)
	if err != nil {
		return nil, fmt.Errorf("%w: adapter.Connect: %w", ErrConnection, err)
	}

	return &Connection{
		params: expanded,
		driver: driver,
	}, nil
}

func (c *Connection) GetID() ConnectionID {
	return c.params.ID
}

func (c *Connection) GetName() string {
	return c.params.Name
}

func (c *Connection) GetType() string {
	return c.params.Type
}

// RenderQuery replaces {{ arg N }} actions in the query template with the
// driver's bind parameter markers. Values are never written into the query text.
func (c *Connection) RenderQuery(query string, argc int) (string, error) {
	highest := 0
	tmpl, err := template.New("query").Funcs(template.FuncMap{
		"arg": func(n int) (string, error) {
			if n < 1 || n > argc {
				return "", fmt.Errorf("argument %d out of range (%d provided)", n, argc)
			}
			if n > highest {
				highest = n
			}
			return c.driver.Placeholder(n), nil
		},
	}).Parse(query)
	if err != nil {
		return "", fmt.Errorf("template.Parse: %w", err)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, nil); err != nil {
		return "", fmt.Errorf("template.Execute: %w", err)
	}

	if highest != argc {
		return "", fmt.Errorf("query uses %d of %d provided arguments", highest, argc)
	}

	return out.String(), nil
}

// Query executes the query template exactly once and fetches the full result.
// On failure an empty result is returned together with an error wrapping ErrQuery,
// never a partial one.
func (c *Connection) Query(ctx context.Context, query string, args ...any) (*Result, error) {
	if c.closed {
		return NewEmptyResult(nil), fmt.Errorf("%w: %w", ErrQuery, ErrConnectionClosed)
	}

	rendered, err := c.RenderQuery(query, len(args))
	if err != nil {
		return NewEmptyResult(nil), fmt.Errorf("%w: %w", ErrQuery, err)
	}

	stream, err := c.driver.Query(ctx, rendered, args...)
	if err != nil {
		return NewEmptyResult(nil), fmt.Errorf("%w: driver.Query: %w", ErrQuery, err)
	}

	result, err := DrainStream(stream)
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	return result, nil
}

// Close releases the driver. Subsequent calls are no-ops.
func (c *Connection) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	if err := c.driver.Close(); err != nil {
		return fmt.Errorf("driver.Close: %w", err)
	}
	return nil
}
