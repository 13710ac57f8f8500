package builders

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/kndndrj/dbexport/core"
)

// default sql client used by other specific implementations
type Client struct {
	db             *sql.DB
	typeProcessors map[string]func(any) any
}

func NewClient(db *sql.DB, opts ...ClientOption) *Client {
	config := clientConfig{
		typeProcessors: make(map[string]func(any) any),
	}
	for _, opt := range opts {
		opt(&config)
	}

	return &Client{
		db:             db,
		typeProcessors: config.typeProcessors,
	}
}

// Ping verifies that a connection can actually be established,
// sql.Open only validates its arguments.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *Client) Conn(ctx context.Context) (*Conn, error) {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	return &Conn{
		conn:           conn,
		typeProcessors: c.typeProcessors,
	}, nil
}

// Query runs the query on a dedicated connection which is returned to the
// pool when the stream is closed.
func (c *Client) Query(ctx context.Context, query string, args ...any) (core.ResultStream, error) {
	con, err := c.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("c.Conn: %w", err)
	}

	rows, err := con.Query(ctx, query, args...)
	if err != nil {
		_ = con.Close()
		return nil, err
	}

	rows.SetCallback(func() {
		_ = con.Close()
	})

	return rows, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

// connection to use for execution
type Conn struct {
	conn           *sql.Conn
	typeProcessors map[string]func(any) any
}

func (c *Conn) Close() error {
	return c.conn.Close()
}

func (c *Conn) getTypeProcessor(typ string) func(any) any {
	proc, ok := c.typeProcessors[strings.ToLower(typ)]
	if ok {
		return proc
	}

	return func(val any) any {
		valb, ok := val.([]byte)
		if ok {
			return string(valb)
		}
		return val
	}
}

// Query executes a query with bound arguments on a connection and returns a result stream.
func (c *Conn) Query(ctx context.Context, query string, args ...any) (*Result, error) {
	dbRows, err := c.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	header, err := dbRows.Columns()
	if err != nil {
		_ = dbRows.Close()
		return nil, err
	}

	dbCols, err := dbRows.ColumnTypes()
	if err != nil {
		_ = dbRows.Close()
		return nil, err
	}

	processors := make([]func(any) any, len(dbCols))
	for i := range dbCols {
		processors[i] = c.getTypeProcessor(dbCols[i].DatabaseTypeName())
	}

	// a row is fetched ahead so that HasNext can report iteration errors through Next
	var (
		fetched bool
		has     bool
	)
	advance := func() {
		if !fetched {
			has = dbRows.Next()
			fetched = true
		}
	}

	hasNextFunc := func() bool {
		advance()
		if has {
			return true
		}
		// surface a deferred iteration error through Next
		return dbRows.Err() != nil
	}

	nextFunc := func() (core.Row, error) {
		advance()
		fetched = false

		if !has {
			if err := dbRows.Err(); err != nil {
				return nil, err
			}
			return nil, errNoNextRow
		}

		columns := make([]any, len(dbCols))
		columnPointers := make([]any, len(dbCols))
		for i := range columns {
			columnPointers[i] = &columns[i]
		}

		if err := dbRows.Scan(columnPointers...); err != nil {
			return nil, err
		}

		row := make(core.Row, len(dbCols))
		for i := range dbCols {
			row[i] = processors[i](columns[i])
		}

		return row, nil
	}

	rows := NewResultBuilder().
		WithNextFunc(nextFunc, hasNextFunc).
		WithHeader(header).
		WithCloseFunc(func() {
			_ = dbRows.Close()
		}).
		Build()

	return rows, nil
}
