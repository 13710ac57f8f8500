package adapters

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kndndrj/dbexport/core"
	"github.com/kndndrj/dbexport/core/builders"
)

var _ core.Driver = (*sqlDriver)(nil)

// sqlDriver is the driver shared by all database/sql backed adapters,
// they differ only in the bind parameter syntax.
type sqlDriver struct {
	c           *builders.Client
	placeholder func(int) string
}

// openSQL opens a database/sql handle and pings it, since sql.Open
// only validates its arguments without creating a connection.
func openSQL(ctx context.Context, driverName, dsn string, placeholder func(int) string, opts ...builders.ClientOption) (*sqlDriver, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s database: %w", driverName, err)
	}

	return newSQLDriver(ctx, db, placeholder, opts...)
}

func newSQLDriver(ctx context.Context, db *sql.DB, placeholder func(int) string, opts ...builders.ClientOption) (*sqlDriver, error) {
	c := builders.NewClient(db, opts...)

	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &sqlDriver{
		c:           c,
		placeholder: placeholder,
	}, nil
}

func (d *sqlDriver) Query(ctx context.Context, query string, args ...any) (core.ResultStream, error) {
	return d.c.Query(ctx, query, args...)
}

func (d *sqlDriver) Placeholder(n int) string {
	return d.placeholder(n)
}

func (d *sqlDriver) Close() error {
	return d.c.Close()
}

func dollarPlaceholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func questionPlaceholder(int) string {
	return "?"
}

func atPlaceholder(n int) string {
	return fmt.Sprintf("@p%d", n)
}

func colonPlaceholder(n int) string {
	return fmt.Sprintf(":%d", n)
}

// portOrDefault returns the configured port or the database default.
func portOrDefault(params *core.ConnectionParams, fallback string) string {
	if params.Port != "" {
		return params.Port
	}
	return fallback
}
