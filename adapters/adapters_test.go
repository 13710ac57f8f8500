package adapters

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/kndndrj/dbexport/core"
)

func TestMux(t *testing.T) {
	r := require.New(t)

	m := new(Mux)

	for _, typ := range []string{"postgres", "pg", "pgx", "redshift", "sqlserver", "mssql", "mysql", "sqlite", "oracle", "clickhouse"} {
		_, err := m.GetAdapter(typ)
		r.NoError(err, typ)
	}

	_, err := m.GetAdapter("dbase")
	r.ErrorIs(err, ErrUnsupportedTypeAlias)

	r.Error(register(&Postgres{}))
	r.Error(register(&Postgres{}, ""))

	r.Contains(m.Types(), "postgresql")
}

func TestNewConnectionUnsupported(t *testing.T) {
	r := require.New(t)

	_, err := NewConnection(context.Background(), &core.ConnectionParams{Type: "dbase"})
	r.ErrorIs(err, core.ErrConnection)
	r.ErrorIs(err, ErrUnsupportedTypeAlias)
	r.ErrorContains(err, "supported: ")
	r.ErrorContains(err, "postgres")
}

func TestPostgresURL(t *testing.T) {
	r := require.New(t)

	u := postgresURL(&core.ConnectionParams{
		Host:     "db.example.com",
		Database: "shop",
		User:     "report",
		Password: "p@ss word",
	}, "5432")

	r.Equal("postgres", u.Scheme)
	r.Equal("db.example.com:5432", u.Host)
	r.Equal("/shop", u.Path)
	r.Equal("report", u.User.Username())
	pw, ok := u.User.Password()
	r.True(ok)
	r.Equal("p@ss word", pw)
	r.Equal("require", u.Query().Get("sslmode"))

	u = postgresURL(&core.ConnectionParams{
		Host:    "localhost",
		Port:    "6543",
		Options: map[string]string{"sslmode": "disable"},
	}, "5432")
	r.Equal("localhost:6543", u.Host)
	r.Equal("disable", u.Query().Get("sslmode"))
}

func TestSQLServerURL(t *testing.T) {
	r := require.New(t)

	u := sqlServerURL(&core.ConnectionParams{
		Host:     "mssql",
		Database: "sales",
		User:     "sa",
		Password: "secret",
	})

	r.Equal("sqlserver", u.Scheme)
	r.Equal("mssql:1433", u.Host)
	r.Equal("sales", u.Query().Get("database"))
}

func TestMySQLConfig(t *testing.T) {
	r := require.New(t)

	cfg := mysqlConfig(&core.ConnectionParams{
		Host:     "localhost",
		Database: "shop",
		User:     "root",
		Password: "secret",
	})

	r.Equal("localhost:3306", cfg.Addr)
	r.Contains(cfg.FormatDSN(), "root:secret@tcp(localhost:3306)/shop")
	r.Contains(cfg.FormatDSN(), "parseTime=true")
}

func TestOracleURL(t *testing.T) {
	r := require.New(t)

	_, err := oracleURL(&core.ConnectionParams{Host: "ora", Port: "not-a-port"})
	r.Error(err)

	dsn, err := oracleURL(&core.ConnectionParams{Host: "ora", Database: "XEPDB1", User: "scott", Password: "tiger"})
	r.NoError(err)
	r.Contains(dsn, "ora:1521/XEPDB1")
}

func TestPlaceholders(t *testing.T) {
	r := require.New(t)

	r.Equal("$2", dollarPlaceholder(2))
	r.Equal("?", questionPlaceholder(2))
	r.Equal("@p2", atPlaceholder(2))
	r.Equal(":2", colonPlaceholder(2))
}

func TestSQLDriverQuery(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	r.NoError(err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM orders WHERE order_date >= $1")).
		WithArgs("2026-09-18").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectClose()

	d, err := newSQLDriver(ctx, db, dollarPlaceholder)
	r.NoError(err)

	stream, err := d.Query(ctx, "SELECT id FROM orders WHERE order_date >= "+d.Placeholder(1), "2026-09-18")
	r.NoError(err)

	result, err := core.DrainStream(stream)
	r.NoError(err)
	r.Equal([]core.Row{{int64(7)}}, result.Rows())

	r.NoError(d.Close())
	r.NoError(mock.ExpectationsWereMet())
}

func TestSQLDriverPingFailure(t *testing.T) {
	r := require.New(t)

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	r.NoError(err)

	mock.ExpectPing().WillReturnError(errors.New("dial tcp 10.0.0.1:5432: connect: connection refused"))
	mock.ExpectClose()

	_, err = newSQLDriver(context.Background(), db, dollarPlaceholder)
	r.ErrorContains(err, "connection refused")

	// the handle is released even though connecting failed
	r.NoError(mock.ExpectationsWereMet())
}

func TestSQLiteConnection(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "shop.db")

	seed, err := sql.Open("sqlite", path)
	r.NoError(err)
	for _, stmt := range []string{
		`CREATE TABLE orders (id INTEGER PRIMARY KEY, order_date DATE, total_amount NUMERIC(10,2))`,
		`INSERT INTO orders VALUES (1, '2026-10-01', 100), (2, '2026-10-02', 50)`,
	} {
		_, err := seed.ExecContext(ctx, stmt)
		r.NoError(err)
	}
	r.NoError(seed.Close())

	c, err := NewConnection(ctx, &core.ConnectionParams{Type: "sqlite", Database: path})
	r.NoError(err)
	defer c.Close()

	result, err := c.Query(ctx, `SELECT id, order_date, total_amount FROM orders WHERE id > {{ arg 1 }} ORDER BY order_date DESC, id DESC`, 0)
	r.NoError(err)
	r.Equal(core.Header{"id", "order_date", "total_amount"}, result.Header())
	r.Equal([]core.Row{
		{int64(2), "2026-10-02", int64(50)},
		{int64(1), "2026-10-01", int64(100)},
	}, result.Rows())
}
