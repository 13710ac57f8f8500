package core_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kndndrj/dbexport/core"
	"github.com/kndndrj/dbexport/core/mock"
)

const ordersTemplate = `SELECT id, total_amount FROM orders WHERE order_date >= {{ arg 1 }} ORDER BY order_date DESC, id DESC`

func TestConnectionQuery(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	rows := mock.NewRows(0, 3)
	adapter := mock.NewAdapter(rows)

	c, err := core.NewConnection(ctx, &core.ConnectionParams{Name: "orders", Type: "mock"}, adapter)
	r.NoError(err)
	r.NotEmpty(c.GetID())
	r.Equal("orders", c.GetName())
	r.Equal("mock", c.GetType())

	result, err := c.Query(ctx, ordersTemplate, "2026-09-18")
	r.NoError(err)
	r.Equal(rows, result.Rows())

	driver := adapter.LastDriver()
	r.Equal([]mock.Call{{
		Query: "SELECT id, total_amount FROM orders WHERE order_date >= $1 ORDER BY order_date DESC, id DESC",
		Args:  []any{"2026-09-18"},
	}}, driver.Calls())

	// the stream is closed after draining
	r.True(driver.Streams()[0].IsClosed())

	r.NoError(c.Close())
	r.NoError(c.Close())
	r.Equal(1, driver.CloseCount())

	_, err = c.Query(ctx, ordersTemplate, "2026-09-18")
	r.ErrorIs(err, core.ErrConnectionClosed)
}

func TestConnectionQueryPlaceholders(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	adapter := mock.NewAdapter(nil, mock.AdapterWithPlaceholder(func(n int) string {
		return fmt.Sprintf("@p%d", n)
	}))

	c, err := core.NewConnection(ctx, &core.ConnectionParams{}, adapter)
	r.NoError(err)
	defer c.Close()

	rendered, err := c.RenderQuery("SELECT 1 WHERE a = {{ arg 1 }} AND b = {{ arg 2 }} OR c = {{ arg 1 }}", 2)
	r.NoError(err)
	r.Equal("SELECT 1 WHERE a = @p1 AND b = @p2 OR c = @p1", rendered)

	// argument referenced but not provided
	_, err = c.RenderQuery("SELECT {{ arg 2 }}", 1)
	r.Error(err)

	// argument provided but never used
	_, err = c.RenderQuery("SELECT 1", 1)
	r.Error(err)

	result, err := c.Query(ctx, "SELECT {{ arg 3 }}", 1)
	r.ErrorIs(err, core.ErrQuery)
	r.True(result.IsEmpty())
}

func TestConnectionQueryFailure(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	failing := "SELECT broken"
	adapter := mock.NewAdapter(mock.NewRows(0, 5),
		mock.AdapterWithQuerySideEffect(failing, func(context.Context) error {
			return errors.New(`syntax error at or near "broken"`)
		}),
	)

	c, err := core.NewConnection(ctx, &core.ConnectionParams{}, adapter)
	r.NoError(err)
	defer c.Close()

	result, err := c.Query(ctx, failing)
	r.ErrorIs(err, core.ErrQuery)
	r.ErrorContains(err, "syntax error")
	r.True(result.IsEmpty())

	// one attempt, no retries
	r.Len(adapter.LastDriver().Calls(), 1)
}

func TestConnectionDrainFailure(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	adapter := mock.NewAdapter(mock.NewRows(0, 5),
		mock.AdapterWithResultStreamOpts(mock.ResultStreamWithNextError(3, errors.New("timeout"))),
	)

	c, err := core.NewConnection(ctx, &core.ConnectionParams{}, adapter)
	r.NoError(err)
	defer c.Close()

	result, err := c.Query(ctx, "SELECT * FROM orders")
	r.ErrorIs(err, core.ErrQuery)
	r.True(result.IsEmpty())
}

func TestNewConnectionFailure(t *testing.T) {
	r := require.New(t)

	adapter := mock.NewAdapter(nil, mock.AdapterWithConnectError(errors.New("dial tcp: connection refused")))

	_, err := core.NewConnection(context.Background(), &core.ConnectionParams{}, adapter)
	r.ErrorIs(err, core.ErrConnection)
	r.ErrorContains(err, "connection refused")
}

func TestConnectionMarshalJSON(t *testing.T) {
	r := require.New(t)

	c, err := core.NewConnection(context.Background(), &core.ConnectionParams{
		ID:       "primary",
		Name:     "postgresql",
		Type:     "mock",
		Host:     "db.example.com",
		User:     "report",
		Password: "s3cret",
	}, mock.NewAdapter(nil))
	r.NoError(err)

	b, err := json.Marshal(c)
	r.NoError(err)
	r.JSONEq(`{"id":"primary","name":"postgresql","type":"mock","host":"db.example.com","port":"","database":"","user":"report"}`, string(b))
	r.NotContains(string(b), "s3cret")
}
