package adapters

import (
	"context"
	"net"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/kndndrj/dbexport/core"
	"github.com/kndndrj/dbexport/core/builders"
)

// Register client
func init() {
	_ = register(&Clickhouse{}, "clickhouse")
}

var _ core.Adapter = (*Clickhouse)(nil)

type Clickhouse struct{}

func (p *Clickhouse) Connect(ctx context.Context, params *core.ConnectionParams) (core.Driver, error) {
	db := clickhouse.OpenDB(clickhouseOptions(params))

	return newSQLDriver(ctx, db, questionPlaceholder,
		builders.WithDateProcessor("date", "date32"),
		builders.WithCustomTypeProcessor("uuid", builders.ProcessUUID),
	)
}

func clickhouseOptions(params *core.ConnectionParams) *clickhouse.Options {
	return &clickhouse.Options{
		Addr: []string{net.JoinHostPort(params.Host, portOrDefault(params, "9000"))},
		Auth: clickhouse.Auth{
			Database: params.Database,
			Username: params.User,
			Password: params.Password,
		},
	}
}
