package adapters

import (
	"context"
	"net"

	"github.com/go-sql-driver/mysql"

	"github.com/kndndrj/dbexport/core"
	"github.com/kndndrj/dbexport/core/builders"
)

// Register client
func init() {
	_ = register(&MySQL{}, "mysql", "mariadb")
}

var _ core.Adapter = (*MySQL)(nil)

type MySQL struct{}

func (m *MySQL) Connect(ctx context.Context, params *core.ConnectionParams) (core.Driver, error) {
	return openSQL(ctx, "mysql", mysqlConfig(params).FormatDSN(), questionPlaceholder,
		builders.WithDateProcessor("date"),
	)
}

func mysqlConfig(params *core.ConnectionParams) *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = params.User
	cfg.Passwd = params.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(params.Host, portOrDefault(params, "3306"))
	cfg.DBName = params.Database
	cfg.ParseTime = true

	if len(params.Options) > 0 {
		cfg.Params = make(map[string]string, len(params.Options))
		for k, v := range params.Options {
			cfg.Params[k] = v
		}
	}

	return cfg
}
