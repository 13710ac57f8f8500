package adapters

import (
	"context"
	"net"
	nurl "net/url"

	_ "github.com/microsoft/go-mssqldb"

	"github.com/kndndrj/dbexport/core"
	"github.com/kndndrj/dbexport/core/builders"
)

// Register client
func init() {
	_ = register(&SQLServer{}, "sqlserver", "mssql")
}

var _ core.Adapter = (*SQLServer)(nil)

type SQLServer struct{}

func (s *SQLServer) Connect(ctx context.Context, params *core.ConnectionParams) (core.Driver, error) {
	return openSQL(ctx, "sqlserver", sqlServerURL(params).String(), atPlaceholder,
		builders.WithDateProcessor("date"),
		builders.WithCustomTypeProcessor("uniqueidentifier", builders.ProcessUUID),
	)
}

func sqlServerURL(params *core.ConnectionParams) *nurl.URL {
	u := &nurl.URL{
		Scheme: "sqlserver",
		Host:   net.JoinHostPort(params.Host, portOrDefault(params, "1433")),
	}
	if params.User != "" {
		u.User = nurl.UserPassword(params.User, params.Password)
	}

	q := u.Query()
	for k, v := range params.Options {
		q.Set(k, v)
	}
	if params.Database != "" {
		q.Set("database", params.Database)
	}
	u.RawQuery = q.Encode()

	return u
}
