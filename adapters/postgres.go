package adapters

import (
	"context"
	"net"
	nurl "net/url"

	_ "github.com/lib/pq"

	"github.com/kndndrj/dbexport/core"
	"github.com/kndndrj/dbexport/core/builders"
)

// Register client
func init() {
	_ = register(&Postgres{}, "postgres", "postgresql", "pg")
}

var _ core.Adapter = (*Postgres)(nil)

type Postgres struct{}

func (p *Postgres) Connect(ctx context.Context, params *core.ConnectionParams) (core.Driver, error) {
	return openSQL(ctx, "postgres", postgresURL(params, "5432").String(), dollarPlaceholder, postgresProcessors()...)
}

func postgresProcessors() []builders.ClientOption {
	return []builders.ClientOption{
		builders.WithDateProcessor("date"),
		builders.WithCustomTypeProcessor("uuid", builders.ProcessUUID),
	}
}

// postgresURL builds a connection url. Unless configured otherwise,
// the connection requires ssl.
func postgresURL(params *core.ConnectionParams, defaultPort string) *nurl.URL {
	u := &nurl.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(params.Host, portOrDefault(params, defaultPort)),
		Path:   "/" + params.Database,
	}
	if params.User != "" {
		if params.Password != "" {
			u.User = nurl.UserPassword(params.User, params.Password)
		} else {
			u.User = nurl.User(params.User)
		}
	}

	q := u.Query()
	for k, v := range params.Options {
		q.Set(k, v)
	}
	q.Set("sslmode", params.Option("sslmode", "require"))
	u.RawQuery = q.Encode()

	return u
}
