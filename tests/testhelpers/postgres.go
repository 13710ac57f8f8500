package testhelpers

import (
	"context"

	tc "github.com/testcontainers/testcontainers-go"
	tcpsql "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/kndndrj/dbexport/adapters"
	"github.com/kndndrj/dbexport/core"
)

type PostgresContainer struct {
	*tcpsql.PostgresContainer
	Params *core.ConnectionParams
	Conn   *core.Connection
}

// NewPostgresContainer starts a seeded postgres container and connects to it.
// Connection fields of params are overwritten, the type defaults to postgres.
func NewPostgresContainer(ctx context.Context, params *core.ConnectionParams) (*PostgresContainer, error) {
	seedFile, err := GetTestDataFile("postgres_seed.sql")
	if err != nil {
		return nil, err
	}
	defer seedFile.Close()

	ctr, err := tcpsql.Run(
		ctx,
		"postgres:16-alpine",
		tcpsql.BasicWaitStrategies(),
		tc.CustomizeRequest(tc.GenericContainerRequest{
			ProviderType: GetContainerProvider(),
		}),
		tcpsql.WithInitScripts(seedFile.Name()),
		tcpsql.WithDatabase("shop"),
		tcpsql.WithUsername("report"),
		tcpsql.WithPassword("secret"),
	)
	if err != nil {
		return nil, err
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		return nil, err
	}
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return nil, err
	}

	if params.Type == "" {
		params.Type = "postgres"
	}
	params.Host = host
	params.Port = port.Port()
	params.Database = "shop"
	params.User = "report"
	params.Password = "secret"
	params.Options = map[string]string{"sslmode": "disable"}

	conn, err := adapters.NewConnection(ctx, params)
	if err != nil {
		return nil, err
	}

	return &PostgresContainer{
		PostgresContainer: ctr,
		Params:            params,
		Conn:              conn,
	}, nil
}

// NewConnection opens another connection to the container, e.g. with a different adapter type.
func (p *PostgresContainer) NewConnection(ctx context.Context, typ string) (*core.Connection, error) {
	params := *p.Params
	params.ID = ""
	params.Type = typ

	return adapters.NewConnection(ctx, &params)
}
