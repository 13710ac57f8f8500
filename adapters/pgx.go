package adapters

import (
	"context"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kndndrj/dbexport/core"
)

// Register client
func init() {
	_ = register(&PGX{}, "pgx")
}

var _ core.Adapter = (*PGX)(nil)

// PGX connects to postgres through the pgx database/sql driver.
type PGX struct{}

func (p *PGX) Connect(ctx context.Context, params *core.ConnectionParams) (core.Driver, error) {
	return openSQL(ctx, "pgx", postgresURL(params, "5432").String(), dollarPlaceholder, postgresProcessors()...)
}
