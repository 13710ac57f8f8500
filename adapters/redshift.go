package adapters

import (
	"context"

	"github.com/kndndrj/dbexport/core"
	"github.com/kndndrj/dbexport/core/builders"
)

// init registers the redshift adapter, it talks the postgres protocol.
func init() {
	_ = register(&Redshift{}, "redshift")
}

var _ core.Adapter = (*Redshift)(nil)

type Redshift struct{}

func (r *Redshift) Connect(ctx context.Context, params *core.ConnectionParams) (core.Driver, error) {
	// TODO: perhaps better to use something else than postgres driver..
	return openSQL(ctx, "postgres", postgresURL(params, "5439").String(), dollarPlaceholder,
		builders.WithDateProcessor("date"),
	)
}
