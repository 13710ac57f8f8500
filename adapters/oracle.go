package adapters

import (
	"context"
	"fmt"
	"strconv"

	go_ora "github.com/sijms/go-ora/v2"

	"github.com/kndndrj/dbexport/core"
	"github.com/kndndrj/dbexport/core/builders"
)

// Register client
func init() {
	_ = register(&Oracle{}, "oracle")
}

var _ core.Adapter = (*Oracle)(nil)

// Oracle uses the database parameter as the service name.
type Oracle struct{}

func (o *Oracle) Connect(ctx context.Context, params *core.ConnectionParams) (core.Driver, error) {
	dsn, err := oracleURL(params)
	if err != nil {
		return nil, err
	}

	return openSQL(ctx, "oracle", dsn, colonPlaceholder,
		builders.WithDateProcessor("date"),
	)
}

func oracleURL(params *core.ConnectionParams) (string, error) {
	port, err := strconv.Atoi(portOrDefault(params, "1521"))
	if err != nil {
		return "", fmt.Errorf("invalid oracle port: %w", err)
	}

	return go_ora.BuildUrl(params.Host, port, params.Database, params.User, params.Password, params.Options), nil
}
