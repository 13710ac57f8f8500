//go:build (darwin && (amd64 || arm64)) || (freebsd && (386 || amd64 || arm || arm64)) || (linux && (386 || amd64 || arm || arm64 || ppc64le || riscv64 || s390x)) || (netbsd && amd64) || (openbsd && (amd64 || arm64)) || (windows && (amd64 || arm64))

package adapters

import (
	"context"

	_ "modernc.org/sqlite"

	"github.com/kndndrj/dbexport/core"
	"github.com/kndndrj/dbexport/core/builders"
)

// Register client
func init() {
	_ = register(&SQLite{}, "sqlite", "sqlite3")
}

var _ core.Adapter = (*SQLite)(nil)

// SQLite uses the database parameter as the path to the database file.
type SQLite struct{}

func (s *SQLite) Connect(ctx context.Context, params *core.ConnectionParams) (core.Driver, error) {
	return openSQL(ctx, "sqlite", params.Database, questionPlaceholder,
		builders.WithDateProcessor("date"),
	)
}
