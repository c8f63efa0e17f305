package sqlserver

import (
	"log/slog"

	"github.com/leapstack-labs/sqldatefmt/pkg/adapter"
)

func init() {
	factory := func(logger *slog.Logger) adapter.Adapter { return New(logger) }
	adapter.Register("sqlserver", factory)
	adapter.Register("mssql", factory)
}
