// Package dialect provides the PostgreSQL SQL dialect definition.
// This package is lightweight and has no database driver dependencies,
// making it suitable for compiling SQL without opening a connection.
package dialect

import (
	"github.com/leapstack-labs/sqldatefmt/pkg/core"
	"github.com/leapstack-labs/sqldatefmt/pkg/dialect"
)

func init() {
	dialect.Register(Postgres)
}

// Postgres is the PostgreSQL dialect configuration.
var Postgres = dialect.NewDialect("postgres", core.PostgreSQL).
	Identifiers(`"`, `"`, `""`).
	Aliases("pgsql", "postgresql").
	Build()
