// Package dialect provides the SQLite SQL dialect definition.
// This package is lightweight and has no database driver dependencies.
package dialect

import (
	"github.com/leapstack-labs/sqldatefmt/pkg/core"
	"github.com/leapstack-labs/sqldatefmt/pkg/dialect"
)

func init() {
	dialect.Register(SQLite)
}

// SQLite is the SQLite dialect configuration.
var SQLite = dialect.NewDialect("sqlite", core.SQLite).
	Identifiers(`"`, `"`, `""`).
	Aliases("sqlite3").
	Build()
