// Package dialect provides the SQL Server SQL dialect definition.
// This package is lightweight and has no database driver dependencies.
package dialect

import (
	"github.com/leapstack-labs/sqldatefmt/pkg/core"
	"github.com/leapstack-labs/sqldatefmt/pkg/dialect"
)

func init() {
	dialect.Register(SQLServer)
}

// SQLServer is the Microsoft SQL Server dialect configuration.
var SQLServer = dialect.NewDialect("sqlserver", core.SQLServer).
	Identifiers("[", "]", "]]").
	Aliases("sqlsrv", "mssql").
	Build()
