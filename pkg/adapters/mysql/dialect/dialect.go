// Package dialect provides the MySQL SQL dialect definition.
// This package is lightweight and has no database driver dependencies.
package dialect

import (
	"github.com/leapstack-labs/sqldatefmt/pkg/core"
	"github.com/leapstack-labs/sqldatefmt/pkg/dialect"
)

func init() {
	dialect.Register(MySQL)
}

// MySQL is the MySQL dialect configuration.
// String literals escape backslashes because the default sql_mode does not set NO_BACKSLASH_ESCAPES.
var MySQL = dialect.NewDialect("mysql", core.MySQL).
	Identifiers("`", "`", "``").
	BackslashEscapes().
	Aliases("mariadb").
	Build()
