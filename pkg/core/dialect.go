package core

import (
	"errors"
	"fmt"
	"strings"
)

// Dialect identifies one of the supported SQL engines.
type Dialect int

const (
	// DialectUnknown is the zero value and never valid.
	DialectUnknown Dialect = iota
	// MySQL covers MySQL and MariaDB.
	MySQL
	// SQLite covers SQLite 3.
	SQLite
	// PostgreSQL covers PostgreSQL.
	PostgreSQL
	// SQLServer covers Microsoft SQL Server.
	SQLServer
)

// ErrInvalidDialect is matched by InvalidDialectError via errors.Is.
var ErrInvalidDialect = errors.New("invalid dialect")

var dialectNames = map[Dialect]string{
	MySQL:      "mysql",
	SQLite:     "sqlite",
	PostgreSQL: "postgres",
	SQLServer:  "sqlserver",
}

// dialectAliases maps driver and product names onto dialects.
var dialectAliases = map[string]Dialect{
	"mysql":      MySQL,
	"mariadb":    MySQL,
	"sqlite":     SQLite,
	"sqlite3":    SQLite,
	"pgsql":      PostgreSQL,
	"pg":         PostgreSQL,
	"postgres":   PostgreSQL,
	"postgresql": PostgreSQL,
	"pgx":        PostgreSQL,
	"sqlsrv":     SQLServer,
	"sqlserver":  SQLServer,
	"mssql":      SQLServer,
}

// AllDialects returns every supported dialect in a stable order.
func AllDialects() []Dialect {
	return []Dialect{MySQL, SQLite, PostgreSQL, SQLServer}
}

// String returns the canonical lowercase name of the dialect.
func (d Dialect) String() string {
	if name, ok := dialectNames[d]; ok {
		return name
	}
	return fmt.Sprintf("dialect(%d)", int(d))
}

// Valid reports whether d is one of the supported dialects.
func (d Dialect) Valid() bool {
	_, ok := dialectNames[d]
	return ok
}

// ParseDialect resolves a dialect from its name or a common alias.
func ParseDialect(name string) (Dialect, error) {
	if d, ok := dialectAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d, nil
	}
	return DialectUnknown, &InvalidDialectError{Name: name}
}

// InvalidDialectError is returned when a dialect is unknown or unsupported.
type InvalidDialectError struct {
	Name    string
	Dialect Dialect
}

func (e *InvalidDialectError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("invalid dialect %q (supported: mysql, sqlite, postgres, sqlserver)", e.Name)
	}
	return fmt.Sprintf("invalid dialect %s", e.Dialect)
}

// Is lets errors.Is match ErrInvalidDialect.
func (e *InvalidDialectError) Is(target error) bool {
	return target == ErrInvalidDialect
}
