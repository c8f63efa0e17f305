// Package datefmt compiles PHP date()-style format strings into SQL for
// MySQL, SQLite, PostgreSQL and SQL Server.
//
// A format string is tokenized, every token is resolved against the
// dialect's capability table, and adjacent natively supported characters
// are merged into a single call of the dialect's date formatting function.
// Characters the dialect lacks are emulated with generic SQL expressions
// and the pieces are concatenated:
//
//	sql, err := datefmt.CompileColumn(dialect.Postgres, "created_at", "Y-m-d")
//	// to_char("created_at", 'YYYY-MM-DD')
//
// Compilation is pure. The capability tables are read-only after package
// initialization, so compiles may run concurrently.
package datefmt

import (
	"github.com/leapstack-labs/sqldatefmt/pkg/core"
	"github.com/leapstack-labs/sqldatefmt/pkg/expr"
)

// Compile renders format applied to subject for grammar g.
func Compile(g core.Grammar, subject core.Expr, format string) (string, error) {
	if g == nil {
		return "", &core.InvalidDialectError{}
	}
	fragments, err := Plan(g.Dialect(), format)
	if err != nil {
		return "", err
	}
	return Emit(g, subject, fragments), nil
}

// CompileColumn renders format applied to a column.
func CompileColumn(g core.Grammar, column, format string) (string, error) {
	return Compile(g, expr.Column(column), format)
}

// DateFormat is a formatted timestamp usable as an expression.
type DateFormat struct {
	subject core.Expr
	format  string
}

// New validates format and returns the expression. Unsupported characters
// are reported here, before any dialect is chosen.
func New(subject core.Expr, format string) (*DateFormat, error) {
	if err := Validate(format); err != nil {
		return nil, err
	}
	return &DateFormat{subject: subject, format: format}, nil
}

// FromColumn is New with a column subject.
func FromColumn(column, format string) (*DateFormat, error) {
	return New(expr.Column(column), format)
}

// Format returns the format string.
func (f *DateFormat) Format() string {
	return f.format
}

// Compile renders the expression for g.
func (f *DateFormat) Compile(g core.Grammar) (string, error) {
	return Compile(g, f.subject, f.format)
}

// SQL implements core.Expr. It panics when g is nil or renders an unknown
// dialect, which is a programming error; use Compile to get an error instead.
func (f *DateFormat) SQL(g core.Grammar) string {
	sql, err := f.Compile(g)
	if err != nil {
		panic(err)
	}
	return sql
}

// Explanation shows every step of a compilation.
type Explanation struct {
	Dialect     core.Dialect
	Format      string
	Tokens      []Token
	Resolutions []Resolution
	Fragments   []Fragment
}

// Explain runs the pipeline for d and keeps the intermediate results.
func Explain(d core.Dialect, format string) (*Explanation, error) {
	if _, ok := tables[d]; !ok {
		return nil, &core.InvalidDialectError{Dialect: d}
	}
	if err := checkEncoding(format); err != nil {
		return nil, err
	}
	tokens := Tokenize(format)
	resolutions, err := ResolveAll(d, tokens)
	if err != nil {
		return nil, err
	}
	return &Explanation{
		Dialect:     d,
		Format:      format,
		Tokens:      tokens,
		Resolutions: resolutions,
		Fragments:   Coalesce(resolutions),
	}, nil
}
