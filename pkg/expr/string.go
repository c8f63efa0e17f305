package expr

import (
	"github.com/leapstack-labs/sqldatefmt/pkg/core"
)

// Ltrim removes leading Chars from Expr.
type Ltrim struct {
	Expr  core.Expr
	Chars string
}

// SQL implements core.Expr.
func (l *Ltrim) SQL(g core.Grammar) string {
	chars := l.Chars
	if chars == "" {
		chars = " "
	}
	switch g.Dialect() {
	case core.MySQL:
		// MySQL's ltrim takes no character list
		return "trim(leading " + g.QuoteString(chars) + " from " + l.Expr.SQL(g) + ")"
	default:
		return "ltrim(" + l.Expr.SQL(g) + ", " + g.QuoteString(chars) + ")"
	}
}

// Concat joins string expressions.
type Concat []core.Expr

// SQL implements core.Expr.
func (c Concat) SQL(g core.Grammar) string {
	switch g.Dialect() {
	case core.MySQL, core.SQLServer:
		return "(concat(" + join(g, c, ", ") + "))"
	default:
		return "(" + join(g, c, " || ") + ")"
	}
}
