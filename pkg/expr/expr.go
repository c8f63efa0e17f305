// Package expr provides the generic SQL expression nodes used to build
// dialect-portable expressions. Every node implements core.Expr and is
// lowered for the grammar it is rendered with.
package expr

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqldatefmt/pkg/core"
)

// Raw is SQL text inserted verbatim.
type Raw string

// SQL implements core.Expr.
func (r Raw) SQL(_ core.Grammar) string {
	return string(r)
}

// Column is an identifier, wrapped by the grammar.
type Column string

// SQL implements core.Expr.
func (c Column) SQL(g core.Grammar) string {
	return g.Wrap(string(c))
}

// Value is a string literal, quoted by the grammar.
type Value string

// SQL implements core.Expr.
func (v Value) SQL(g core.Grammar) string {
	return g.QuoteString(string(v))
}

// Number is a numeric literal.
type Number float64

// SQL implements core.Expr.
func (n Number) SQL(_ core.Grammar) string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// Func is a function call.
type Func struct {
	Name string
	Args []core.Expr
}

// Call builds a function call node.
func Call(name string, args ...core.Expr) *Func {
	return &Func{Name: name, Args: args}
}

// SQL implements core.Expr.
func (f *Func) SQL(g core.Grammar) string {
	return f.Name + "(" + join(g, f.Args, ", ") + ")"
}

func join(g core.Grammar, exprs []core.Expr, sep string) string {
	var sb strings.Builder
	for i, e := range exprs {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(e.SQL(g))
	}
	return sb.String()
}
