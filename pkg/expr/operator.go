package expr

import (
	"github.com/leapstack-labs/sqldatefmt/pkg/core"
)

// Comparison is a binary comparison rendered in parentheses.
type Comparison struct {
	Left  core.Expr
	Op    string
	Right core.Expr
}

// SQL implements core.Expr.
func (c *Comparison) SQL(g core.Grammar) string {
	return "(" + c.Left.SQL(g) + " " + c.Op + " " + c.Right.SQL(g) + ")"
}

// Equal builds left = right.
func Equal(left, right core.Expr) *Comparison {
	return &Comparison{Left: left, Op: "=", Right: right}
}

// NotEqual builds left <> right.
func NotEqual(left, right core.Expr) *Comparison {
	return &Comparison{Left: left, Op: "<>", Right: right}
}

// LessThan builds left < right.
func LessThan(left, right core.Expr) *Comparison {
	return &Comparison{Left: left, Op: "<", Right: right}
}

// LessThanOrEqual builds left <= right.
func LessThanOrEqual(left, right core.Expr) *Comparison {
	return &Comparison{Left: left, Op: "<=", Right: right}
}

// GreaterThan builds left > right.
func GreaterThan(left, right core.Expr) *Comparison {
	return &Comparison{Left: left, Op: ">", Right: right}
}

// GreaterThanOrEqual builds left >= right.
func GreaterThanOrEqual(left, right core.Expr) *Comparison {
	return &Comparison{Left: left, Op: ">=", Right: right}
}

// And is a conjunction of conditions.
type And []core.Expr

// SQL implements core.Expr.
func (a And) SQL(g core.Grammar) string {
	return "(" + join(g, a, " and ") + ")"
}

// Arithmetic is a binary arithmetic operation rendered in parentheses.
type Arithmetic struct {
	Left  core.Expr
	Op    string
	Right core.Expr
}

// SQL implements core.Expr.
func (a *Arithmetic) SQL(g core.Grammar) string {
	return "(" + a.Left.SQL(g) + " " + a.Op + " " + a.Right.SQL(g) + ")"
}

// Add builds left + right.
func Add(left, right core.Expr) *Arithmetic {
	return &Arithmetic{Left: left, Op: "+", Right: right}
}

// Subtract builds left - right.
func Subtract(left, right core.Expr) *Arithmetic {
	return &Arithmetic{Left: left, Op: "-", Right: right}
}

// Multiply builds left * right.
func Multiply(left, right core.Expr) *Arithmetic {
	return &Arithmetic{Left: left, Op: "*", Right: right}
}

// Divide builds left / right.
func Divide(left, right core.Expr) *Arithmetic {
	return &Arithmetic{Left: left, Op: "/", Right: right}
}

// Modulo builds left % right.
func Modulo(left, right core.Expr) *Arithmetic {
	return &Arithmetic{Left: left, Op: "%", Right: right}
}

// Between tests whether Value lies in [Low, High].
type Between struct {
	Value core.Expr
	Low   core.Expr
	High  core.Expr
}

// SQL implements core.Expr.
func (b *Between) SQL(g core.Grammar) string {
	return "(" + b.Value.SQL(g) + " between " + b.Low.SQL(g) + " and " + b.High.SQL(g) + ")"
}

// DistinctFrom is a null-safe inequality: two nulls are not distinct,
// a null and a non-null are.
type DistinctFrom struct {
	Left  core.Expr
	Right core.Expr
}

// SQL implements core.Expr.
func (d *DistinctFrom) SQL(g core.Grammar) string {
	l, r := d.Left.SQL(g), d.Right.SQL(g)
	switch g.Dialect() {
	case core.MySQL:
		return "(not " + l + " <=> " + r + ")"
	case core.SQLite:
		return "(" + l + " is not " + r + ")"
	case core.SQLServer:
		// IS DISTINCT FROM only exists from SQL Server 2022
		return "(" + l + " != " + r +
			" or (" + l + " is not null and " + r + " is null)" +
			" or (" + l + " is null and " + r + " is not null))"
	default:
		return "(" + l + " is distinct from " + r + ")"
	}
}
