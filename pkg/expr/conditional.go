package expr

import (
	"strings"

	"github.com/leapstack-labs/sqldatefmt/pkg/core"
)

// When is one branch of a searched CASE.
type When struct {
	Condition core.Expr
	Result    core.Expr
}

// Case is a searched CASE expression. Else is optional.
type Case struct {
	Whens []When
	Else  core.Expr
}

// SQL implements core.Expr.
func (c *Case) SQL(g core.Grammar) string {
	var sb strings.Builder
	sb.WriteString("(case")
	for _, w := range c.Whens {
		sb.WriteString(" when ")
		sb.WriteString(w.Condition.SQL(g))
		sb.WriteString(" then ")
		sb.WriteString(w.Result.SQL(g))
	}
	if c.Else != nil {
		sb.WriteString(" else ")
		sb.WriteString(c.Else.SQL(g))
	}
	sb.WriteString(" end)")
	return sb.String()
}
