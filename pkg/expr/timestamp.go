package expr

import (
	"time"

	"github.com/leapstack-labs/sqldatefmt/pkg/core"
)

// Timestamp is a timestamp literal built from the wall clock of Time.
// The zone is dropped: engines receive a timezone-less value.
type Timestamp struct {
	Time time.Time
}

// SQL implements core.Expr.
func (t Timestamp) SQL(g core.Grammar) string {
	switch g.Dialect() {
	case core.MySQL:
		return "timestamp(" + g.QuoteString(t.Time.Format(time.DateTime)) + ")"
	case core.SQLite:
		return g.QuoteString(t.Time.Format(time.DateTime))
	case core.SQLServer:
		return "cast(" + g.QuoteString(t.Time.Format("2006-01-02T15:04:05")) + " as datetime2)"
	default:
		return "timestamp " + g.QuoteString(t.Time.Format(time.DateTime))
	}
}
