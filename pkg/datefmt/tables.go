package datefmt

import (
	"slices"

	"github.com/leapstack-labs/sqldatefmt/pkg/core"
	"github.com/leapstack-labs/sqldatefmt/pkg/expr"
)

// table holds the capabilities of one dialect. A character appears in at
// most one of the two maps.
type table struct {
	native   map[rune]string
	emulated map[rune]Recipe
}

var tables = map[core.Dialect]*table{
	core.MySQL:      mysqlTable,
	core.SQLite:     sqliteTable,
	core.PostgreSQL: postgresTable,
	core.SQLServer:  sqlserverTable,
}

// supportedChars lists the format characters every dialect can produce.
const supportedChars = "dDjlwWFmMntoYyaAgGhHisU"

// unsupportedChars have no faithful rendering on at least one dialect and
// are rejected everywhere.
const unsupportedChars = "BceILNOPprSTuvXxzZ"

var unsupported = func() map[rune]struct{} {
	m := make(map[rune]struct{}, len(unsupportedChars))
	for _, r := range unsupportedChars {
		m[r] = struct{}{}
	}
	return m
}()

var descriptions = map[rune]string{
	'd': "day of month, 2 digits (01-31)",
	'D': "day of week, 3 letters (Mon-Sun)",
	'j': "day of month (1-31)",
	'l': "day of week (Sunday-Saturday)",
	'w': "day of week number (0=Sunday-6)",
	'W': "ISO week number (01-53)",
	'F': "month name (January-December)",
	'm': "month, 2 digits (01-12)",
	'M': "month, 3 letters (Jan-Dec)",
	'n': "month (1-12)",
	't': "days in month (28-31)",
	'o': "ISO week-numbering year",
	'Y': "year, 4 digits",
	'y': "year, 2 digits",
	'a': "am/pm",
	'A': "AM/PM",
	'g': "hour, 12-hour clock (1-12)",
	'G': "hour, 24-hour clock (0-23)",
	'h': "hour, 12-hour clock, 2 digits (01-12)",
	'H': "hour, 24-hour clock, 2 digits (00-23)",
	'i': "minutes, 2 digits (00-59)",
	's': "seconds, 2 digits (00-59)",
	'U': "seconds since the Unix epoch",
	'B': "Swatch internet time",
	'c': "ISO 8601 date",
	'e': "timezone identifier",
	'I': "daylight saving flag",
	'L': "leap year flag",
	'N': "ISO day of week (1-7)",
	'O': "UTC offset (+0200)",
	'P': "UTC offset (+02:00)",
	'p': "UTC offset or Z",
	'r': "RFC 2822 date",
	'S': "English ordinal suffix",
	'T': "timezone abbreviation",
	'u': "microseconds",
	'v': "milliseconds",
	'X': "expanded year",
	'x': "expanded year if needed",
	'z': "day of year (0-365)",
	'Z': "UTC offset in seconds",
}

// Capability is what a dialect does with one format character.
// Exactly one of Native and Recipe is set.
type Capability struct {
	Char   rune
	Native string
	Recipe Recipe
}

// Emulated reports whether the character is synthesized from generic SQL.
func (c Capability) Emulated() bool {
	return c.Recipe != nil
}

// Lookup returns how dialect d produces ch. It reports false for literal
// and unsupported characters and for unknown dialects.
func Lookup(d core.Dialect, ch rune) (Capability, bool) {
	t, ok := tables[d]
	if !ok {
		return Capability{}, false
	}
	if r, ok := t.emulated[ch]; ok {
		return Capability{Char: ch, Recipe: r}, true
	}
	if n, ok := t.native[ch]; ok {
		return Capability{Char: ch, Native: n}, true
	}
	return Capability{}, false
}

// Capabilities returns the capability of every supported character for d.
func Capabilities(d core.Dialect) []Capability {
	caps := make([]Capability, 0, len(supportedChars))
	for _, ch := range supportedChars {
		if c, ok := Lookup(d, ch); ok {
			caps = append(caps, c)
		}
	}
	return caps
}

// IsUnsupported reports whether ch is rejected on every dialect.
func IsUnsupported(ch rune) bool {
	_, ok := unsupported[ch]
	return ok
}

// Supported returns the supported format characters.
func Supported() []rune {
	return []rune(supportedChars)
}

// Unsupported returns the rejected format characters.
func Unsupported() []rune {
	return slices.Clone([]rune(unsupportedChars))
}

// Describe returns the meaning of a format character, or "" for literals.
func Describe(ch rune) string {
	return descriptions[ch]
}

// Helpers shared by the dialect tables.

var (
	weekdayShort = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	weekdayLong  = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	monthShort   = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	monthLong    = []string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}
)

// lookupCase maps each key to the name at the same index.
func lookupCase(value core.Expr, keys, names []string) *expr.Case {
	whens := make([]expr.When, len(keys))
	for i := range keys {
		whens[i] = expr.When{Condition: expr.Equal(value, expr.Value(keys[i])), Result: expr.Value(names[i])}
	}
	return &expr.Case{Whens: whens}
}

// meridiem yields am when hour is before noon.
func meridiem(hour, noon core.Expr, am, pm string) *expr.Case {
	return &expr.Case{
		Whens: []expr.When{{Condition: expr.LessThan(hour, noon), Result: expr.Value(am)}},
		Else:  expr.Value(pm),
	}
}

func structured(name string, factory func(subject core.Expr) core.Expr) *Structured {
	return &Structured{Name: name, Factory: factory}
}
