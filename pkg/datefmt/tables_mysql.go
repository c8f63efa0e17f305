package datefmt

import (
	"github.com/leapstack-labs/sqldatefmt/pkg/core"
	"github.com/leapstack-labs/sqldatefmt/pkg/expr"
)

// mysqlTable targets date_format(). %p is AM/PM only, %v/%x follow ISO 8601.
var mysqlTable = &table{
	native: map[rune]string{
		'd': "%d",
		'D': "%a",
		'j': "%e",
		'l': "%W",
		'w': "%w",
		'W': "%v",
		'F': "%M",
		'm': "%m",
		'M': "%b",
		'n': "%c",
		'o': "%x",
		'Y': "%Y",
		'y': "%y",
		'A': "%p",
		'g': "%l",
		'G': "%k",
		'h': "%h",
		'H': "%H",
		'i': "%i",
		's': "%s",
	},
	emulated: map[rune]Recipe{
		'a': structured("case hour < 12 then am else pm", func(subject core.Expr) core.Expr {
			return meridiem(expr.Call("hour", subject), expr.Number(12), "am", "pm")
		}),
		't': newTemplate("day(last_day({expr}))"),
		'U': newTemplate("unix_timestamp({expr})"),
	},
}
