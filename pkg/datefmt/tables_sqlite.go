package datefmt

import (
	"github.com/leapstack-labs/sqldatefmt/pkg/core"
	"github.com/leapstack-labs/sqldatefmt/pkg/expr"
)

// strftime renders one strftime() specifier of subject. The result is text,
// so the recipes below compare against string values.
func strftime(spec string, subject core.Expr) core.Expr {
	return expr.Call("strftime", expr.Value(spec), subject)
}

var (
	sqliteWeekdays = []string{"0", "1", "2", "3", "4", "5", "6"}
	sqliteMonths   = []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"}
)

// sqliteTable targets strftime(), which has no names, no unpadded numbers
// and no 12-hour clock.
var sqliteTable = &table{
	native: map[rune]string{
		'd': "%d",
		'w': "%w",
		'm': "%m",
		'Y': "%Y",
		'H': "%H",
		'i': "%M",
		's': "%S",
	},
	emulated: map[rune]Recipe{
		'D': structured("case on %w", func(subject core.Expr) core.Expr {
			return lookupCase(strftime("%w", subject), sqliteWeekdays, weekdayShort)
		}),
		'l': structured("case on %w", func(subject core.Expr) core.Expr {
			return lookupCase(strftime("%w", subject), sqliteWeekdays, weekdayLong)
		}),
		'F': structured("case on %m", func(subject core.Expr) core.Expr {
			return lookupCase(strftime("%m", subject), sqliteMonths, monthLong)
		}),
		'M': structured("case on %m", func(subject core.Expr) core.Expr {
			return lookupCase(strftime("%m", subject), sqliteMonths, monthShort)
		}),
		'j': structured("ltrim %d", func(subject core.Expr) core.Expr {
			return &expr.Ltrim{Expr: strftime("%d", subject), Chars: "0"}
		}),
		'n': structured("ltrim %m", func(subject core.Expr) core.Expr {
			return &expr.Ltrim{Expr: strftime("%m", subject), Chars: "0"}
		}),
		'a': structured("case %H < 12", func(subject core.Expr) core.Expr {
			return meridiem(strftime("%H", subject), expr.Value("12"), "am", "pm")
		}),
		'A': structured("case %H < 12", func(subject core.Expr) core.Expr {
			return meridiem(strftime("%H", subject), expr.Value("12"), "AM", "PM")
		}),
		'g': structured("case on %H", func(subject core.Expr) core.Expr {
			hour := strftime("%H", subject)
			return &expr.Case{
				Whens: []expr.When{
					{Condition: expr.Equal(hour, expr.Value("00")), Result: expr.Value("12")},
					{Condition: expr.GreaterThan(hour, expr.Value("12")), Result: expr.Subtract(hour, expr.Number(12))},
				},
				Else: &expr.Ltrim{Expr: hour, Chars: "0"},
			}
		}),
		'h': structured("case on %H", func(subject core.Expr) core.Expr {
			hour := strftime("%H", subject)
			return &expr.Case{
				Whens: []expr.When{
					{
						Condition: expr.And{expr.GreaterThan(hour, expr.Value("00")), expr.LessThanOrEqual(hour, expr.Value("12"))},
						Result:    hour,
					},
					{Condition: expr.Equal(hour, expr.Value("00")), Result: expr.Value("12")},
				},
				Else: expr.Call("printf", expr.Value("%02d"), expr.Subtract(hour, expr.Number(12))),
			}
		}),
		'G': newTemplate("cast(strftime('%H', {expr}) as integer)"),
		// The Thursday of the ISO week decides both week number and year.
		'W': newTemplate("printf('%02d', (strftime('%j', {expr}, 'weekday 0', '-3 days') - 1) / 7 + 1)"),
		'o': newTemplate("strftime('%Y', {expr}, 'weekday 0', '-3 days')"),
		'y': newTemplate("substr(strftime('%Y', {expr}), 3, 2)"),
		't': newTemplate("strftime('%d', {expr}, 'start of month', '+1 month', '-1 day')"),
		'U': newTemplate("strftime('%s', {expr})"),
	},
}
