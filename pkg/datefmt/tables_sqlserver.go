package datefmt

import (
	"github.com/leapstack-labs/sqldatefmt/pkg/core"
	"github.com/leapstack-labs/sqldatefmt/pkg/expr"
)

// sqlserverTable targets format(). Names are rendered with a fixed culture
// and weekday numbers are normalized against @@datefirst so the session
// language does not leak into the result.
var sqlserverTable = &table{
	native: map[rune]string{
		'd': "dd",
		'm': "MM",
		'Y': "yyyy",
		'y': "yy",
		'h': "hh",
		'H': "HH",
		'i': "mm",
		's': "ss",
	},
	emulated: map[rune]Recipe{
		'D': newTemplate("format({expr}, 'ddd', 'en-US')"),
		'l': newTemplate("format({expr}, 'dddd', 'en-US')"),
		'F': newTemplate("format({expr}, 'MMMM', 'en-US')"),
		'M': newTemplate("format({expr}, 'MMM', 'en-US')"),
		'j': newTemplate("cast(day({expr}) as varchar(2))"),
		'n': newTemplate("cast(month({expr}) as varchar(2))"),
		'w': newTemplate("cast((datepart(weekday, {expr}) + @@datefirst - 1) % 7 as varchar(1))"),
		'W': newTemplate("right('0' + cast(datepart(iso_week, {expr}) as varchar(2)), 2)"),
		't': newTemplate("cast(day(eomonth({expr})) as varchar(2))"),
		'o': newTemplate("cast(year(dateadd(day, 3 - (datepart(weekday, {expr}) + @@datefirst - 2) % 7, {expr})) as varchar(4))"),
		'g': newTemplate("cast((datepart(hour, {expr}) + 11) % 12 + 1 as varchar(2))"),
		'G': newTemplate("cast(datepart(hour, {expr}) as varchar(2))"),
		'U': newTemplate("datediff_big(second, '1970-01-01', {expr})"),
		'a': structured("case hour < 12 then am else pm", func(subject core.Expr) core.Expr {
			return meridiem(expr.Call("datepart", expr.Raw("hour"), subject), expr.Number(12), "am", "pm")
		}),
		'A': structured("case hour < 12 then AM else PM", func(subject core.Expr) core.Expr {
			return meridiem(expr.Call("datepart", expr.Raw("hour"), subject), expr.Number(12), "AM", "PM")
		}),
	},
}
