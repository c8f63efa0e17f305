package datefmt

import (
	"errors"
	"strings"
	"testing"

	mysql "github.com/leapstack-labs/sqldatefmt/pkg/adapters/mysql/dialect"
	postgres "github.com/leapstack-labs/sqldatefmt/pkg/adapters/postgres/dialect"
	sqlite "github.com/leapstack-labs/sqldatefmt/pkg/adapters/sqlite/dialect"
	sqlserver "github.com/leapstack-labs/sqldatefmt/pkg/adapters/sqlserver/dialect"
	"github.com/leapstack-labs/sqldatefmt/pkg/core"
	"github.com/leapstack-labs/sqldatefmt/pkg/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var grammars = map[core.Dialect]core.Grammar{
	core.MySQL:      mysql.MySQL,
	core.SQLite:     sqlite.SQLite,
	core.PostgreSQL: postgres.Postgres,
	core.SQLServer:  sqlserver.SQLServer,
}

func compileAll(t *testing.T, format string) map[core.Dialect]string {
	t.Helper()
	out := make(map[core.Dialect]string, len(grammars))
	for d, g := range grammars {
		sql, err := CompileColumn(g, "created_at", format)
		require.NoError(t, err, d.String())
		out[d] = sql
	}
	return out
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   map[core.Dialect]string
	}{
		{
			name:   "four digit year",
			format: "Y",
			want: map[core.Dialect]string{
				core.MySQL:      "date_format(`created_at`, '%Y')",
				core.SQLite:     `strftime('%Y', "created_at")`,
				core.PostgreSQL: `to_char("created_at", 'YYYY')`,
				core.SQLServer:  "format([created_at], 'yyyy')",
			},
		},
		{
			name:   "unix timestamp",
			format: "U",
			want: map[core.Dialect]string{
				core.MySQL:      "unix_timestamp(`created_at`)",
				core.SQLite:     `strftime('%s', "created_at")`,
				core.PostgreSQL: `floor(extract(epoch from "created_at"))::bigint::text`,
				core.SQLServer:  "datediff_big(second, '1970-01-01', [created_at])",
			},
		},
		{
			name:   "year and month",
			format: "Y-m",
			want: map[core.Dialect]string{
				core.MySQL:      "date_format(`created_at`, '%Y-%m')",
				core.SQLite:     `strftime('%Y-%m', "created_at")`,
				core.PostgreSQL: `to_char("created_at", 'YYYY-MM')`,
				core.SQLServer:  "format([created_at], 'yyyy-MM')",
			},
		},
		{
			name:   "year and unpadded month",
			format: "Y-n",
			want: map[core.Dialect]string{
				core.MySQL:      "date_format(`created_at`, '%Y-%c')",
				core.SQLite:     `(strftime('%Y-', "created_at") || ltrim(strftime('%m', "created_at"), '0'))`,
				core.PostgreSQL: `to_char("created_at", 'YYYY-FMMM')`,
				core.SQLServer:  "(concat(format([created_at], 'yyyy-'), cast(month([created_at]) as varchar(2))))",
			},
		},
		{
			name:   "escaped format character",
			format: `\Y`,
			want: map[core.Dialect]string{
				core.MySQL:      "date_format(`created_at`, 'Y')",
				core.SQLite:     `strftime('Y', "created_at")`,
				core.PostgreSQL: `to_char("created_at", '"Y"')`,
				core.SQLServer:  `format([created_at], '\Y')`,
			},
		},
		{
			name:   "time of day",
			format: "H:i:s",
			want: map[core.Dialect]string{
				core.MySQL:      "date_format(`created_at`, '%H:%i:%s')",
				core.SQLite:     `strftime('%H:%M:%S', "created_at")`,
				core.PostgreSQL: `to_char("created_at", 'HH24:MI:SS')`,
				core.SQLServer:  "format([created_at], 'HH:mm:ss')",
			},
		},
		{
			name:   "empty format",
			format: "",
			want: map[core.Dialect]string{
				core.MySQL:      "''",
				core.SQLite:     "''",
				core.PostgreSQL: "''",
				core.SQLServer:  "''",
			},
		},
		{
			name:   "literal only",
			format: "---",
			want: map[core.Dialect]string{
				core.MySQL:      "date_format(`created_at`, '---')",
				core.SQLite:     `strftime('---', "created_at")`,
				core.PostgreSQL: `to_char("created_at", '---')`,
				core.SQLServer:  "format([created_at], '---')",
			},
		},
		{
			name:   "single literal character",
			format: "-",
			want: map[core.Dialect]string{
				core.MySQL:      "date_format(`created_at`, '-')",
				core.PostgreSQL: `to_char("created_at", '-')`,
				core.SQLServer:  `format([created_at], '\-')`,
			},
		},
		{
			name:   "percent is escaped",
			format: "d%",
			want: map[core.Dialect]string{
				core.MySQL:      "date_format(`created_at`, '%d%%')",
				core.SQLite:     `strftime('%d%%', "created_at")`,
				core.PostgreSQL: `to_char("created_at", 'DD%')`,
				core.SQLServer:  `format([created_at], 'dd\%')`,
			},
		},
		{
			name:   "trailing backslash",
			format: `Y\`,
			want: map[core.Dialect]string{
				core.MySQL:      "date_format(`created_at`, '%Y\\\\')",
				core.SQLite:     `strftime('%Y\', "created_at")`,
				core.PostgreSQL: `to_char("created_at", 'YYYY"\\"')`,
				core.SQLServer:  `format([created_at], 'yyyy\\')`,
			},
		},
		{
			name:   "literal words",
			format: `Y \a\t H`,
			want: map[core.Dialect]string{
				core.MySQL:      "date_format(`created_at`, '%Y at %H')",
				core.PostgreSQL: `to_char("created_at", 'YYYY" at "HH24')`,
				core.SQLServer:  `format([created_at], 'yyyy \a\t HH')`,
			},
		},
		{
			name:   "single quote in literal",
			format: `d'm`,
			want: map[core.Dialect]string{
				core.MySQL:      "date_format(`created_at`, '%d''%m')",
				core.SQLServer:  `format([created_at], 'dd\''MM')`,
				core.PostgreSQL: `to_char("created_at", 'DD''MM')`,
			},
		},
		{
			name:   "postgres adjacent tokens are separated",
			format: "Dd",
			want: map[core.Dialect]string{
				core.PostgreSQL: `to_char("created_at", 'Dy""DD')`,
				core.MySQL:      "date_format(`created_at`, '%a%d')",
			},
		},
		{
			name:   "date separators",
			format: "d/m/Y",
			want: map[core.Dialect]string{
				core.PostgreSQL: `to_char("created_at", 'DD/MM/YYYY')`,
				core.SQLServer:  `format([created_at], 'dd\/MM\/yyyy')`,
			},
		},
		{
			name:   "mysql lowercase meridiem",
			format: "a",
			want: map[core.Dialect]string{
				core.MySQL:      "(case when (hour(`created_at`) < 12) then 'am' else 'pm' end)",
				core.PostgreSQL: `to_char("created_at", 'am')`,
				core.SQLServer:  "(case when (datepart(hour, [created_at]) < 12) then 'am' else 'pm' end)",
				core.SQLite:     `(case when (strftime('%H', "created_at") < '12') then 'am' else 'pm' end)`,
			},
		},
		{
			name:   "sqlite twelve hour clock",
			format: "g",
			want: map[core.Dialect]string{
				core.SQLite: `(case when (strftime('%H', "created_at") = '00') then '12'` +
					` when (strftime('%H', "created_at") > '12') then (strftime('%H', "created_at") - 12)` +
					` else ltrim(strftime('%H', "created_at"), '0') end)`,
				core.MySQL:     "date_format(`created_at`, '%l')",
				core.SQLServer: "cast((datepart(hour, [created_at]) + 11) % 12 + 1 as varchar(2))",
			},
		},
		{
			name:   "sqlite padded twelve hour clock",
			format: "h",
			want: map[core.Dialect]string{
				core.SQLite: `(case when ((strftime('%H', "created_at") > '00') and (strftime('%H', "created_at") <= '12'))` +
					` then strftime('%H', "created_at")` +
					` when (strftime('%H', "created_at") = '00') then '12'` +
					` else printf('%02d', (strftime('%H', "created_at") - 12)) end)`,
			},
		},
		{
			name:   "days in month",
			format: "t",
			want: map[core.Dialect]string{
				core.MySQL:      "day(last_day(`created_at`))",
				core.SQLite:     `strftime('%d', "created_at", 'start of month', '+1 month', '-1 day')`,
				core.PostgreSQL: `extract(day from date_trunc('month', "created_at") + interval '1 month - 1 day')::integer::text`,
				core.SQLServer:  "cast(day(eomonth([created_at])) as varchar(2))",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for d, want := range tt.want {
				got, err := CompileColumn(grammars[d], "created_at", tt.format)
				require.NoError(t, err, d.String())
				assert.Equal(t, want, got, d.String())
			}
		})
	}
}

func TestCompile_MixedFragments(t *testing.T) {
	got, err := CompileColumn(sqlite.SQLite, "created_at", "D, d M Y")
	require.NoError(t, err)

	days := `(case when (strftime('%w', "created_at") = '0') then 'Sun'` +
		` when (strftime('%w', "created_at") = '1') then 'Mon'` +
		` when (strftime('%w', "created_at") = '2') then 'Tue'` +
		` when (strftime('%w', "created_at") = '3') then 'Wed'` +
		` when (strftime('%w', "created_at") = '4') then 'Thu'` +
		` when (strftime('%w', "created_at") = '5') then 'Fri'` +
		` when (strftime('%w', "created_at") = '6') then 'Sat' end)`
	months := `(case when (strftime('%m', "created_at") = '01') then 'Jan'` +
		` when (strftime('%m', "created_at") = '02') then 'Feb'` +
		` when (strftime('%m', "created_at") = '03') then 'Mar'` +
		` when (strftime('%m', "created_at") = '04') then 'Apr'` +
		` when (strftime('%m', "created_at") = '05') then 'May'` +
		` when (strftime('%m', "created_at") = '06') then 'Jun'` +
		` when (strftime('%m', "created_at") = '07') then 'Jul'` +
		` when (strftime('%m', "created_at") = '08') then 'Aug'` +
		` when (strftime('%m', "created_at") = '09') then 'Sep'` +
		` when (strftime('%m', "created_at") = '10') then 'Oct'` +
		` when (strftime('%m', "created_at") = '11') then 'Nov'` +
		` when (strftime('%m', "created_at") = '12') then 'Dec' end)`

	want := "(" + days + ` || strftime(', %d ', "created_at") || ` + months + ` || strftime(' %Y', "created_at"))`
	assert.Equal(t, want, got)
}

func TestCompile_ExpressionSubject(t *testing.T) {
	got, err := Compile(postgres.Postgres, expr.Raw("now()"), "Y-m-d")
	require.NoError(t, err)
	assert.Equal(t, `to_char(now(), 'YYYY-MM-DD')`, got)

	got, err = Compile(sqlserver.SQLServer, expr.Column("orders.created_at"), "n")
	require.NoError(t, err)
	assert.Equal(t, "cast(month([orders].[created_at]) as varchar(2))", got)
}

func TestCompile_TemplateSubstitutesEveryPlaceholder(t *testing.T) {
	got, err := CompileColumn(sqlserver.SQLServer, "c", "o")
	require.NoError(t, err)
	assert.Equal(t, "cast(year(dateadd(day, 3 - (datepart(weekday, [c]) + @@datefirst - 2) % 7, [c])) as varchar(4))", got)
	assert.NotContains(t, got, "{expr}")
}

func TestCompile_Unsupported(t *testing.T) {
	for _, ch := range Unsupported() {
		format := "Y-" + string(ch)
		for d, g := range grammars {
			_, err := CompileColumn(g, "created_at", format)
			require.Error(t, err, "%s %q", d, format)

			var unsupported *UnsupportedCharacterError
			require.True(t, errors.As(err, &unsupported), "%s %q", d, format)
			assert.Equal(t, ch, unsupported.Char)
			assert.Equal(t, 2, unsupported.Pos)
			assert.ErrorIs(t, err, ErrUnsupportedCharacter)
		}
	}
}

func TestCompile_SwatchTimeFails(t *testing.T) {
	for d, g := range grammars {
		sql, err := CompileColumn(g, "created_at", "B")
		assert.Empty(t, sql, d.String())

		var unsupported *UnsupportedCharacterError
		require.True(t, errors.As(err, &unsupported), d.String())
		assert.Equal(t, 'B', unsupported.Char)
		assert.Equal(t, 0, unsupported.Pos)
	}
}

func TestCompile_EscapedUnsupportedIsLiteral(t *testing.T) {
	for _, ch := range Unsupported() {
		t.Run(string(ch), func(t *testing.T) {
			c := string(ch)
			compiled := compileAll(t, `\`+c)
			assert.Equal(t, "date_format(`created_at`, '"+c+"')", compiled[core.MySQL])
			assert.Equal(t, `strftime('`+c+`', "created_at")`, compiled[core.SQLite])
			assert.Equal(t, `to_char("created_at", '"`+c+`"')`, compiled[core.PostgreSQL])
			assert.Equal(t, `format([created_at], '\`+c+`')`, compiled[core.SQLServer])
		})
	}
}

func TestCompile_InvalidEncoding(t *testing.T) {
	tests := []struct {
		name   string
		format string
	}{
		{"lone byte", "\xff"},
		{"after directive", "Y-\xfe"},
		{"truncated sequence", "Y\xe2\x82"},
		{"escaped", `\` + "\xff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for d, g := range grammars {
				_, err := CompileColumn(g, "created_at", tt.format)
				assert.ErrorIs(t, err, ErrInvalidEncoding, d.String())
			}
			assert.ErrorIs(t, Validate(tt.format), ErrInvalidEncoding)
			_, err := Explain(core.MySQL, tt.format)
			assert.ErrorIs(t, err, ErrInvalidEncoding)
		})
	}
}

func TestCompile_ValidMultibyteLiteral(t *testing.T) {
	compiled := compileAll(t, "Y€")
	assert.Equal(t, "date_format(`created_at`, '%Y€')", compiled[core.MySQL])
	require.NoError(t, Validate("Y€"))
}

func TestCompile_InvalidDialect(t *testing.T) {
	_, err := Compile(nil, expr.Column("c"), "Y")
	assert.ErrorIs(t, err, core.ErrInvalidDialect)

	_, err = Plan(core.Dialect(99), "Y")
	assert.ErrorIs(t, err, core.ErrInvalidDialect)

	_, err = Plan(core.DialectUnknown, "")
	assert.ErrorIs(t, err, core.ErrInvalidDialect)

	_, err = Resolve(core.DialectUnknown, Token{Text: "Y"})
	assert.ErrorIs(t, err, core.ErrInvalidDialect)
}

func TestCompile_Idempotent(t *testing.T) {
	formats := []string{"Y", "D, d M Y H:i:s", `l \t\h\e jS`, "U", "W o", "g:i a"}
	for _, format := range formats {
		for d, g := range grammars {
			first, err1 := CompileColumn(g, "created_at", format)
			second, err2 := CompileColumn(g, "created_at", format)
			assert.Equal(t, first, second, "%s %q", d, format)
			assert.Equal(t, err1, err2, "%s %q", d, format)
		}
	}
}

func TestPlan_NativeFormatsYieldOneFragment(t *testing.T) {
	for d := range grammars {
		var native strings.Builder
		for _, c := range Capabilities(d) {
			if !c.Emulated() {
				native.WriteRune(c.Char)
				native.WriteString(" - ")
			}
		}

		fragments, err := Plan(d, native.String())
		require.NoError(t, err, d.String())
		require.Len(t, fragments, 1, d.String())
		assert.Equal(t, FragmentNative, fragments[0].Kind)

		sql, err := CompileColumn(grammars[d], "c", native.String())
		require.NoError(t, err)
		assert.NotContains(t, sql, "concat")
		assert.NotContains(t, sql, "||")
	}
}

func TestPlan_FragmentCount(t *testing.T) {
	formats := []string{"Y-n-j", "D, d M Y", "a g:i", "U", "Y", "l j", `\Y-y`, "W/o t"}

	for _, format := range formats {
		for d := range grammars {
			resolutions, err := ResolveAll(d, Tokenize(format))
			require.NoError(t, err)

			runs, emulated := 0, 0
			inRun := false
			for _, r := range resolutions {
				if r.Kind == KindEmulated {
					emulated++
					inRun = false
					continue
				}
				if !inRun {
					runs++
					inRun = true
				}
			}

			fragments, err := Plan(d, format)
			require.NoError(t, err)
			assert.Len(t, fragments, runs+emulated, "%s %q", d, format)

			sql, err := CompileColumn(grammars[d], "c", format)
			require.NoError(t, err)
			concatenated := strings.HasPrefix(sql, "(concat(") || (strings.HasPrefix(sql, "(") && strings.Contains(sql, " || "))
			if len(fragments) == 1 {
				assert.False(t, strings.HasPrefix(sql, "(concat("), "%s %q", d, format)
			} else {
				assert.True(t, concatenated, "%s %q: %s", d, format, sql)
			}
		}
	}
}

func TestCoalesce(t *testing.T) {
	lit := func(s string) Resolution { return Resolution{Kind: KindLiteral, Token: Token{Text: s}} }
	nat := func(s string) Resolution { return Resolution{Kind: KindNative, Native: s} }
	emu := Resolution{Kind: KindEmulated, Recipe: newTemplate("x({expr})")}

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Coalesce(nil))
	})

	t.Run("literal only", func(t *testing.T) {
		fragments := Coalesce([]Resolution{lit("a"), lit("b")})
		require.Len(t, fragments, 1)
		assert.Equal(t, FragmentNative, fragments[0].Kind)
		assert.Len(t, fragments[0].Parts, 2)
	})

	t.Run("emulated splits runs", func(t *testing.T) {
		fragments := Coalesce([]Resolution{nat("YYYY"), lit("-"), emu, emu, lit("-"), nat("DD")})
		require.Len(t, fragments, 4)
		assert.Equal(t, []FragmentKind{FragmentNative, FragmentEmulated, FragmentEmulated, FragmentNative},
			[]FragmentKind{fragments[0].Kind, fragments[1].Kind, fragments[2].Kind, fragments[3].Kind})
		assert.Len(t, fragments[0].Parts, 2)
		assert.Len(t, fragments[3].Parts, 2)
	})
}

func TestNew(t *testing.T) {
	f, err := FromColumn("created_at", "Y-m")
	require.NoError(t, err)
	assert.Equal(t, "Y-m", f.Format())
	assert.Equal(t, `to_char("created_at", 'YYYY-MM')`, f.SQL(postgres.Postgres))

	// DateFormat composes with other expressions.
	e := expr.Equal(f, expr.Value("2024-01"))
	assert.Equal(t, "(date_format(`created_at`, '%Y-%m') = '2024-01')", e.SQL(mysql.MySQL))

	_, err = FromColumn("created_at", "Y-m-d e")
	var unsupported *UnsupportedCharacterError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, 'e', unsupported.Char)
	assert.Equal(t, 6, unsupported.Pos)

	assert.Panics(t, func() { _ = f.SQL(nil) })
	_, err = f.Compile(nil)
	assert.ErrorIs(t, err, core.ErrInvalidDialect)
}

func TestExplain(t *testing.T) {
	ex, err := Explain(core.SQLServer, `Y-n \a`)
	require.NoError(t, err)

	assert.Equal(t, core.SQLServer, ex.Dialect)
	require.Len(t, ex.Tokens, 5)
	require.Len(t, ex.Resolutions, 5)

	kinds := make([]Kind, len(ex.Resolutions))
	for i, r := range ex.Resolutions {
		kinds[i] = r.Kind
	}
	assert.Equal(t, []Kind{KindNative, KindLiteral, KindEmulated, KindLiteral, KindLiteral}, kinds)
	assert.Equal(t, "yyyy", ex.Resolutions[0].Describe())
	assert.Equal(t, `"-"`, ex.Resolutions[1].Describe())
	assert.Equal(t, "cast(month({expr}) as varchar(2))", ex.Resolutions[2].Describe())

	require.Len(t, ex.Fragments, 3)
	assert.Equal(t, FragmentNative, ex.Fragments[0].Kind)
	assert.Equal(t, FragmentEmulated, ex.Fragments[1].Kind)
	assert.Equal(t, FragmentNative, ex.Fragments[2].Kind)

	assert.Equal(t, `format([c], ' \a')`, LowerFragment(sqlserver.SQLServer, expr.Column("c"), ex.Fragments[2]).SQL(sqlserver.SQLServer))

	_, err = Explain(core.PostgreSQL, "Y T")
	assert.ErrorIs(t, err, ErrUnsupportedCharacter)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "literal", KindLiteral.String())
	assert.Equal(t, "native", KindNative.String())
	assert.Equal(t, "emulated", KindEmulated.String())
	assert.Equal(t, "unknown", Kind(9).String())
	assert.Equal(t, "native", FragmentNative.String())
	assert.Equal(t, "emulated", FragmentEmulated.String())
}
