package datefmt

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/sqldatefmt/pkg/core"
	"github.com/leapstack-labs/sqldatefmt/pkg/expr"
)

var postgresQuoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// sqlserverSpecial are the non-letter characters format() would interpret.
const sqlserverSpecial = `\/%"'`

// Emit renders fragments as one SQL expression. A single fragment is
// returned unwrapped, several are concatenated, none yields the empty string literal.
func Emit(g core.Grammar, subject core.Expr, fragments []Fragment) string {
	parts := Lower(g, subject, fragments)
	switch len(parts) {
	case 0:
		return g.QuoteString("")
	case 1:
		return parts[0].SQL(g)
	default:
		return expr.Concat(parts).SQL(g)
	}
}

// Lower turns every fragment into an expression for g.
func Lower(g core.Grammar, subject core.Expr, fragments []Fragment) []core.Expr {
	parts := make([]core.Expr, 0, len(fragments))
	for _, f := range fragments {
		parts = append(parts, LowerFragment(g, subject, f))
	}
	return parts
}

// LowerFragment turns one fragment into an expression for g.
func LowerFragment(g core.Grammar, subject core.Expr, f Fragment) core.Expr {
	if f.Kind == FragmentEmulated {
		return Build(f.Parts[0].Recipe, g, subject)
	}
	return nativeCall(g.Dialect(), subject, NativeFormat(g.Dialect(), f.Parts))
}

func nativeCall(d core.Dialect, subject core.Expr, format string) core.Expr {
	switch d {
	case core.MySQL:
		return expr.Call("date_format", subject, expr.Value(format))
	case core.SQLite:
		return expr.Call("strftime", expr.Value(format), subject)
	case core.SQLServer:
		return expr.Call("format", subject, expr.Value(format))
	default:
		return expr.Call("to_char", subject, expr.Value(format))
	}
}

// NativeFormat builds the composite format string of a native run,
// escaping literal text for the dialect's format function.
func NativeFormat(d core.Dialect, parts []Resolution) string {
	var sb strings.Builder
	prevNative := ""

	for i := 0; i < len(parts); {
		if parts[i].Kind == KindNative {
			native := parts[i].Native
			// to_char would read two touching tokens as one, e.g. Dy+DD as DyDD
			if d == core.PostgreSQL && endsWithLetter(prevNative) && startsWithLetter(native) {
				sb.WriteString(`""`)
			}
			sb.WriteString(native)
			prevNative = native
			i++
			continue
		}

		var lit strings.Builder
		for ; i < len(parts) && parts[i].Kind != KindNative; i++ {
			lit.WriteString(parts[i].Token.Text)
		}
		sb.WriteString(escapeLiteral(d, lit.String()))
		prevNative = ""
	}

	out := sb.String()
	// A one-character pattern would be taken as a standard .NET format.
	if d == core.SQLServer && utf8.RuneCountInString(out) == 1 {
		out = `\` + out
	}
	return out
}

func escapeLiteral(d core.Dialect, text string) string {
	switch d {
	case core.MySQL, core.SQLite:
		return strings.ReplaceAll(text, "%", "%%")
	case core.PostgreSQL:
		if !strings.ContainsFunc(text, func(r rune) bool {
			return unicode.IsLetter(r) || r == '"' || r == '\\'
		}) {
			return text
		}
		return `"` + postgresQuoteEscaper.Replace(text) + `"`
	case core.SQLServer:
		var sb strings.Builder
		for _, r := range text {
			if unicode.IsLetter(r) || strings.ContainsRune(sqlserverSpecial, r) {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		}
		return sb.String()
	default:
		return text
	}
}

func startsWithLetter(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return s != "" && unicode.IsLetter(r)
}

func endsWithLetter(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return s != "" && unicode.IsLetter(r)
}
