package datefmt

import (
	"strconv"

	"github.com/leapstack-labs/sqldatefmt/pkg/core"
)

// Kind classifies a resolved token.
type Kind int

const (
	// KindLiteral is text emitted as-is.
	KindLiteral Kind = iota
	// KindNative maps onto a token of the dialect's format function.
	KindNative
	// KindEmulated is synthesized from generic SQL.
	KindEmulated
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindNative:
		return "native"
	case KindEmulated:
		return "emulated"
	default:
		return "unknown"
	}
}

// Resolution is the decision taken for one token.
type Resolution struct {
	Kind  Kind
	Token Token
	// Native is the dialect token, set for KindNative.
	Native string
	// Recipe is set for KindEmulated.
	Recipe Recipe
}

// Describe returns a short form of the resolution for diagnostics.
func (r Resolution) Describe() string {
	switch r.Kind {
	case KindNative:
		return r.Native
	case KindEmulated:
		return r.Recipe.Describe()
	default:
		return strconv.Quote(r.Token.Text)
	}
}

// Resolve decides how dialect d produces tok.
//
// Escaped tokens are always literal. Otherwise unsupported characters fail,
// then emulation is preferred over a native token, and anything left is
// literal.
func Resolve(d core.Dialect, tok Token) (Resolution, error) {
	t, ok := tables[d]
	if !ok {
		return Resolution{}, &core.InvalidDialectError{Dialect: d}
	}

	if tok.Literal {
		return Resolution{Kind: KindLiteral, Token: tok}, nil
	}

	ch := tok.Char()
	if IsUnsupported(ch) {
		return Resolution{}, &UnsupportedCharacterError{Char: ch, Pos: tok.Pos}
	}
	if r, ok := t.emulated[ch]; ok {
		return Resolution{Kind: KindEmulated, Token: tok, Recipe: r}, nil
	}
	if n, ok := t.native[ch]; ok {
		return Resolution{Kind: KindNative, Token: tok, Native: n}, nil
	}
	return Resolution{Kind: KindLiteral, Token: tok}, nil
}

// ResolveAll resolves every token, stopping at the first error.
func ResolveAll(d core.Dialect, tokens []Token) ([]Resolution, error) {
	resolutions := make([]Resolution, 0, len(tokens))
	for _, tok := range tokens {
		r, err := Resolve(d, tok)
		if err != nil {
			return nil, err
		}
		resolutions = append(resolutions, r)
	}
	return resolutions, nil
}

// Validate checks a format string for invalid UTF-8 and unsupported
// characters without choosing a dialect.
func Validate(format string) error {
	if err := checkEncoding(format); err != nil {
		return err
	}
	for _, tok := range Tokenize(format) {
		if tok.Literal {
			continue
		}
		if ch := tok.Char(); IsUnsupported(ch) {
			return &UnsupportedCharacterError{Char: ch, Pos: tok.Pos}
		}
	}
	return nil
}
