package core

// IdentifierConfig defines how identifiers are quoted.
type IdentifierConfig struct {
	Quote    string // Quote character: ", `, [
	QuoteEnd string // End quote character (usually same as Quote, ] for [)
	Escape   string // Escape sequence for QuoteEnd inside an identifier: "", ``, ]]
}

// Grammar renders dialect-specific lexical pieces.
// Implementations live in pkg/dialect.
type Grammar interface {
	// Dialect returns the dialect the grammar renders for.
	Dialect() Dialect

	// QuoteString renders s as a string literal.
	QuoteString(s string) string

	// Wrap renders a possibly dotted identifier, quoting each segment.
	Wrap(identifier string) string
}

// Expr is a SQL expression that can be rendered for a grammar.
type Expr interface {
	SQL(g Grammar) string
}
