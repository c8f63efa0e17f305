// Package dialect provides the quoting grammar shared by all SQL dialects
// and a registry of the dialects known to the process.
//
// Concrete dialect definitions live in pkg/adapters/<name>/dialect and
// register themselves from init().
package dialect

import (
	"strings"

	"github.com/leapstack-labs/sqldatefmt/pkg/core"
)

// Dialect is the quoting configuration of a SQL dialect.
// It implements core.Grammar.
type Dialect struct {
	// Name is the dialect identifier (e.g., "mysql", "postgres")
	Name string

	// Kind is the dialect the grammar renders for.
	Kind core.Dialect

	// Identifiers defines quoting rules
	Identifiers core.IdentifierConfig

	// BackslashEscapes is set when string literals treat \ as an escape character.
	BackslashEscapes bool

	aliases []string
}

// Dialect returns the dialect kind.
func (d *Dialect) Dialect() core.Dialect {
	return d.Kind
}

// Aliases returns the alternative names the dialect is registered under.
func (d *Dialect) Aliases() []string {
	return d.aliases
}

// QuoteString renders s as a single-quoted string literal.
func (d *Dialect) QuoteString(s string) string {
	if d.BackslashEscapes {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	// Escape any existing quote end characters in the name (e.g., ] -> ]])
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// Wrap quotes every segment of a dotted identifier. A "*" segment is left bare.
func (d *Dialect) Wrap(identifier string) string {
	parts := strings.Split(identifier, ".")
	for i, part := range parts {
		if part == "*" {
			continue
		}
		parts[i] = d.QuoteIdentifier(part)
	}
	return strings.Join(parts, ".")
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with ANSI double-quote identifiers.
func NewDialect(name string, kind core.Dialect) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Kind: kind,
			Identifiers: core.IdentifierConfig{
				Quote:    `"`,
				QuoteEnd: `"`,
				Escape:   `""`,
			},
		},
	}
}

// Identifiers configures identifier quoting.
func (b *Builder) Identifiers(quote, quoteEnd, escape string) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:    quote,
		QuoteEnd: quoteEnd,
		Escape:   escape,
	}
	return b
}

// BackslashEscapes marks string literals as backslash-escaped (MySQL default sql_mode).
func (b *Builder) BackslashEscapes() *Builder {
	b.dialect.BackslashEscapes = true
	return b
}

// Aliases adds alternative registry names.
func (b *Builder) Aliases(names ...string) *Builder {
	b.dialect.aliases = append(b.dialect.aliases, names...)
	return b
}

// Build returns the configured dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
